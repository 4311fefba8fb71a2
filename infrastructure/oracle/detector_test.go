package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentmatch/talentmatch/internal/domain"
	"github.com/talentmatch/talentmatch/internal/testutils"
)

const multiProfileReply = `{
  "is_multiple": true,
  "total_profiles_needed": 2,
  "confidence": 85,
  "reasoning": "The tender asks for distinct backend and data roles.",
  "profiles": [
    {
      "title": "Backend Developer",
      "description": "Go services behind the booking platform.",
      "required_skills": ["Go", "PostgreSQL"],
      "nice_to_have": ["Kafka"],
      "min_experience": "5 years",
      "responsibilities": ["Design APIs"],
      "estimated_headcount": 2
    },
    {
      "title": "Data Engineer",
      "description": "Pipelines feeding the analytics stack.",
      "required_skills": ["Python", "Airflow"],
      "nice_to_have": [],
      "min_experience": "3 years",
      "responsibilities": ["Operate pipelines"],
      "estimated_headcount": 1
    }
  ]
}`

func TestAnalyzeTender(t *testing.T) {
	t.Parallel()

	mock := testutils.NewMockLLMClient("test-model").EnqueueResponse(multiProfileReply)
	client, err := NewClient(mock, Config{}, nil)
	require.NoError(t, err)

	analysis, err := client.AnalyzeTender(context.Background(), "We need a backend developer and a data engineer for the booking platform.")
	require.NoError(t, err)

	assert.True(t, analysis.IsMultiple)
	assert.Equal(t, 2, analysis.TotalProfilesNeeded)
	assert.Equal(t, 85, analysis.Confidence)
	require.Len(t, analysis.Profiles, 2)

	// Profiles without ids get synthetic 1-based ids in document order.
	assert.Equal(t, "profile-1", analysis.Profiles[0].ID)
	assert.Equal(t, "profile-2", analysis.Profiles[1].ID)
	assert.Equal(t, "Backend Developer", analysis.Profiles[0].Title)
	assert.Equal(t, "Data Engineer", analysis.Profiles[1].Title)
}

func TestAnalyzeTenderSingleProfile(t *testing.T) {
	t.Parallel()

	reply := `{
	  "is_multiple": false,
	  "total_profiles_needed": 1,
	  "confidence": 92,
	  "reasoning": "One role only.",
	  "profiles": [{"title": "DevOps Engineer", "description": "Run the platform.", "required_skills": ["Terraform"], "estimated_headcount": 1}]
	}`
	mock := testutils.NewMockLLMClient("test-model").EnqueueResponse(reply)
	client, err := NewClient(mock, Config{}, nil)
	require.NoError(t, err)

	analysis, err := client.AnalyzeTender(context.Background(), "Looking for a DevOps engineer.")
	require.NoError(t, err)
	assert.False(t, analysis.IsMultiple)
	require.Len(t, analysis.Profiles, 1)
	assert.Equal(t, "profile-1", analysis.Profiles[0].ID)
}

func TestAnalyzeTenderRejectsEmptyText(t *testing.T) {
	t.Parallel()

	mock := testutils.NewMockLLMClient("test-model")
	client, err := NewClient(mock, Config{}, nil)
	require.NoError(t, err)

	_, err = client.AnalyzeTender(context.Background(), "   \n\t")
	assert.ErrorIs(t, err, domain.ErrEmptyTenderText)
	// Validation failures never reach the oracle.
	assert.Equal(t, 0, mock.Calls())
}

func TestAnalyzeTenderRejectsBadReplies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
	}{
		{"no json", "This does not look like a tender."},
		{"missing required fields", `{"confidence": 50}`},
		{"profile without title", `{"is_multiple": false, "total_profiles_needed": 1, "profiles": [{"description": "no title"}]}`},
		{"multiple without profiles", `{"is_multiple": true, "total_profiles_needed": 3, "profiles": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mock := testutils.NewMockLLMClient("test-model").EnqueueResponse(tt.reply)
			client, err := NewClient(mock, Config{}, nil)
			require.NoError(t, err)

			_, err = client.AnalyzeTender(context.Background(), "We need several engineers.")
			assert.ErrorIs(t, err, domain.ErrInvalidOracleResponse)
		})
	}
}
