package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentmatch/talentmatch/internal/domain"
	"github.com/talentmatch/talentmatch/internal/testutils"
)

func testProfile() domain.JobProfile {
	return domain.JobProfile{
		ID:             "profile-1",
		Title:          "Data Engineer",
		Description:    "Build and operate data pipelines on a modern cloud stack.",
		RequiredSkills: []string{"Python", "SQL", "Airflow"},
		NiceToHave:     []string{"Kubernetes"},
		MinExperience:  "5 years",
	}
}

func testBatch() []domain.CandidateRecord {
	return []domain.CandidateRecord{
		{Name: "Alice Moreau", JobTitle: "Data Engineer", Skills: []string{"Python", "SQL", "Airflow"}, YearsExperience: "8 years", Sectors: []string{"Finance"}},
		{Name: "Bob Stone", JobTitle: "Web Developer", Skills: []string{"PHP"}, YearsExperience: "3 years", Sectors: []string{"Retail"}},
	}
}

const validScoringReply = `{
  "results": [
    {"candidate_name": "Alice Moreau", "relevance_score": 91, "reasoning": "Strong direct fit.", "matching_skills": ["Python", "SQL", "Airflow"], "missing_skills": [], "sectors": ["Finance"]},
    {"candidate_name": "Bob Stone", "relevance_score": 22, "reasoning": "Different stack.", "matching_skills": [], "missing_skills": ["Python", "SQL", "Airflow"], "sectors": ["Retail"]}
  ],
  "summary": "One strong match in this group."
}`

func TestClientScore(t *testing.T) {
	t.Parallel()

	mock := testutils.NewMockLLMClient("test-model").EnqueueResponse(validScoringReply)
	client, err := NewClient(mock, Config{}, nil)
	require.NoError(t, err)

	outcome, err := client.Score(context.Background(), testProfile(), testBatch(), domain.DefaultWeights())
	require.NoError(t, err)

	require.Len(t, outcome.Results, 2)
	assert.Equal(t, "Alice Moreau", outcome.Results[0].CandidateName)
	assert.Equal(t, 91, outcome.Results[0].RelevanceScore)
	assert.Equal(t, "One strong match in this group.", outcome.Summary)

	// The prompt must carry the full profile, the weights, and every
	// candidate by name.
	require.Equal(t, 1, mock.Calls())
	prompt := mock.Prompts[0]
	assert.Contains(t, prompt, "Data Engineer")
	assert.Contains(t, prompt, "Build and operate data pipelines")
	assert.Contains(t, prompt, "Technical skills: 40%")
	assert.Contains(t, prompt, "Alice Moreau")
	assert.Contains(t, prompt, "Bob Stone")
	assert.Contains(t, prompt, "Never omit a candidate")

	opts := mock.Options[0]
	assert.Equal(t, true, opts["json_mode"])
	assert.Equal(t, defaultTemperature, opts["temperature"])
}

func TestClientScoreAcceptsFencedReply(t *testing.T) {
	t.Parallel()

	fenced := "Here you go:\n```json\n" + validScoringReply + "\n```"
	mock := testutils.NewMockLLMClient("test-model").EnqueueResponse(fenced)
	client, err := NewClient(mock, Config{}, nil)
	require.NoError(t, err)

	outcome, err := client.Score(context.Background(), testProfile(), testBatch(), domain.DefaultWeights())
	require.NoError(t, err)
	assert.Len(t, outcome.Results, 2)
}

func TestClientScoreRejectsBadReplies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
	}{
		{"no json", "I am unable to score these candidates."},
		{"score out of range", `{"results": [{"candidate_name": "Alice Moreau", "relevance_score": 140}]}`},
		{"missing candidate name", `{"results": [{"candidate_name": "", "relevance_score": 50}]}`},
		{"results not an array", `{"results": {"candidate_name": "Alice Moreau"}}`},
		{"truncated json", `{"results": [{"candidate_name": "Ali`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mock := testutils.NewMockLLMClient("test-model").EnqueueResponse(tt.reply)
			client, err := NewClient(mock, Config{}, nil)
			require.NoError(t, err)

			_, err = client.Score(context.Background(), testProfile(), testBatch(), domain.DefaultWeights())
			assert.ErrorIs(t, err, domain.ErrInvalidOracleResponse)
		})
	}
}

func TestClientScorePropagatesTransportErrors(t *testing.T) {
	t.Parallel()

	transportErr := errors.New("connection reset")
	mock := testutils.NewMockLLMClient("test-model").EnqueueError(transportErr)
	client, err := NewClient(mock, Config{}, nil)
	require.NoError(t, err)

	_, err = client.Score(context.Background(), testProfile(), testBatch(), domain.DefaultWeights())
	require.Error(t, err)
	assert.ErrorIs(t, err, transportErr)
	// No retry: exactly one transport call.
	assert.Equal(t, 1, mock.Calls())
}

func TestNewClientRequiresLLM(t *testing.T) {
	t.Parallel()

	_, err := NewClient(nil, Config{}, nil)
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{}.withDefaults()
	assert.Equal(t, defaultTemperature, cfg.Temperature)
	assert.Equal(t, defaultMaxTokens, cfg.MaxTokens)

	custom := Config{Temperature: 0.4, MaxTokens: 1000}.withDefaults()
	assert.Equal(t, 0.4, custom.Temperature)
	assert.Equal(t, 1000, custom.MaxTokens)
}
