package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/talentmatch/talentmatch/internal/config"
	"github.com/talentmatch/talentmatch/internal/domain"
	"github.com/talentmatch/talentmatch/internal/matching"
)

// matchInput is the YAML input file shape for one-shot matching.
// Either job_offer (single mode), profiles (explicit multi mode), or
// tender_text (detected multi mode) selects the profiles to match.
type matchInput struct {
	JobOffer *struct {
		Title         string `mapstructure:"title"`
		Description   string `mapstructure:"description"`
		MinExperience string `mapstructure:"min_experience"`
	} `mapstructure:"job_offer"`
	TenderText string                   `mapstructure:"tender_text"`
	Profiles   []domain.JobProfile      `mapstructure:"profiles"`
	CVList     []domain.CandidateRecord `mapstructure:"cv_list"`
	Weights    *domain.WeightConfig     `mapstructure:"weights"`
}

var matchFlags struct {
	input    string
	minScore int
	sector   string
	skill    string
	sortKey  string
	desc     bool
	page     int
	pageSize int
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run one matching pass from an input file and print the results as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMatch(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVarP(&matchFlags.input, "input", "i", "", "YAML file with the job offer (or tender text) and candidate list")
	matchCmd.Flags().IntVar(&matchFlags.minScore, "min-score", 0, "only print results with at least this relevance score")
	matchCmd.Flags().StringVar(&matchFlags.sector, "sector", "", "only print results touching this sector")
	matchCmd.Flags().StringVar(&matchFlags.skill, "skill", "", "only print results matching this skill")
	matchCmd.Flags().StringVar(&matchFlags.sortKey, "sort", string(matching.SortByScore), "sort key: score, experience, or name")
	matchCmd.Flags().BoolVar(&matchFlags.desc, "desc", true, "sort descending")
	matchCmd.Flags().IntVar(&matchFlags.page, "page", 1, "result page, 1-based")
	matchCmd.Flags().IntVar(&matchFlags.pageSize, "page-size", 0, "page size (default from config)")
	_ = matchCmd.MarkFlagRequired("input")
}

func runMatch(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	input, err := readMatchInput(matchFlags.input)
	if err != nil {
		return err
	}

	profiles, err := resolveProfiles(ctx, cfg, log, input)
	if err != nil {
		return err
	}

	weights := cfg.Matching.Weights
	if input.Weights != nil {
		weights = *input.Weights
	}

	oracleClient, err := buildOracle(cfg, log, nil)
	if err != nil {
		return err
	}
	coord, err := matching.NewCoordinator(oracleClient,
		matching.WithBatchSize(cfg.Matching.BatchSize),
		matching.WithLogger(log),
		matching.WithProgress(func(completed, total int) {
			fmt.Fprintf(os.Stderr, "profiles: %d/%d\n", completed, total)
		}),
	)
	if err != nil {
		return err
	}

	result, err := coord.Run(ctx, profiles, input.CVList, weights)
	if err != nil {
		return err
	}

	pageSize := matchFlags.pageSize
	if pageSize <= 0 {
		pageSize = cfg.Matching.PageSize
	}

	output := make(map[string]matching.QueryPage, len(result.Sessions))
	for id, session := range result.Sessions {
		enriched := matching.Enrich(session.Results, input.CVList)
		output[id] = matching.Query(enriched, matching.QueryOptions{
			Filters: matching.Filters{
				MinScore:    matchFlags.minScore,
				Sector:      matchFlags.sector,
				SearchSkill: matchFlags.skill,
			},
			Sort:       matching.SortKey(matchFlags.sortKey),
			Descending: matchFlags.desc,
			Page:       matchFlags.page,
			PageSize:   pageSize,
		})
		fmt.Fprintf(os.Stderr, "%s: %s\n", id, session.Summary)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// readMatchInput loads the YAML input file. Decoding goes through an
// intermediate map so field handling stays tolerant of the loose,
// hand-written files this command is fed.
func readMatchInput(path string) (*matchInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}

	var loose map[string]any
	if err := yaml.Unmarshal(raw, &loose); err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}

	var input matchInput
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &input,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(loose); err != nil {
		return nil, fmt.Errorf("decode input %s: %w", path, err)
	}

	if len(input.CVList) == 0 {
		return nil, domain.ErrEmptyCandidates
	}
	return &input, nil
}

// resolveProfiles selects the profiles to match: explicit profiles win,
// then a single job offer, then tender detection.
func resolveProfiles(ctx context.Context, cfg *config.Config, log *zap.Logger, input *matchInput) ([]domain.JobProfile, error) {
	switch {
	case len(input.Profiles) > 0:
		profiles := input.Profiles
		for i := range profiles {
			if profiles[i].ID == "" {
				profiles[i].ID = fmt.Sprintf("profile-%d", i+1)
			}
		}
		return profiles, nil

	case input.JobOffer != nil && (strings.TrimSpace(input.JobOffer.Title) != "" || strings.TrimSpace(input.JobOffer.Description) != ""):
		return []domain.JobProfile{{
			ID:            "profile-1",
			Title:         input.JobOffer.Title,
			Description:   input.JobOffer.Description,
			MinExperience: input.JobOffer.MinExperience,
		}}, nil

	case strings.TrimSpace(input.TenderText) != "":
		oracleClient, err := buildOracle(cfg, log, nil)
		if err != nil {
			return nil, err
		}
		analysis, err := oracleClient.AnalyzeTender(ctx, input.TenderText)
		if err != nil {
			return nil, err
		}
		if len(analysis.Profiles) == 0 {
			return nil, domain.ErrNoProfiles
		}
		return analysis.Profiles, nil

	default:
		return nil, domain.ErrMissingJobOffer
	}
}
