package cmd

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/opensdd/osdd-release-notes/core/actions"
	"github.com/opensdd/osdd-release-notes/core/config"
	"github.com/opensdd/osdd-release-notes/core/generate"
	"github.com/opensdd/osdd-release-notes/core/utils"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render pending release notes for a release pull request and remove them.",
	Long: `Render the release notes found on the base branch of the pull request opened
from GITHUB_HEAD_REF, publish them as the "comment" step output, then delete
the note files and push the cleanup commit to the head branch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGenerate()
		if err != nil {
			return errors.Wrap(err, "unable to load generate configuration")
		}
		setupLogging(cfg.Debug)
		return runGenerate(cmd.Context(), cfg, actions.NewRunner(cfg.OutputPath, ""))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(ctx context.Context, cfg *config.Generate, runner *actions.Runner) error {
	runner.CollapsedLog("Environment", cfg.Redacted())

	gen := &generate.Generator{
		Config: cfg,
		PRs: &utils.GitHubClient{
			URL:   cfg.GraphQLURL,
			Token: cfg.Token,
			OnResponse: func(raw json.RawMessage) {
				runner.CollapsedLog("API Response", raw)
			},
		},
		Git:     &utils.Git{},
		Actions: runner,
	}
	if err := gen.Run(ctx); err != nil {
		return errors.Wrapf(err, "unable to generate release notes for %s", cfg.HeadRef)
	}
	return nil
}
