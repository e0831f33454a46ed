package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/opensdd/osdd-release-notes/core/actions"
	"github.com/opensdd/osdd-release-notes/core/check"
	"github.com/opensdd/osdd-release-notes/core/config"
	"github.com/opensdd/osdd-release-notes/core/notes"
)

// errCheckFailed is returned once a validation failure has been reported to the runner.
var errCheckFailed = errors.New("release note check failed")

var checkExample = `
# Check the release note of pull request 42
PR_NUMBER=42 release-notes check`

var checkCmd = &cobra.Command{
	Use:     "check",
	Short:   "Validate the release note of one pull request.",
	Long:    `Validate <dir>/<PR_NUMBER>.md: front matter with a known category and a list of authors, followed by a single line.`,
	Example: checkExample,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadCheck()
		if err != nil {
			return errors.Wrap(err, "unable to load check configuration")
		}
		setupLogging(cfg.Debug)
		return runCheck(cmd.Context(), cfg, actions.NewRunner("", cfg.SummaryPath))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(ctx context.Context, cfg *config.Check, runner *actions.Runner) error {
	runner.Println("Looking in " + resolveDir(cfg.NotesDir))

	checker := &check.Checker{Dir: cfg.NotesDir, Categories: cfg.CategoryRegistry()}
	res, err := checker.Run(ctx, cfg.PRNumber)
	if err != nil {
		return errors.Wrapf(err, "unable to check release note for PR %q", cfg.PRNumber)
	}
	if !res.OK() {
		return reportFailure(runner, cfg.NotesDir, res.Failure.Message)
	}

	runner.Println("Everything looks good! \U0001F389")
	return nil
}

// reportFailure annotates the failure and shows the README as help, both as a
// notice and as the job summary.
func reportFailure(runner *actions.Runner, dir, message string) error {
	runner.Error(message)

	help, err := os.ReadFile(filepath.Join(dir, notes.ReadmeFile))
	if err != nil {
		return errors.Wrap(err, "unable to read release notes help")
	}
	runner.Notice(string(help))
	if err := runner.WriteSummary(help); err != nil {
		return errors.Wrap(err, "unable to write job summary")
	}
	return errCheckFailed
}

func resolveDir(dir string) string {
	if p, err := filepath.EvalSymlinks(dir); err == nil {
		dir = p
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
