package cmd

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cottand/semtype/internal/log"
	"github.com/cottand/semtype/semerr"
	"github.com/cottand/semtype/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check file.yaml...",
	Short:        "Check the expectations of conformance suites",
	RunE:         runCheck,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var (
	checkLogLevel *int
	checkJobs     *int
	checkVerbose  *bool
	checkNoCache  *bool
)

func init() {
	checkLogLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
	checkJobs = CheckCmd.Flags().IntP("jobs", "j", runtime.GOMAXPROCS(0), "queries to evaluate concurrently")
	checkVerbose = CheckCmd.Flags().BoolP("verbose", "v", false, "also print the queries that pass")
	checkNoCache = CheckCmd.Flags().Bool("no-cache", false, "do not reuse subtype verdicts across queries")
}

// runCheck loads every suite into one Env, so suites may not see each
// other's declarations but do share interned types and cached verdicts
func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*checkLogLevel))
	env := types.NewEnv(types.EnvSettings{DisableVerdictCache: *checkNoCache})
	out := cmd.OutOrStdout()

	var loadErrs *semerr.Errors
	total, failed := 0, 0
	for _, target := range args {
		suite, err := loadSuite(env, target)
		if err != nil {
			loadErrs = loadErrs.With(err)
			continue
		}
		results, err := suite.Run(cmd.Context(), *checkJobs)
		if err != nil {
			return errors.Wrapf(err, "could not run %s", target)
		}
		for _, r := range results {
			total++
			switch {
			case !r.OK():
				failed++
				_, _ = fmt.Fprintf(out, "FAIL %s:%d: %s: expected %v, got %v\n", target, r.Query.Line, r.Query, r.Query.Expect, r.Got)
			case *checkVerbose:
				_, _ = fmt.Fprintf(out, "ok   %s:%d: %s\n", target, r.Query.Line, r.Query)
			}
		}
	}
	_, _ = fmt.Fprintf(out, "%d/%d queries passed\n", total-failed, total)

	if loadErrs.HasError() {
		return errors.Wrap(loadErrs, "could not load every suite")
	}
	if failed > 0 {
		return errors.Errorf("%d of %d queries failed", failed, total)
	}
	return nil
}
