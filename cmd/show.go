package cmd

import (
	"fmt"
	"log/slog"

	"github.com/cottand/semtype/internal/log"
	"github.com/cottand/semtype/types"
	"github.com/spf13/cobra"
)

var ShowCmd = &cobra.Command{
	Use:          "show file.yaml",
	Short:        "Print the normalized form of the types declared in a suite",
	RunE:         runShow,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var showLogLevel *int

func init() {
	showLogLevel = ShowCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runShow(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*showLogLevel))
	env := types.NewEnv(types.EnvSettings{})
	suite, err := loadSuite(env, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, d := range suite.Declarations {
		_, _ = fmt.Fprintf(out, "%s = %s\n", d.Name, d.Type)
		if env.IsEmpty(d.Type) {
			_, _ = fmt.Fprintf(out, "\tempty\n")
			continue
		}
		categories := env.BasicCategoriesOf(d.Type).StringFunc(types.BasicTypeCode.String)
		_, _ = fmt.Fprintf(out, "\tcategories: %s\n", categories)
	}
	return nil
}
