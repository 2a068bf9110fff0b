package main

import (
	"os"

	"github.com/cottand/semtype/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "semtype [subcommand]",
	Short:        "semtype\n a semantic subtyping engine for set-theoretic types",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.ShowCmd)
}
