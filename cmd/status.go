package cmd

import (
	"github.com/spf13/cobra"

	"github.com/StinkyLord/ibuildhw/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the build: selections, total price and conflicts",
	Long: `Print the build sheet's selections with their prices, the total, the
slots still open and any pair of selections that no longer fit each other.

The JSON form carries a urn:uuid serial number and the flat payload the
build store accepts.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	addOutputFlags(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	a := newApp()
	defer a.Close()

	sheet, state, err := a.loadBuild(cmd.Context(), flagBuild)
	if err != nil {
		return err
	}
	report := output.BuildReport(state, a.resolver.Audit(state), sheet.Name, sheet.Purpose, toolVersion)
	return output.WriteStatus(report, flagOutput, format)
}
