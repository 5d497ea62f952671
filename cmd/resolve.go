package cmd

import (
	"github.com/spf13/cobra"

	"github.com/StinkyLord/ibuildhw/internal/output"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <category>",
	Short: "List the components of a category that fit the current build",
	Long: `Fetch the catalog for one category and filter it against the build sheet.

Candidates are sorted by price, most expensive first. When nothing fits,
the full catalog is shown together with a warning naming the unmet
constraint.

Examples:
  ibuildhw resolve motherboard
  ibuildhw resolve psus --build rig.yaml --format json --output psu.json`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	addOutputFlags(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	category, err := parseCategory(args[0])
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	a := newApp()
	defer a.Close()

	ctx := cmd.Context()
	_, state, err := a.loadBuild(ctx, flagBuild)
	if err != nil {
		return err
	}

	slots := a.newSession(state).Refresh(ctx, category)
	if len(slots) == 0 {
		// Extras have no catalog and nothing to resolve.
		cmd.PrintErrf("%s has no catalog\n", category)
		return nil
	}
	slot := slots[0]
	if slot.Err != nil {
		return output.WriteSlots(slots, flagOutput, format)
	}
	return output.WriteResolution(slot.Result, flagOutput, format)
}
