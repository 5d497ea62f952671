package cmd

import (
	"github.com/spf13/cobra"

	"github.com/StinkyLord/ibuildhw/internal/model"
	"github.com/StinkyLord/ibuildhw/internal/output"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [category...]",
	Short: "Resolve every open slot (or the given ones) concurrently",
	Long: `Fetch and resolve several slots at once. With no arguments every slot
without a selection is refreshed. A slot whose catalog cannot be fetched
is shown empty with the error.`,
	RunE: runRefresh,
}

func init() {
	addOutputFlags(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	var categories []model.Category
	for _, arg := range args {
		c, err := parseCategory(arg)
		if err != nil {
			return err
		}
		categories = append(categories, c)
	}

	a := newApp()
	defer a.Close()

	ctx := cmd.Context()
	_, state, err := a.loadBuild(ctx, flagBuild)
	if err != nil {
		return err
	}
	slots := a.newSession(state).Refresh(ctx, categories...)
	return output.WriteSlots(slots, flagOutput, format)
}
