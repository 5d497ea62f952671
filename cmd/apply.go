package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/StinkyLord/ibuildhw/internal/build"
	"github.com/StinkyLord/ibuildhw/internal/catalog"
	"github.com/StinkyLord/ibuildhw/internal/model"
)

var applyCmd = &cobra.Command{
	Use:   "apply <recommendation.json>",
	Short: "Re-seed the build sheet from an optimizer recommendation",
	Long: `Read an optimizer response ({"explanation": ..., "recommended_components":
{"cpus": "12", ...}}) and select every recommended component, replacing the
current choice in those slots. Unknown ids are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read recommendation: %w", err)
	}
	var rec build.Recommendation
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("failed to parse recommendation: %w", err)
	}

	a := newApp()
	defer a.Close()

	ctx := cmd.Context()
	sheet, state, err := a.loadBuild(ctx, flagBuild)
	if err != nil {
		return err
	}

	var categories []model.Category
	for key := range rec.RecommendedComponents {
		if c, err := model.ParseCategory(key); err == nil {
			categories = append(categories, c)
		}
	}
	catalogs := catalog.Catalogs(a.catalogs.FetchAll(ctx, categories))

	state, err = build.Reseed(state, rec, catalogs)
	if err != nil {
		// Partial re-seeds are still saved.
		logger.Warn("Recommendation partially applied", zap.Error(err))
	}
	for _, c := range state.Selected() {
		sheet.Set(c.Category, c.ID)
	}
	if err := sheet.Save(flagBuild); err != nil {
		return err
	}

	if rec.Explanation != "" {
		fmt.Fprintln(cmd.OutOrStdout(), rec.Explanation)
	}
	for _, c := range a.resolver.Audit(state) {
		cmd.PrintErrf("conflict: %s\n", c.Message)
	}
	return nil
}
