package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/StinkyLord/ibuildhw/internal/model"
)

var (
	flagName    string
	flagPurpose string
)

var selectCmd = &cobra.Command{
	Use:   "select <category> <id>",
	Short: "Choose a component for a slot in the build sheet",
	Long: `Record a component id in the build sheet. Use '-' as the id to clear the
slot. The id is checked against the category's catalog.

Other selections are never cleared automatically; if the new choice
conflicts with them the conflict is reported and 'status' keeps showing
it until one side is changed.

Examples:
  ibuildhw select cpu 12
  ibuildhw select purpose 1440p-gaming
  ibuildhw select gpu -`,
	Args: cobra.ExactArgs(2),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringVar(&flagName, "name", "", "Set the build name")
	selectCmd.Flags().StringVar(&flagPurpose, "purpose", "", "Set the free-text build purpose")
}

func runSelect(cmd *cobra.Command, args []string) error {
	category, err := parseCategory(args[0])
	if err != nil {
		return err
	}
	id := args[1]

	a := newApp()
	defer a.Close()

	ctx := cmd.Context()
	sheet, state, err := a.loadBuild(ctx, flagBuild)
	if err != nil {
		return err
	}
	sess := a.newSession(state)

	if id == "-" {
		sess.Select(category, nil)
		sheet.Set(category, "")
	} else {
		if category == model.CategoryExtra {
			// Extras have no catalog to check against.
			sess.Select(category, model.NewExtra(id))
		} else if err := sess.SelectByID(ctx, category, id); err != nil {
			return err
		}
		sheet.Set(category, id)
	}
	if flagName != "" {
		sheet.Name = flagName
	}
	if flagPurpose != "" {
		sheet.Purpose = flagPurpose
	}

	if err := sheet.Save(flagBuild); err != nil {
		return err
	}
	logger.Info("Build sheet updated",
		zap.String("path", flagBuild),
		zap.String("category", string(category)),
		zap.String("id", id))

	for _, c := range sess.Conflicts() {
		cmd.PrintErrf("conflict: %s\n", c.Message)
	}
	return nil
}
