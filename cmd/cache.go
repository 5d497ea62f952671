package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/StinkyLord/ibuildhw/internal/catalog"
	"github.com/StinkyLord/ibuildhw/internal/model"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local catalog cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [category...]",
	Short: "Drop cached catalogs (all of them when no category is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var categories []model.Category
		for _, arg := range args {
			c, err := parseCategory(arg)
			if err != nil {
				return err
			}
			categories = append(categories, c)
		}

		cache, err := catalog.OpenCache(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer cache.Close()

		if err := cache.Invalidate(cmd.Context(), categories...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Path())
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
