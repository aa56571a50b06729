package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) poolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Inspect or extend the restaurant pool",
	}

	var weekend bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List the weekday (or weekend) restaurants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool := c.app.Pool().Weekday
			if weekend {
				pool = c.app.Pool().Weekend
			}
			renderPool(cmd.OutOrStdout(), pool)
			return nil
		},
	}
	list.Flags().BoolVar(&weekend, "weekend", false, "list the weekend pool")

	var out string
	importCmd := &cobra.Command{
		Use:   "import <url|file>",
		Short: "Merge an HTML restaurant table into the weekday pool",
		Long: `Merge the first HTML table with name, cuisine and price columns into the
weekday pool and write the result as YAML. Restaurants whose name is already in
the pool are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := out
			if dest == "" {
				dest = c.cfg.PoolPath
			}
			if dest == "" {
				return fmt.Errorf("--out is required when WHAT_LUNCH_POOL_PATH is not set")
			}

			res, err := c.app.ImportRestaurants(cmd.Context(), args[0], dest)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range res.Added {
				fmt.Fprintf(w, "+ %s %s\n", mutedStyle.Render(r.ID), restaurantLine(r))
			}
			for _, name := range res.Skipped {
				fmt.Fprintf(w, "= %s %s\n", name, mutedStyle.Render("(already in pool)"))
			}
			fmt.Fprintf(w, "Added %d, skipped %d. Pool written to %s\n", len(res.Added), len(res.Skipped), dest)
			return nil
		},
	}
	importCmd.Flags().StringVarP(&out, "out", "o", "", "pool file to write (default WHAT_LUNCH_POOL_PATH)")

	cmd.AddCommand(list, importCmd)
	return cmd
}
