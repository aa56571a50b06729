package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"what-lunch/internal/history"
)

func (c *cli) historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List confirmed lunches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.app.History(cmd.Context(), c.userID)
			if err != nil {
				return err
			}
			lookback, err := c.app.Lookback(cmd.Context(), c.userID)
			if err != nil {
				return err
			}
			renderHistory(cmd.OutOrStdout(), entries, lookback, limit)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most n entries (0 for all)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "rm <entry-id>",
			Short: "Remove one history entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				err := c.app.RemoveHistory(cmd.Context(), c.userID, args[0])
				if errors.Is(err, history.ErrEntryNotFound) {
					return fmt.Errorf("no history entry %q", args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every history entry",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := c.app.ClearHistory(cmd.Context(), c.userID); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "lookback [days]",
			Short: "Show or set how many business days a visit stays recent",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) == 0 {
					days, err := c.app.Lookback(cmd.Context(), c.userID)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Lookback: %d business days\n", days)
					return nil
				}
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("lookback must be a number, got %q", args[0])
				}
				days, err := c.app.SetLookback(cmd.Context(), c.userID, n)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Lookback set to %d business days\n", days)
				return nil
			},
		},
	)
	return cmd
}
