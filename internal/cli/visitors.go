package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calegray/laurel/internal/store"
)

// NewVisitorsCommand creates the visitors command group.
func NewVisitorsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visitors",
		Short: "Inspect and maintain visitor tracking data",
	}
	cmd.AddCommand(newVisitorsStatsCommand(opts))
	cmd.AddCommand(newVisitorsCleanupCommand(opts))
	return cmd
}

func newVisitorsStatsCommand(opts *RootOptions) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show visitor counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(dbPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot open database", err)
			}
			defer st.Close()

			stats, err := st.Visitors().Stats(context.Background())
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot read stats", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
			if opts.Format == "json" {
				return formatter.Success(stats)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "total:     %d\n", stats.Total)
			fmt.Fprintf(out, "unique:    %d\n", stats.Unique)
			fmt.Fprintf(out, "today:     %d\n", stats.Today)
			fmt.Fprintf(out, "this week: %d\n", stats.ThisWeek)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "laurel.db", "path to the database")
	return cmd
}

func newVisitorsCleanupCommand(opts *RootOptions) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete visit records past the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(dbPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot open database", err)
			}
			defer st.Close()

			deleted, err := st.Visitors().CleanupExpired(context.Background())
			if err != nil {
				return WrapExitError(ExitCommandError, "cleanup failed", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
			if opts.Format == "json" {
				return formatter.Success(map[string]int64{"deleted": deleted})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d expired visit records\n", deleted)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "laurel.db", "path to the database")
	return cmd
}
