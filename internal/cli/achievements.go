package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/calegray/laurel/internal/achievement"
	"github.com/calegray/laurel/internal/store"
)

// NewAchievementsCommand creates the achievements command group:
// inspect, verify, and reset a visitor's stored unlock record.
func NewAchievementsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Manage visitor achievement records",
	}
	cmd.AddCommand(newAchievementsShowCommand(opts))
	cmd.AddCommand(newAchievementsVerifyCommand(opts))
	cmd.AddCommand(newAchievementsResetCommand(opts))
	return cmd
}

type achievementsOptions struct {
	DBPath    string
	VisitorID string
	Secret    string
}

func addAchievementsFlags(cmd *cobra.Command, o *achievementsOptions) {
	cmd.Flags().StringVar(&o.DBPath, "db", "laurel.db", "path to the database")
	cmd.Flags().StringVar(&o.VisitorID, "visitor", "", "visitor id (required)")
	cmd.Flags().StringVar(&o.Secret, "secret", "laurel", "achievement signature secret")
	cmd.MarkFlagRequired("visitor")
}

// openPersister opens the store and builds a persister for one visitor.
// The caller must close the returned store.
func openPersister(o *achievementsOptions) (*store.Store, *achievement.Persister, error) {
	st, err := store.Open(o.DBPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "cannot open database", err)
	}
	persist := achievement.NewPersister(
		st.AchievementStorage(o.VisitorID),
		o.Secret,
		achievement.DefaultCatalog().Size(),
		nil,
	)
	return st, persist, nil
}

type recordView struct {
	Visitor     string   `json:"visitor"`
	Present     bool     `json:"present"`
	SignatureOK bool     `json:"signature_ok"`
	Completed   bool     `json:"completed"`
	Unlocked    []string `json:"unlocked"`
}

func newAchievementsShowCommand(opts *RootOptions) *cobra.Command {
	o := &achievementsOptions{}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a visitor's stored unlock record",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, persist, err := openPersister(o)
			if err != nil {
				return err
			}
			defer st.Close()

			ins, err := persist.Inspect()
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot read record", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
			if opts.Format == "json" {
				return formatter.Success(recordView{
					Visitor:     o.VisitorID,
					Present:     ins.Present,
					SignatureOK: ins.SignatureOK,
					Completed:   ins.Completed,
					Unlocked:    ins.UnlockedIDs,
				})
			}

			out := cmd.OutOrStdout()
			if !ins.Present {
				fmt.Fprintf(out, "no record for visitor %s\n", o.VisitorID)
				return nil
			}

			catalog := achievement.DefaultCatalog()
			stampFor := make(map[string]int64, len(ins.Timestamps))
			for _, ts := range ins.Timestamps {
				stampFor[ts.ID] = ts.UnlockedAt
			}
			unlocked := make(map[string]bool, len(ins.UnlockedIDs))
			for _, id := range ins.UnlockedIDs {
				unlocked[id] = true
			}

			for _, def := range catalog.Definitions() {
				if unlocked[def.ID] {
					when := time.UnixMilli(stampFor[def.ID]).UTC().Format(time.RFC3339)
					color.New(color.FgGreen).Fprintf(out, "  ✓ %-15s %s (%s)\n", def.ID, def.Name, when)
				} else {
					color.New(color.Faint).Fprintf(out, "  · %-15s %s\n", def.ID, def.Name)
				}
			}
			if ins.Completed {
				color.New(color.FgYellow, color.Bold).Fprintln(out, "  🏆 all achievements completed")
			}
			if !ins.SignatureOK {
				color.New(color.FgRed).Fprintln(out, "  ! signature does not match (record will reset on next visit)")
			}
			return nil
		},
	}
	addAchievementsFlags(cmd, o)
	return cmd
}

func newAchievementsVerifyCommand(opts *RootOptions) *cobra.Command {
	o := &achievementsOptions{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the signature on a visitor's record",
		Long:  "Exits 0 when the stored record verifies, 1 when it has been tampered with.",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, persist, err := openPersister(o)
			if err != nil {
				return err
			}
			defer st.Close()

			ins, err := persist.Inspect()
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot read record", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
			switch {
			case !ins.Present:
				return formatter.Success(fmt.Sprintf("no record for visitor %s", o.VisitorID))
			case !ins.ParseOK:
				formatter.Error("E_CORRUPT", "record does not parse", nil)
				return NewExitError(ExitFailure, "record does not parse")
			case !ins.SignatureOK:
				formatter.Error("E_SIGNATURE", "signature mismatch", nil)
				return NewExitError(ExitFailure, "signature mismatch")
			default:
				return formatter.Success(fmt.Sprintf("record verifies (%d unlocked)", len(ins.UnlockedIDs)))
			}
		},
	}
	addAchievementsFlags(cmd, o)
	return cmd
}

func newAchievementsResetCommand(opts *RootOptions) *cobra.Command {
	o := &achievementsOptions{}
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear a visitor's unlock record",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, persist, err := openPersister(o)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := persist.Clear(); err != nil {
				return WrapExitError(ExitCommandError, "cannot clear record", err)
			}
			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
			return formatter.Success(fmt.Sprintf("cleared record for visitor %s", o.VisitorID))
		},
	}
	addAchievementsFlags(cmd, o)
	return cmd
}
