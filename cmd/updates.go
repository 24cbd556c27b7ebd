package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/store"
)

var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "Inspect confirmed code overrides",
}

// -- updates list --

var updatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List confirmed overrides, most recent first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		actor, _ := cmd.Flags().GetString("actor")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		records, err := st.ListUpdates(ctx, store.UpdateFilter{Actor: actor, Limit: limit, Offset: offset})
		if err != nil {
			return eris.Wrap(err, "updates list")
		}

		if len(records) == 0 {
			fmt.Fprintln(os.Stderr, "No confirmed updates found.")
			return nil
		}

		formatUpdatesList(os.Stdout, records)
		return nil
	},
}

// -- updates show --

var updatesShowCmd = &cobra.Command{
	Use:   "show <company-id>",
	Short: "Show the confirmed override for one company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		rec, err := st.GetUpdate(ctx, args[0])
		if err != nil {
			return eris.Wrapf(err, "updates show %s", args[0])
		}
		if rec == nil {
			fmt.Fprintf(os.Stderr, "No confirmed update for %s.\n", args[0])
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func formatUpdatesList(out io.Writer, records []model.UpdateRecord) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COMPANY\tOLD\tNEW\tOLD%\tNEW%\tCONF\tACTOR\tUPDATED")
	for _, r := range records {
		old := r.OldCode
		if old == "" {
			old = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.1f\t%.2f\t%s\t%s\n",
			r.CompanyID, old, r.NewCode, r.OldAccuracy, r.NewAccuracy,
			r.Confidence, r.Actor, r.UpdatedAt.Format(time.RFC3339))
	}
	w.Flush() //nolint:errcheck
}

func init() {
	updatesListCmd.Flags().String("actor", "", "filter by actor")
	updatesListCmd.Flags().Int("limit", 0, "maximum rows (0 = default)")
	updatesListCmd.Flags().Int("offset", 0, "rows to skip")

	updatesCmd.AddCommand(updatesListCmd)
	updatesCmd.AddCommand(updatesShowCmd)
	rootCmd.AddCommand(updatesCmd)
}
