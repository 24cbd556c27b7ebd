package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/updates"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm <company-id>",
	Short: "Confirm a corrected SIC code for a company",
	Long: `Records an analyst-confirmed code override. The new code must exist
in the catalog; re-confirming the same company overwrites the previous record.

Example:
  confirm C-12345 --new-code 56210 --new-accuracy 88 --old-code 47110 --old-accuracy 40 --actor analyst`,
	Args: cobra.ExactArgs(1),
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

		cat, err := loadCatalog(cmd.Flag("catalog").Value.String())
		if err != nil {
			return err
		}

		oldCode, _ := cmd.Flags().GetString("old-code")
		newCode, _ := cmd.Flags().GetString("new-code")
		oldAccuracy, _ := cmd.Flags().GetFloat64("old-accuracy")
		newAccuracy, _ := cmd.Flags().GetFloat64("new-accuracy")
		confidence, _ := cmd.Flags().GetFloat64("confidence")
		actor, _ := cmd.Flags().GetString("actor")

		svc := updates.New(cat, st)
		rec, err := svc.Confirm(ctx, model.UpdateRequest{
			CompanyID:   args[0],
			OldCode:     oldCode,
			NewCode:     newCode,
			OldAccuracy: oldAccuracy,
			NewAccuracy: newAccuracy,
			Confidence:  confidence,
			Actor:       actor,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Confirmed %s: %s -> %s (accuracy %.1f, confidence %.2f)\n",
			rec.CompanyID, rec.OldCode, rec.NewCode, rec.NewAccuracy, rec.Confidence)
		return nil
	},
}

func init() {
	f := confirmCmd.Flags()
	f.String("old-code", "", "previously assigned code")
	f.String("new-code", "", "confirmed catalog code (required)")
	f.Float64("old-accuracy", 0, "accuracy of the old code, 0..100")
	f.Float64("new-accuracy", 0, "accuracy of the new code, 0..100")
	f.Float64("confidence", 0, "confidence 0..1 (default: new accuracy / 100)")
	f.String("actor", "", "who confirmed the change")
	f.String("catalog", "", "override the configured catalog path")
	_ = confirmCmd.MarkFlagRequired("new-code")

	rootCmd.AddCommand(confirmCmd)
}
