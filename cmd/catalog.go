package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/normalize"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the SIC code catalog",
}

// -- catalog validate --

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the catalog and report problems",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := loadCatalog(cmd.Flag("catalog").Value.String())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Catalog OK: %d codes.\n", cat.Len())
		return nil
	},
}

// -- catalog list --

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all codes in canonical order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := loadCatalog(cmd.Flag("catalog").Value.String())
		if err != nil {
			return err
		}
		formatCatalog(os.Stdout, cat.All())
		return nil
	},
}

// -- catalog lookup --

var catalogLookupCmd = &cobra.Command{
	Use:   "lookup <code>",
	Short: "Print the canonical description for a code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd.Flag("catalog").Value.String())
		if err != nil {
			return err
		}
		desc, ok := cat.Lookup(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Code %s not in catalog.\n", args[0])
			return nil
		}
		fmt.Fprintln(os.Stdout, desc)
		return nil
	},
}

// -- catalog suggest --

var catalogSuggestCmd = &cobra.Command{
	Use:   "suggest <description>",
	Short: "Rank catalog codes against a description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, cat, err := initScorer(cmd.Flag("catalog").Value.String())
		if err != nil {
			return err
		}

		description := args[0]
		for _, a := range args[1:] {
			description += " " + a
		}
		top, _ := cmd.Flags().GetInt("top")

		candidates := sc.Engine().Score(normalize.Tokens(description), cat)
		if len(candidates) > top {
			candidates = candidates[:top]
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tSIMILARITY\tDESCRIPTION")
		for _, c := range candidates {
			fmt.Fprintf(w, "%s\t%.3f\t%s\n", c.Code, c.RawSimilarity, c.Description)
		}
		return w.Flush()
	},
}

func formatCatalog(out io.Writer, codes []model.ClassificationCode) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tDESCRIPTION")
	for _, c := range codes {
		fmt.Fprintf(w, "%s\t%s\n", c.Code, c.Description)
	}
	w.Flush() //nolint:errcheck
}

func init() {
	catalogCmd.PersistentFlags().String("catalog", "", "override the configured catalog path")
	catalogSuggestCmd.Flags().Int("top", 10, "number of candidates to print")

	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogLookupCmd)
	catalogCmd.AddCommand(catalogSuggestCmd)
	rootCmd.AddCommand(catalogCmd)
}
