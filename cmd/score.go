package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/ingest"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/scorer"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score SIC code accuracy for one company or a whole file",
	Long: `Computes dual accuracy for companies: how well the currently assigned
SIC code matches the business description, and how well the engine's own
predicted code matches it.

Examples:
  # Score one description against its assigned code
  score --description "Biotechnology research and development" --code 73110

  # Score a company export and print a table
  score --input companies.csv

  # Score an XLSX export with 16 workers, save an audit row, emit JSON
  score --input companies.xlsx --workers 16 --save --format json`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("description", "", "business description to score (single mode)")
	f.String("code", "", "currently assigned SIC code (single mode)")
	f.String("input", "", "CSV or XLSX company export (batch mode)")
	f.String("catalog", "", "override the configured catalog path")
	f.Int("workers", 0, "concurrent scoring workers (0 = config default)")
	f.String("format", "table", "output format: table or json")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("save", false, "record a score-run audit row in the store")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, _ := cmd.Flags().GetString("input")
	description, _ := cmd.Flags().GetString("description")
	code, _ := cmd.Flags().GetString("code")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")

	if format != "table" && format != "json" {
		return eris.Errorf("score: --format must be table or json (got %q)", format)
	}
	if input == "" && description == "" {
		return eris.New("score: provide --input for batch mode or --description for single mode")
	}

	sc, _, err := initScorer(catalogPath)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrap(err, "score: create output")
		}
		defer f.Close()
		out = f
	}

	// Single mode scores an ad-hoc description without touching the store.
	if input == "" {
		result := sc.ScoreCompany(model.CompanyRecord{
			ID:                  "adhoc",
			BusinessDescription: description,
			CurrentCode:         code,
		})
		return writeScores(out, format, []model.CompanyScore{result})
	}

	return runScoreBatch(ctx, cmd, sc, out, format, input, save)
}

func runScoreBatch(ctx context.Context, cmd *cobra.Command, sc *scorer.Scorer, out io.Writer, format, input string, save bool) error {
	companies, err := ingest.ReadCompanies(input)
	if err != nil {
		return err
	}

	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = cfg.Batch.Workers
	}

	var runID string
	var st store.Store
	if save {
		s, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close() //nolint:errcheck
		if err := s.Migrate(ctx); err != nil {
			return err
		}
		run, err := s.CreateScoreRun(ctx, input, len(companies))
		if err != nil {
			return err
		}
		runID = run.ID
		st = s
	}

	scores, err := sc.ScoreBatch(ctx, companies, workers)
	if err != nil {
		return eris.Wrap(err, "score: batch")
	}

	if save {
		scored := 0
		for _, s := range scores {
			if s.Old.Evaluable || s.New.Evaluable {
				scored++
			}
		}
		if err := st.CompleteScoreRun(ctx, runID, scored); err != nil {
			return err
		}
		zap.L().Info("score: run recorded",
			zap.String("run_id", runID),
			zap.Int("total", len(companies)),
			zap.Int("scored", scored),
		)
	}

	return writeScores(out, format, scores)
}

func writeScores(out io.Writer, format string, scores []model.CompanyScore) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(scores), "score: encode json")
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COMPANY\tNAME\tCODE\tOLD%\tPREDICTED\tNEW%\tBAND")
	for _, s := range scores {
		oldAcc := "n/a"
		if s.Old.Evaluable {
			oldAcc = fmt.Sprintf("%.1f", s.Old.Accuracy)
		}
		predicted, newAcc, band := "-", "n/a", "-"
		if s.Predicted != nil {
			predicted = s.Predicted.Code
		}
		if s.New.Evaluable {
			newAcc = fmt.Sprintf("%.1f", s.New.Accuracy)
			band = string(model.BandFor(s.New.Accuracy))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Company.ID, s.Company.Name, s.Company.CurrentCode,
			oldAcc, predicted, newAcc, band)
	}
	return eris.Wrap(w.Flush(), "score: flush table")
}
