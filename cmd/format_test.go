//go:build !integration

package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
)

func TestWriteScores_Table(t *testing.T) {
	scores := []model.CompanyScore{
		{
			Company: model.CompanyRecord{ID: "C-1", Name: "Acme Catering Ltd", CurrentCode: "47110"},
			Old:     model.AccuracyResult{Code: "47110", Accuracy: 42.5, Evaluable: true},
			Predicted: &model.MatchCandidate{
				Code: "56210", Description: "Event catering activities", RawSimilarity: 0.72,
			},
			New: model.AccuracyResult{Code: "56210", Accuracy: 87.0, Evaluable: true},
		},
		{
			Company: model.CompanyRecord{ID: "C-2", Name: "Empty Desc plc"},
			Old:     model.AccuracyResult{Evaluable: false},
			New:     model.AccuracyResult{Evaluable: false},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeScores(&buf, "table", scores))

	output := buf.String()
	assert.Contains(t, output, "COMPANY")
	assert.Contains(t, output, "Acme Catering Ltd")
	assert.Contains(t, output, "56210")
	assert.Contains(t, output, "87.0")
	assert.Contains(t, output, "high")
	// Unevaluable rows show n/a, not a misleading zero.
	assert.Contains(t, output, "n/a")
}

func TestWriteScores_JSON(t *testing.T) {
	scores := []model.CompanyScore{
		{
			Company: model.CompanyRecord{ID: "C-1", BusinessDescription: "event catering"},
			New:     model.AccuracyResult{Code: "56210", Accuracy: 87.0, Evaluable: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeScores(&buf, "json", scores))
	assert.Contains(t, buf.String(), `"code": "56210"`)
	assert.Contains(t, buf.String(), `"evaluable": true`)
}

func TestFormatUpdatesList(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []model.UpdateRecord{
		{
			CompanyID:   "C-1",
			OldCode:     "47110",
			NewCode:     "56210",
			OldAccuracy: 40,
			NewAccuracy: 88,
			Confidence:  0.88,
			UpdatedAt:   now,
			Actor:       "analyst",
		},
		{
			CompanyID:   "C-2",
			NewCode:     "64191",
			NewAccuracy: 91,
			Confidence:  0.91,
			UpdatedAt:   now,
			Actor:       "reviewer",
		},
	}

	var buf bytes.Buffer
	formatUpdatesList(&buf, records)

	output := buf.String()
	assert.Contains(t, output, "COMPANY")
	assert.Contains(t, output, "analyst")
	assert.Contains(t, output, "56210")
	assert.Contains(t, output, "2026-03-01T09:00:00Z")
	// Absent old code renders as a dash.
	assert.Contains(t, output, "-")
}

func TestFormatRunsList(t *testing.T) {
	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	finished := started.Add(90 * time.Second)
	runs := []model.ScoreRun{
		{
			ID:         "run-1",
			Source:     "companies.csv",
			Total:      250,
			Scored:     248,
			Status:     model.ScoreRunComplete,
			StartedAt:  started,
			FinishedAt: &finished,
		},
		{
			ID:        "run-2",
			Source:    "companies.xlsx",
			Total:     80,
			Status:    model.ScoreRunRunning,
			StartedAt: started,
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "companies.csv")
	assert.Contains(t, output, "complete")
	assert.Contains(t, output, "running")
	assert.Contains(t, output, "248")
}
