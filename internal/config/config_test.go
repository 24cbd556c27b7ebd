package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no config.yaml present

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "data/updates.db", cfg.Store.Path)
	assert.Equal(t, "data/sic_codes.csv", cfg.Catalog.Path)
	assert.InDelta(t, 0.6, cfg.Scorer.Match.JaccardWeight, 1e-9)
	assert.InDelta(t, 0.4, cfg.Scorer.Match.EditWeight, 1e-9)
	assert.InDelta(t, 0.05, cfg.Scorer.Match.Floor, 1e-9)
	assert.InDelta(t, 15.0, cfg.Scorer.SectorBoost, 1e-9)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	require.NotEmpty(t, cfg.Scorer.Sectors)
	names := make([]string, 0, len(cfg.Scorer.Sectors))
	for _, s := range cfg.Scorer.Sectors {
		names = append(names, s.Name)
		assert.NotEmpty(t, s.Keywords, "sector %s", s.Name)
		assert.Less(t, s.CodeLow, s.CodeHigh, "sector %s", s.Name)
	}
	assert.Contains(t, names, "catering")
	assert.Contains(t, names, "retail")
	assert.Contains(t, names, "banking")
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/sic
scorer:
  sector_boost: 10
  sectors:
    - name: transport
      keywords: [haulage, freight]
      code_low: 49100
      code_high: 49420
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/sic", cfg.Store.DatabaseURL)
	assert.InDelta(t, 10.0, cfg.Scorer.SectorBoost, 1e-9)
	require.Len(t, cfg.Scorer.Sectors, 1)
	assert.Equal(t, "transport", cfg.Scorer.Sectors[0].Name)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestDefaultSectorRules_CoverKnownCodes(t *testing.T) {
	rules := DefaultSectorRules()

	find := func(name string) SectorRule {
		for _, r := range rules {
			if r.Name == name {
				return r
			}
		}
		t.Fatalf("missing sector rule %q", name)
		return SectorRule{}
	}

	catering := find("catering")
	assert.Contains(t, catering.Keywords, "catering")
	assert.LessOrEqual(t, catering.CodeLow, 56210)
	assert.GreaterOrEqual(t, catering.CodeHigh, 56210)

	banking := find("banking")
	assert.LessOrEqual(t, banking.CodeLow, 64191)
	assert.GreaterOrEqual(t, banking.CodeHigh, 64191)
}
