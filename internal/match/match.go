// Package match implements the deterministic fuzzy similarity engine used to
// compare normalized business descriptions against the SIC catalog.
//
// Matching is an exhaustive O(n) scan over the catalog. The catalog is small
// and static (hundreds of entries), so a scan stays simpler and more
// auditable than an index and is fast enough for per-request use.
package match

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/catalog"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/normalize"
)

// Config holds the similarity metric weights and the minimum score floor.
type Config struct {
	JaccardWeight float64 `yaml:"jaccard_weight" mapstructure:"jaccard_weight"`
	EditWeight    float64 `yaml:"edit_weight" mapstructure:"edit_weight"`
	Floor         float64 `yaml:"floor" mapstructure:"floor"`
}

// DefaultConfig returns the standard metric weighting. Token overlap carries
// most of the signal; the edit-distance ratio catches spelling variants the
// token comparison misses.
func DefaultConfig() Config {
	return Config{
		JaccardWeight: 0.6,
		EditWeight:    0.4,
		Floor:         0.05,
	}
}

// Engine scores token sets against catalog entries. It is stateless and safe
// for unrestricted concurrent use.
type Engine struct {
	cfg Config
}

// New creates an Engine. Zero-valued weights fall back to the defaults.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.JaccardWeight <= 0 && cfg.EditWeight <= 0 {
		cfg.JaccardWeight = def.JaccardWeight
		cfg.EditWeight = def.EditWeight
	}
	if cfg.Floor <= 0 {
		cfg.Floor = def.Floor
	}
	return &Engine{cfg: cfg}
}

// Floor returns the minimum similarity a candidate must clear.
func (e *Engine) Floor() float64 {
	return e.cfg.Floor
}

// Similarity computes the combined similarity of two normalized token sets.
// The result is in [0,1], symmetric, and stable across runs.
func (e *Engine) Similarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	j := tokenOverlap(a, b)
	ed := editRatio(normalize.Join(a), normalize.Join(b))

	total := e.cfg.JaccardWeight + e.cfg.EditWeight
	sim := (e.cfg.JaccardWeight*j + e.cfg.EditWeight*ed) / total

	switch {
	case sim < 0:
		return 0
	case sim > 1:
		return 1
	default:
		return sim
	}
}

// Score ranks every catalog entry against the token set, descending by raw
// similarity. Ties are broken by canonical code ordering so repeated calls
// with identical inputs always produce identical output.
func (e *Engine) Score(tokens []string, cat *catalog.Catalog) []model.MatchCandidate {
	entries := cat.Entries()
	out := make([]model.MatchCandidate, 0, len(entries))
	for _, entry := range entries {
		out = append(out, model.MatchCandidate{
			Code:          entry.Code,
			Description:   entry.Description,
			RawSimilarity: e.Similarity(tokens, entry.Tokens),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RawSimilarity != out[j].RawSimilarity {
			return out[i].RawSimilarity > out[j].RawSimilarity
		}
		return catalog.CompareCodes(out[i].Code, out[j].Code) < 0
	})
	return out
}

// BestMatch returns the top candidate, or ok=false when the token set is
// empty or no candidate clears the floor. Callers must treat ok=false as "no
// prediction available" and never substitute a fabricated code.
func (e *Engine) BestMatch(tokens []string, cat *catalog.Catalog) (model.MatchCandidate, bool) {
	if len(tokens) == 0 || cat.Len() == 0 {
		return model.MatchCandidate{}, false
	}

	best := model.MatchCandidate{RawSimilarity: -1}
	for _, entry := range cat.Entries() {
		sim := e.Similarity(tokens, entry.Tokens)
		if sim > best.RawSimilarity ||
			(sim == best.RawSimilarity && catalog.CompareCodes(entry.Code, best.Code) < 0) {
			best = model.MatchCandidate{
				Code:          entry.Code,
				Description:   entry.Description,
				RawSimilarity: sim,
			}
		}
	}

	if best.RawSimilarity < e.cfg.Floor {
		return model.MatchCandidate{}, false
	}
	return best, true
}

// tokenOverlap blends the Jaccard index with the overlap coefficient
// (intersection over the smaller set). Plain Jaccard punishes a description
// that fully contains a short catalog entry for carrying extra detail; the
// overlap coefficient treats the subset as a full match. Both halves are
// symmetric, so the blend is too.
func tokenOverlap(a, b []string) float64 {
	seen := make(map[string]struct{}, len(a))
	for _, t := range a {
		seen[t] = struct{}{}
	}
	inter := 0
	for _, t := range b {
		if _, ok := seen[t]; ok {
			inter++
		}
	}

	union := len(a) + len(b) - inter
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	if union == 0 || smaller == 0 {
		return 0
	}

	jaccard := float64(inter) / float64(union)
	containment := float64(inter) / float64(smaller)
	return (jaccard + containment) / 2
}

// editRatio converts Levenshtein distance to a similarity in [0,1].
func editRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(dist)/float64(longest)
}
