// Package catalog holds the immutable SIC code table loaded once at startup.
// It is read-only after Load and safe for unsynchronized concurrent use.
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/model"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/normalize"
)

// ErrLoad marks a fatal catalog source problem (duplicate code or empty
// description). Startup must abort when Load returns it.
var ErrLoad = eris.New("catalog: invalid source")

// Entry is one catalog row with its description tokens precomputed, so the
// per-query matching cost is a scan, not repeated normalization.
type Entry struct {
	Code        string
	Description string
	Tokens      []string
}

// Catalog is the complete, immutable set of valid classification codes.
type Catalog struct {
	entries []Entry
	byCode  map[string]int
}

// Load validates and indexes an already-parsed tabular source. It fails on
// duplicate codes and empty descriptions; blank code rows are rejected too.
func Load(codes []model.ClassificationCode) (*Catalog, error) {
	entries := make([]Entry, 0, len(codes))
	byCode := make(map[string]int, len(codes))

	for i, cc := range codes {
		code := strings.TrimSpace(cc.Code)
		desc := strings.TrimSpace(cc.Description)

		if code == "" {
			return nil, eris.Wrapf(ErrLoad, "row %d: empty code", i)
		}
		if desc == "" {
			return nil, eris.Wrapf(ErrLoad, "code %s: empty description", code)
		}
		if _, dup := byCode[code]; dup {
			return nil, eris.Wrapf(ErrLoad, "duplicate code %s", code)
		}

		byCode[code] = len(entries)
		entries = append(entries, Entry{
			Code:        code,
			Description: desc,
			Tokens:      normalize.Tokens(desc),
		})
	}

	// Canonical ordering (numeric, then lexical) so exhaustive scans and
	// tie-breaks are deterministic regardless of source row order.
	sort.Slice(entries, func(i, j int) bool {
		return CompareCodes(entries[i].Code, entries[j].Code) < 0
	})
	for i, e := range entries {
		byCode[e.Code] = i
	}

	zap.L().Info("catalog: loaded",
		zap.Int("codes", len(entries)),
	)
	return &Catalog{entries: entries, byCode: byCode}, nil
}

// Lookup returns the canonical description for a code.
func (c *Catalog) Lookup(code string) (string, bool) {
	i, ok := c.byCode[strings.TrimSpace(code)]
	if !ok {
		return "", false
	}
	return c.entries[i].Description, true
}

// Entry returns the full precomputed entry for a code.
func (c *Catalog) Entry(code string) (Entry, bool) {
	i, ok := c.byCode[strings.TrimSpace(code)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Entries returns all entries in canonical code order. Callers must not
// mutate the returned slice.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// All returns every code/description pair in canonical code order.
func (c *Catalog) All() []model.ClassificationCode {
	out := make([]model.ClassificationCode, len(c.entries))
	for i, e := range c.entries {
		out[i] = model.ClassificationCode{Code: e.Code, Description: e.Description}
	}
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// CompareCodes orders codes numerically when both parse as integers, and
// lexically otherwise; numeric codes sort before non-numeric ones.
func CompareCodes(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
