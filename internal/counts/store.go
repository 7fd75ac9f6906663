// Package counts loads, queries, and atomically rewrites the budgets
// document (ratchet-counts.toml): a mapping RuleId -> RegionPath -> budget.
package counts

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/philjestin/ratchet/internal/atomicfile"
	"github.com/philjestin/ratchet/internal/model"
)

// Document is the in-memory form of ratchet-counts.toml: RuleId -> RegionPath
// -> non-negative budget. The root region "." is always implicitly present
// with budget 0 when not listed, even if this map has no entry for it.
type Document map[model.RuleId]map[string]uint

// Load reads and parses a counts document from path. A missing file is
// treated as an empty document (no rules, no regions yet configured).
func Load(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil
		}
		return nil, &model.IoError{Path: path, Err: err}
	}
	var doc Document
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, &model.CountsMalformed{Why: err.Error()}
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// RegionsFor returns the set of regions configured for rule, including the
// implicit root region.
func (d Document) RegionsFor(rule model.RuleId) []string {
	regions := map[string]struct{}{model.RootRegion: {}}
	for region := range d[rule] {
		regions[region] = struct{}{}
	}
	out := make([]string, 0, len(regions))
	for region := range regions {
		out = append(out, region)
	}
	return out
}

// Budget returns the configured budget for (rule, region), 0 for the
// implicit root region when absent.
func (d Document) Budget(rule model.RuleId, region string) uint {
	regions, ok := d[rule]
	if !ok {
		return 0
	}
	return regions[region]
}

// HasRegion reports whether region is already configured for rule (or is
// the implicit root region, which always counts as configured).
func (d Document) HasRegion(rule model.RuleId, region string) bool {
	if region == model.RootRegion {
		return true
	}
	regions, ok := d[rule]
	if !ok {
		return false
	}
	_, ok = regions[region]
	return ok
}

// SetBudget sets the budget for (rule, region). It fails with UnknownRegion
// if region is not already present in the document and is not the implicit
// root region; this is the sole source of the "regions are never
// auto-created" invariant.
func (d Document) SetBudget(rule model.RuleId, region string, n uint) error {
	if !d.HasRegion(rule, region) {
		return &model.UnknownRegion{Rule: rule, Region: region}
	}
	if region == model.RootRegion {
		if d[rule] == nil {
			d[rule] = map[string]uint{}
		}
		d[rule][model.RootRegion] = n
		return nil
	}
	d[rule][region] = n
	return nil
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for rule, regions := range d {
		cp := make(map[string]uint, len(regions))
		for region, budget := range regions {
			cp[region] = budget
		}
		out[rule] = cp
	}
	return out
}

// Write serializes the document deterministically — rules sorted by id,
// regions per rule sorted with "." first then lexicographic — and writes it
// atomically to path (temp file in the same directory, renamed over the
// target; the old file is preserved on failure).
func Write(path string, d Document) error {
	encoded, err := marshalDeterministic(d)
	if err != nil {
		return fmt.Errorf("serialize counts document: %w", err)
	}
	if err := atomicfile.Write(path, encoded, 0o644); err != nil {
		return &model.IoError{Path: path, Err: err}
	}
	return nil
}

// marshalDeterministic hand-builds the TOML text rather than relying on
// go-toml's map key ordering, since the contract (rules sorted by id;
// regions with "." first, then lexicographic) is stricter than what a
// generic map encoder guarantees.
func marshalDeterministic(d Document) ([]byte, error) {
	ruleIDs := make([]string, 0, len(d))
	for rule := range d {
		ruleIDs = append(ruleIDs, string(rule))
	}
	sort.Strings(ruleIDs)

	var out []byte
	for i, ruleID := range ruleIDs {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, fmt.Sprintf("[%s]\n", ruleID)...)
		regions := d[model.RuleId(ruleID)]
		names := make([]string, 0, len(regions))
		for region := range regions {
			names = append(names, region)
		}
		sort.Slice(names, func(a, b int) bool {
			if names[a] == model.RootRegion {
				return names[b] != model.RootRegion
			}
			if names[b] == model.RootRegion {
				return false
			}
			return names[a] < names[b]
		})
		for _, region := range names {
			line, err := toml.Marshal(map[string]uint{region: regions[region]})
			if err != nil {
				return nil, err
			}
			out = append(out, line...)
		}
	}
	return out, nil
}
