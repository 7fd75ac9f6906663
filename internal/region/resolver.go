// Package region implements longest-configured-prefix attribution of a
// file path to a rule's region set.
package region

import "github.com/philjestin/ratchet/internal/model"

// Resolve returns the region in configuredRegions whose path components are
// the longest component-wise prefix of filePath's directory. configuredRegions
// must include the implicit root region ("."); ties cannot occur because one
// candidate region is always a strict prefix of any other that also matches.
func Resolve(configuredRegions []string, filePath string) string {
	dir := model.DirComponents(filePath)

	best := model.RootRegion
	bestLen := -1
	for _, candidate := range configuredRegions {
		comps := model.RegionComponents(candidate)
		if !model.IsPrefixOf(comps, dir) {
			continue
		}
		if len(comps) > bestLen {
			best = candidate
			bestLen = len(comps)
		}
	}
	return best
}
