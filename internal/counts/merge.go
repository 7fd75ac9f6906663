package counts

import "github.com/philjestin/ratchet/internal/model"

// Merge computes the pointwise minimum of ours and theirs: for every
// (rule, region) appearing in ours ∪ theirs, the merged value is
// min(ours, theirs) where a missing side is treated as +∞ (so the present
// side wins). A region present in only one side survives. base is not
// consulted — "minimum wins" is monotonic and sufficient on its own,
// avoiding conflicted three-way logic.
func Merge(ours, theirs Document) Document {
	out := Document{}
	for rule, regions := range ours {
		out[rule] = cloneRegions(regions)
	}
	for rule, regions := range theirs {
		dst, ok := out[rule]
		if !ok {
			out[rule] = cloneRegions(regions)
			continue
		}
		for region, budget := range regions {
			if existing, present := dst[region]; !present || budget < existing {
				dst[region] = budget
			}
		}
	}
	return out
}

func cloneRegions(regions map[string]uint) map[string]uint {
	out := make(map[string]uint, len(regions))
	for region, budget := range regions {
		out[region] = budget
	}
	return out
}

// EnsureRoot makes sure the root region is present for every rule that
// appears in d, persisting the "." entry once it has been observed rather
// than re-deriving it as implicit on every load.
func EnsureRoot(d Document) {
	for rule, regions := range d {
		if _, ok := regions[model.RootRegion]; !ok {
			regions[model.RootRegion] = 0
		}
		d[rule] = regions
	}
}
