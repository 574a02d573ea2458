package catalog

import (
	"sort"

	"golang.org/x/text/cases"
)

// Section is the ordered listing for one provider and media kind:
// deduplicated and sorted alphabetically, ready for layout.
type Section struct {
	ProviderID int
	Kind       MediaKind
	Titles     []Title
}

// ProviderSections holds the two listings that make up a provider
// chapter in the book.
type ProviderSections struct {
	Movies Section
	Shows  Section
}

// Aggregate partitions a snapshot's titles by provider and media kind,
// removes duplicates, and sorts each section alphabetically. The result
// is deterministic for identical input snapshots.
//
// Duplicate titles (same name under case folding, same kind) collapse
// to one entry keeping the first-seen casing. Sorting is
// locale-invariant and case-insensitive, with the raw name as
// tie-break. A provider absent from the snapshot yields empty sections.
func Aggregate(snap *Snapshot) map[int]ProviderSections {
	out := make(map[int]ProviderSections, len(Providers))
	for _, p := range Providers {
		titles := snap.Providers[p.ID]
		out[p.ID] = ProviderSections{
			Movies: buildSection(p.ID, KindMovie, titles),
			Shows:  buildSection(p.ID, KindShow, titles),
		}
	}
	return out
}

func buildSection(providerID int, kind MediaKind, titles []Title) Section {
	folder := cases.Fold()

	seen := make(map[string]struct{})
	var unique []Title
	for _, t := range titles {
		if t.Kind != kind {
			continue
		}
		key := folder.String(t.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, t)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		a, b := folder.String(unique[i].Name), folder.String(unique[j].Name)
		if a != b {
			return a < b
		}
		return unique[i].Name < unique[j].Name
	})

	return Section{ProviderID: providerID, Kind: kind, Titles: unique}
}
