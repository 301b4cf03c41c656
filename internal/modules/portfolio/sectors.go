package portfolio

import (
	"sort"

	"github.com/aristath/stockfolio/internal/domain"
)

// AllSectors is the synthetic selection meaning "no filter"
const AllSectors = "All Sectors"

// DistinctSectors returns AllSectors followed by every sector present in the
// holdings, each exactly once, sorted alphabetically.
func DistinctSectors(holdings []domain.Holding) []string {
	seen := make(map[string]struct{}, len(holdings))
	sectors := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if _, ok := seen[h.Sector]; ok {
			continue
		}
		seen[h.Sector] = struct{}{}
		sectors = append(sectors, h.Sector)
	}
	sort.Strings(sectors)

	return append([]string{AllSectors}, sectors...)
}

// IsAllSectors reports whether a selection means "no filter"
func IsAllSectors(selected string) bool {
	return selected == "" || selected == AllSectors
}

// FilterBySector returns the holdings in the selected sector, preserving order.
// AllSectors (or an empty selection) returns the input unchanged; an unknown
// sector yields an empty slice.
func FilterBySector(holdings []domain.Holding, selected string) []domain.Holding {
	if IsAllSectors(selected) {
		return holdings
	}

	filtered := make([]domain.Holding, 0)
	for _, h := range holdings {
		if h.Sector == selected {
			filtered = append(filtered, h)
		}
	}
	return filtered
}
