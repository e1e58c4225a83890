// Package nutrition holds the pure nutrient arithmetic used by the tracker.
package nutrition

import "github.com/pageza/recipe-tracker/backend/internal/models"

// MergeNutrients adds b into a by nutrient name.
//
// When a is empty, b is returned as is and the result shares b's backing
// array. Otherwise the result holds every entry of a in order, followed by
// the names only b has. Matching names are summed and keep a's unit; when
// the two units differ but are convertible, b's amount is converted first.
func MergeNutrients(a, b []models.Nutrient) []models.Nutrient {
	if len(a) == 0 {
		return b
	}

	merged := make([]models.Nutrient, len(a), len(a)+len(b))
	copy(merged, a)

	index := make(map[string]int, len(merged))
	for i, n := range merged {
		index[n.Name] = i
	}

	for _, n := range b {
		i, ok := index[n.Name]
		if !ok {
			index[n.Name] = len(merged)
			merged = append(merged, n)
			continue
		}
		amount := n.Amount
		if converted, ok := Convert(n.Amount, n.Unit, merged[i].Unit); ok {
			amount = converted
		}
		merged[i].Amount += amount
	}

	return merged
}

// Find returns the nutrient with the given name.
func Find(nutrients []models.Nutrient, name string) (models.Nutrient, bool) {
	for _, n := range nutrients {
		if n.Name == name {
			return n, true
		}
	}
	return models.Nutrient{}, false
}

// Normalize folds entries that share a name into the first of them, keeping
// its unit and position. The input is not modified.
func Normalize(nutrients []models.Nutrient) []models.Nutrient {
	out := make([]models.Nutrient, 0, len(nutrients))
	index := make(map[string]int, len(nutrients))
	for _, n := range nutrients {
		i, ok := index[n.Name]
		if !ok {
			index[n.Name] = len(out)
			out = append(out, n)
			continue
		}
		amount, _ := Convert(n.Amount, n.Unit, out[i].Unit)
		out[i].Amount += amount
	}
	return out
}
