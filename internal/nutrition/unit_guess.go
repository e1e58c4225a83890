package nutrition

import "strings"

const (
	UnitGrams  = "g"
	UnitPieces = "pcs"
)

// countable holds ingredient nouns that are naturally counted rather than weighed.
var countable = []string{
	"egg", "apple", "banana", "orange", "lemon", "lime", "avocado", "onion",
	"shallot", "potato", "tomato", "carrot", "cucumber", "zucchini", "pepper",
	"clove", "bagel", "tortilla", "bun", "roll", "pita", "muffin", "peach",
	"pear", "plum", "mango", "kiwi", "date", "fig", "leek", "chili", "chilli",
	"eggplant", "aubergine", "artichoke", "can", "slice", "sausage",
}

// GuessUnit picks the pantry unit for an ingredient name: pieces for
// countable produce and baked goods, grams for everything else.
func GuessUnit(name string) string {
	words := strings.Fields(strings.ToLower(name))
	if len(words) == 0 {
		return UnitGrams
	}
	last := singular(words[len(words)-1])
	for _, c := range countable {
		if last == c {
			return UnitPieces
		}
	}
	return UnitGrams
}

func singular(w string) string {
	switch {
	case strings.HasSuffix(w, "oes"):
		return strings.TrimSuffix(w, "es")
	case strings.HasSuffix(w, "ies"):
		return strings.TrimSuffix(w, "ies") + "y"
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		return strings.TrimSuffix(w, "s")
	}
	return w
}
