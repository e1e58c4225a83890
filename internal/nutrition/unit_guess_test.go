package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessUnit(t *testing.T) {
	tests := map[string]string{
		"eggs":            UnitPieces,
		"Egg":             UnitPieces,
		"roma tomatoes":   UnitPieces,
		"garlic cloves":   UnitPieces,
		"red bell pepper": UnitPieces,
		"flour":           UnitGrams,
		"olive oil":       UnitGrams,
		"cherries":        UnitGrams,
		"":                UnitGrams,
	}
	for name, want := range tests {
		assert.Equal(t, want, GuessUnit(name), name)
	}
}
