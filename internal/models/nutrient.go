package models

// Nutrient is a single named amount such as "Protein 12.5 g".
// Names are unique within any stored collection.
type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}
