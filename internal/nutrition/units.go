package nutrition

import "strings"

type dimension int

const (
	mass dimension = iota + 1
	energy
)

type unitScale struct {
	dim    dimension
	factor float64 // relative to g or kcal
}

var units = map[string]unitScale{
	"kg":   {mass, 1000},
	"g":    {mass, 1},
	"mg":   {mass, 1e-3},
	"µg":   {mass, 1e-6},
	"μg":   {mass, 1e-6},
	"ug":   {mass, 1e-6},
	"mcg":  {mass, 1e-6},
	"kcal": {energy, 1},
	"cal":  {energy, 1},
	"kj":   {energy, 1 / 4.184},
}

// Convert expresses amount given in unit from as unit to. ok is false when
// either unit is unknown or they measure different things; amount is then
// returned unchanged.
func Convert(amount float64, from, to string) (float64, bool) {
	f, t := normalizeUnit(from), normalizeUnit(to)
	if f == t {
		return amount, true
	}
	fs, ok := units[f]
	if !ok {
		return amount, false
	}
	ts, ok := units[t]
	if !ok || fs.dim != ts.dim {
		return amount, false
	}
	return amount * fs.factor / ts.factor, true
}

func normalizeUnit(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}
