// Package health implements the composite financial-health scorers:
// a simple value checklist, a Piotroski-style F-score, an Altman-Z-style
// bankruptcy score and a Beneish-style earnings-manipulation score. Like
// the valuation models, scorers are pure functions that convert missing or
// broken upstream data into an explicit failed score instead of panicking.
package health

import (
	"github.com/finscope/finscope/internal/fundamentals"
)

// Check is one criterion of a scorer: what was tested, whether it passed
// and the observed input value (absent when the input was unavailable).
type Check struct {
	Name     string             `json:"name"`
	Passed   bool               `json:"passed"`
	Observed fundamentals.Field `json:"observed"`
	Note     string             `json:"note,omitempty"`
}

// Score is the output of one scorer. Value is absent when scoring was not
// possible, with Err carrying the reason. Checks preserve criterion order.
type Score struct {
	Value  fundamentals.Field `json:"value"`
	Max    float64            `json:"max"`
	Zone   string             `json:"zone,omitempty"`
	Checks []Check            `json:"checks"`
	Err    string             `json:"error,omitempty"`
}

// OK reports whether the scorer produced a usable value.
func (s Score) OK() bool {
	return s.Value.Valid
}

func failScore(max float64, reason string) Score {
	return Score{Value: fundamentals.Missing, Max: max, Err: reason, Checks: []Check{}}
}

// Scorer name constants used as map keys in API responses.
const (
	NameValueCriteria = "value_criteria"
	NamePiotroski     = "piotroski_f"
	NameAltmanZ       = "altman_z"
	NameBeneishM      = "beneish_m"
)

// RunAll evaluates every scorer against one snapshot.
func RunAll(f *fundamentals.SecurityFundamentals) map[string]Score {
	return map[string]Score{
		NameValueCriteria: ValueCriteria(f),
		NamePiotroski:     Piotroski(f),
		NameAltmanZ:       AltmanZ(f),
		NameBeneishM:      BeneishM(f),
	}
}
