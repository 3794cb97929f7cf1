package odds

import (
	"encoding/json"
	"math"
	"strconv"
)

// Ratio is pot odds expressed as pot:call. It is Infinite when nothing is owed.
type Ratio float64

var Infinite = Ratio(math.Inf(1))

const infiniteJSON = `"inf"`

// PotOdds returns pot / toCall. A zero call owes nothing, so the odds are infinite.
func PotOdds(pot, toCall int64) Ratio {
	if toCall <= 0 {
		return Infinite
	}
	return Ratio(float64(pot) / float64(toCall))
}

func (r Ratio) IsInfinite() bool { return math.IsInf(float64(r), 1) }

func (r Ratio) String() string {
	if r.IsInfinite() {
		return "inf"
	}
	return strconv.FormatFloat(float64(r), 'f', 2, 64) + ":1"
}

// encoding/json rejects +Inf, so the sentinel travels as a string.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.IsInfinite() {
		return []byte(infiniteJSON), nil
	}
	return json.Marshal(float64(r))
}

func (r *Ratio) UnmarshalJSON(b []byte) error {
	if string(b) == infiniteJSON {
		*r = Infinite
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*r = Ratio(f)
	return nil
}

// BreakEvenEquity is the share of the final pot a call must win to break even.
func BreakEvenEquity(pot, toCall int64) float64 {
	if toCall <= 0 {
		return 0
	}
	return float64(toCall) / float64(pot+toCall)
}

// WinProbability is a crude estimate: hand strength in [0,1] spread across
// the hero and every opponent.
func WinProbability(strength float64, opponents int) float64 {
	if opponents < 0 {
		opponents = 0
	}
	return strength / float64(opponents+1)
}
