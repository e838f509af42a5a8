package sopclient

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a backend numeric field of uncertain wire shape. The API encodes
// decimals as quoted strings, older endpoints emit plain JSON numbers, and
// optional figures arrive as null. Decoding never fails: null, empty strings,
// unparsable text and non-finite values all leave the field unset.
type Number struct {
	Value float64
	Set   bool
}

// Num is a convenience constructor for literals in tests and request bodies.
func Num(v float64) Number { return Number{Value: v, Set: true} }

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	n.Value = v
	n.Set = true
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Or returns the value, or def when unset.
func (n Number) Or(def float64) float64 {
	if !n.Set {
		return def
	}
	return n.Value
}

// String renders the value, or a placeholder when unset. Display code relies
// on this never panicking for absent figures.
func (n Number) String() string {
	if !n.Set {
		return "-"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}
