package simulation

import (
	"encoding/json"
	"fmt"
)

// Result is implemented by every handler's output type.
type Result interface {
	Brief() Summary
}

// Summary is embedded in every result.
type Summary struct {
	Title           string   `json:"title"`
	Recommendations []string `json:"recommendations"`
}

func (s Summary) Brief() Summary { return s }

// Measure is a number that may instead be a sentinel label such as
// "Indefinite" when the quantity is unbounded or undefined. It marshals as
// a JSON number or a JSON string accordingly.
type Measure struct {
	Value float64
	Label string
}

func Amount(v float64) Measure      { return Measure{Value: v} }
func Sentinel(label string) Measure { return Measure{Label: label} }

// IsSentinel reports whether the measure carries a label instead of a value.
func (m Measure) IsSentinel() bool { return m.Label != "" }

func (m Measure) String() string {
	if m.IsSentinel() {
		return m.Label
	}
	return fmt.Sprintf("%g", m.Value)
}

func (m Measure) MarshalJSON() ([]byte, error) {
	if m.IsSentinel() {
		return json.Marshal(m.Label)
	}
	return json.Marshal(m.Value)
}

func (m *Measure) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*m = Sentinel(label)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("measure must be a number or a string: %w", err)
	}
	*m = Amount(v)
	return nil
}
