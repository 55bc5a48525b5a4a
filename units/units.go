package units

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for unit operations.
var (
	// ErrUnknownUnit indicates the unit string is not in the unit table.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrIncompatibleUnits indicates a rescale between units of different
	// physical dimensions (e.g. "ms" to "mV").
	ErrIncompatibleUnits = errors.New("incompatible units")
)

// base identifies the physical dimension of a unit.
type base int

const (
	baseTime base = iota
	baseVoltage
	baseCurrent
	baseFrequency
	baseLength
	baseDimensionless
)

// unitDef describes one entry in the unit table: its dimension and its
// scale relative to the dimension's reference unit (s, V, A, Hz, m).
type unitDef struct {
	base  base
	scale float64
}

var unitTable = map[string]unitDef{
	// time
	"s":   {baseTime, 1},
	"ms":  {baseTime, 1e-3},
	"us":  {baseTime, 1e-6},
	"ns":  {baseTime, 1e-9},
	"min": {baseTime, 60},
	"h":   {baseTime, 3600},
	// voltage
	"V":  {baseVoltage, 1},
	"mV": {baseVoltage, 1e-3},
	"uV": {baseVoltage, 1e-6},
	// current
	"A":  {baseCurrent, 1},
	"mA": {baseCurrent, 1e-3},
	"uA": {baseCurrent, 1e-6},
	"nA": {baseCurrent, 1e-9},
	"pA": {baseCurrent, 1e-12},
	// frequency
	"Hz":  {baseFrequency, 1},
	"kHz": {baseFrequency, 1e3},
	"MHz": {baseFrequency, 1e6},
	// length (channel coordinates)
	"m":  {baseLength, 1},
	"cm": {baseLength, 1e-2},
	"mm": {baseLength, 1e-3},
	"um": {baseLength, 1e-6},
	// dimensionless
	"": {baseDimensionless, 1},
}

// reciprocalFrequency maps 1/frequency units to the time unit of the same
// magnitude. A sampling period derived from a rate in Hz carries a unit of
// "1/Hz"; simplification turns it into a plain time unit.
var reciprocalFrequency = map[string]string{
	"1/Hz":  "s",
	"1/kHz": "ms",
	"1/MHz": "us",
}

// lookup resolves a unit string, accepting reciprocal-frequency spellings.
func lookup(unit string) (unitDef, error) {
	if simple, ok := reciprocalFrequency[unit]; ok {
		unit = simple
	}
	def, ok := unitTable[strings.TrimSpace(unit)]
	if !ok {
		return unitDef{}, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return def, nil
}

// Known reports whether the unit string is in the unit table.
func Known(unit string) bool {
	_, err := lookup(unit)
	return err == nil
}

// Simplify canonicalizes reciprocal-frequency units to their time-based
// equivalent and returns every other unit unchanged. It does not validate
// unknown units; callers that need validation use Rescale.
func Simplify(unit string) string {
	if simple, ok := reciprocalFrequency[unit]; ok {
		return simple
	}
	return unit
}

// Quantity is a numeric payload with an attached unit. Values holds one
// element for scalar quantities.
type Quantity struct {
	Values []float64
	Unit   string
}

// Scalar creates a single-valued Quantity.
func Scalar(value float64, unit string) Quantity {
	return Quantity{Values: []float64{value}, Unit: unit}
}

// New creates a vector Quantity. The slice is used as-is, not copied.
func New(values []float64, unit string) Quantity {
	return Quantity{Values: values, Unit: unit}
}

// IsZero reports whether the quantity carries no values at all. A Quantity
// zero value represents an absent optional attribute.
func (q Quantity) IsZero() bool {
	return len(q.Values) == 0
}

// Len returns the number of values.
func (q Quantity) Len() int {
	return len(q.Values)
}

// Item returns the single value of a scalar quantity. It panics if the
// quantity is not scalar; that is a programming error, not input error.
func (q Quantity) Item() float64 {
	if len(q.Values) != 1 {
		panic(fmt.Sprintf("units: Item on quantity of length %d", len(q.Values)))
	}
	return q.Values[0]
}

// Rescale converts the quantity to the target unit. Both units must be in
// the unit table and share a physical dimension, except that
// reciprocal-frequency units rescale to time units of the same dimension.
func (q Quantity) Rescale(unit string) (Quantity, error) {
	from, err := lookup(q.Unit)
	if err != nil {
		return Quantity{}, err
	}
	to, err := lookup(unit)
	if err != nil {
		return Quantity{}, err
	}
	if from.base != to.base {
		return Quantity{}, fmt.Errorf("%w: %q -> %q", ErrIncompatibleUnits, q.Unit, unit)
	}
	factor := from.scale / to.scale
	out := make([]float64, len(q.Values))
	for i, v := range q.Values {
		out[i] = v * factor
	}
	return Quantity{Values: out, Unit: unit}, nil
}

// Simplified returns the quantity rescaled into the simplified form of its
// own unit. For quantities already carrying a plain unit this is a copy.
func (q Quantity) Simplified() (Quantity, error) {
	return q.Rescale(Simplify(q.Unit))
}

// String renders the quantity for diagnostics.
func (q Quantity) String() string {
	if len(q.Values) == 1 {
		return fmt.Sprintf("%g %s", q.Values[0], q.Unit)
	}
	return fmt.Sprintf("%v %s", q.Values, q.Unit)
}
