package domain

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies one of the fixed adjustment transforms.
type Kind int

const (
	Brightness Kind = iota
	Contrast
	Saturation
	Exposure
	Hue
	Vibrancy

	kindCount = iota
)

// ApplicationOrder is the order in which every renderer must apply the chain.
var ApplicationOrder = [kindCount]Kind{Brightness, Contrast, Saturation, Exposure, Hue, Vibrancy}

func (k Kind) String() string {
	switch k {
	case Brightness:
		return "brightness"
	case Contrast:
		return "contrast"
	case Saturation:
		return "saturation"
	case Exposure:
		return "exposure"
	case Hue:
		return "hue"
	case Vibrancy:
		return "vibrancy"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= Brightness && k < kindCount
}

// ParseKind maps a wire name like "brightness" to its Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range ApplicationOrder {
		if k.String() == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Range bounds the values an Adjustment may hold.
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

var (
	multiplicativeRange = Range{Min: 0, Max: 2, Step: 0.1}
	hueRange            = Range{Min: -180, Max: 180, Step: 1}
)

// Range returns the valid range of values for the kind.
func (k Kind) Range() Range {
	switch k {
	case Hue:
		return hueRange
	default:
		return multiplicativeRange
	}
}

// Neutral returns the no-op value of the kind.
func (k Kind) Neutral() float64 {
	switch k {
	case Hue:
		return 0
	default:
		return 1
	}
}

// Clamp normalizes v into the range, snapping it to the nearest step counted from Min. NaN is not a position in the
// range, so it is reported as !ok and left for the caller to replace.
func (r Range) Clamp(v float64) (float64, bool) {
	if math.IsNaN(v) {
		return 0, false
	}

	v = math.Max(r.Min, math.Min(r.Max, v))

	if r.Step > 0 {
		steps := math.Round((v - r.Min) / r.Step)
		v = r.Min + steps*r.Step
		// step multiples like 7*0.1 are not exact in binary
		v = math.Round(v*1e9) / 1e9
		v = math.Max(r.Min, math.Min(r.Max, v))
	}

	return v, true
}

// Adjustment is a single range-bounded parameter of the chain.
type Adjustment struct {
	kind  Kind
	value float64
}

// NewAdjustment creates an Adjustment of the given kind at its neutral value.
func NewAdjustment(kind Kind) Adjustment {
	return Adjustment{kind: kind, value: kind.Neutral()}
}

func (a *Adjustment) Kind() Kind {
	return a.kind
}

func (a *Adjustment) Range() Range {
	return a.kind.Range()
}

func (a *Adjustment) Get() float64 {
	return a.value
}

// Set stores v clamped to the range and rounded to its step. Out-of-range input is corrected silently and NaN resets
// the adjustment to neutral.
func (a *Adjustment) Set(v float64) {
	clamped, ok := a.kind.Range().Clamp(v)
	if !ok {
		a.Reset()
		return
	}

	a.value = clamped
}

func (a *Adjustment) Reset() {
	a.value = a.kind.Neutral()
}

func (a *Adjustment) IsNeutral() bool {
	return a.value == a.kind.Neutral()
}
