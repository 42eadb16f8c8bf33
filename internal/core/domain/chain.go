package domain

import "fmt"

// Setting is one (kind, value) pair of a chain snapshot.
type Setting struct {
	Kind  Kind
	Value float64
}

// Snapshot is an immutable, ordered copy of a chain's values.
type Snapshot struct {
	settings [kindCount]Setting
}

// NewSnapshot builds a snapshot in application order from the given pairs. Kinds not given stay neutral, unknown
// kinds are ignored and a later pair for the same kind wins. Values are stored as given.
func NewSnapshot(settings ...Setting) Snapshot {
	s := neutralSnapshot()
	for _, setting := range settings {
		if !setting.Kind.Valid() {
			continue
		}
		s.settings[setting.Kind].Value = setting.Value
	}
	return s
}

func neutralSnapshot() Snapshot {
	var s Snapshot
	for i, kind := range ApplicationOrder {
		s.settings[i] = Setting{Kind: kind, Value: kind.Neutral()}
	}
	return s
}

// normalized maps the zero Snapshot to the neutral one.
func (s Snapshot) normalized() Snapshot {
	if s == (Snapshot{}) {
		return neutralSnapshot()
	}
	return s
}

// Settings returns the pairs in application order.
func (s Snapshot) Settings() []Setting {
	s = s.normalized()
	out := make([]Setting, len(s.settings))
	copy(out, s.settings[:])
	return out
}

// Value returns the value recorded for kind.
func (s Snapshot) Value(kind Kind) float64 {
	for _, setting := range s.normalized().settings {
		if setting.Kind == kind {
			return setting.Value
		}
	}
	return kind.Neutral()
}

// IsNeutral reports whether applying the snapshot would be a no-op.
func (s Snapshot) IsNeutral() bool {
	for _, setting := range s.normalized().settings {
		if setting.Value != setting.Kind.Neutral() {
			return false
		}
	}
	return true
}

// Chain holds exactly one Adjustment per kind, stored in ApplicationOrder.
type Chain struct {
	adjustments [kindCount]Adjustment
}

// NewChain returns a chain with every adjustment at neutral.
func NewChain() *Chain {
	c := &Chain{}
	for i, kind := range ApplicationOrder {
		c.adjustments[i] = NewAdjustment(kind)
	}
	return c
}

// ChainFromSnapshot rebuilds a chain from a snapshot, clamping every value again. The zero Snapshot yields a neutral
// chain.
func ChainFromSnapshot(s Snapshot) *Chain {
	c := NewChain()
	for _, setting := range s.normalized().settings {
		if !setting.Kind.Valid() {
			continue
		}
		c.adjustments[setting.Kind].Set(setting.Value)
	}
	return c
}

// Update sets the value of a single adjustment in place.
func (c *Chain) Update(kind Kind, value float64) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	c.adjustments[kind].Set(value)
	return nil
}

// Get returns the current value for kind, or its neutral value if kind is unknown.
func (c *Chain) Get(kind Kind) float64 {
	if !kind.Valid() {
		return kind.Neutral()
	}
	return c.adjustments[kind].Get()
}

// Reset returns every adjustment to neutral without touching the order.
func (c *Chain) Reset() {
	for i := range c.adjustments {
		c.adjustments[i].Reset()
	}
}

func (c *Chain) IsNeutral() bool {
	for i := range c.adjustments {
		if !c.adjustments[i].IsNeutral() {
			return false
		}
	}
	return true
}

func (c *Chain) Snapshot() Snapshot {
	var s Snapshot
	for i := range c.adjustments {
		s.settings[i] = Setting{Kind: c.adjustments[i].Kind(), Value: c.adjustments[i].Get()}
	}
	return s
}
