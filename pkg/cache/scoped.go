package cache

// ScopedKeyer wraps a Keyer with a prefix so that several projects (or
// solver versions) can share one Redis instance without colliding.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "xfoil-6.99:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// CurveKey generates a prefixed curve key.
func (k *ScopedKeyer) CurveKey(geometryHash string, opts CurveKeyOpts) string {
	return k.prefix + k.inner.CurveKey(geometryHash, opts)
}

// CoordinatesKey generates a prefixed coordinates key.
func (k *ScopedKeyer) CoordinatesKey(source, name string) string {
	return k.prefix + k.inner.CoordinatesKey(source, name)
}
