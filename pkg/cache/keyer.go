package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// CurveKeyOpts are the solver inputs that determine a polar curve.
type CurveKeyOpts struct {
	Reynolds   float64
	AlphaStart float64
	AlphaEnd   float64
	AlphaStep  float64
	MaxIter    int
	Solver     string
}

// Keyer generates cache keys.
type Keyer interface {
	// CurveKey keys one solver run for a geometry identified by its hash.
	CurveKey(geometryHash string, opts CurveKeyOpts) string
	// CoordinatesKey keys a coordinate file fetched from a remote database.
	CoordinatesKey(source, name string) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CurveKey returns "curve:<sha256(geometryHash, opts)>".
func (DefaultKeyer) CurveKey(geometryHash string, opts CurveKeyOpts) string {
	return hashKey("curve", geometryHash, opts)
}

// CoordinatesKey returns "coords:<source>:<name>".
func (DefaultKeyer) CoordinatesKey(source, name string) string {
	return "coords:" + source + ":" + name
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
