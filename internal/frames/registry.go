// Package frames holds the frame registry: the mapping from
// (sub-version, identifier) to the specification describing how a
// frame's payload is decoded and encoded.
package frames

import (
	"github.com/simonhull/id3tag/internal/types"
)

// DecodeFunc decodes a frame payload (flags already interpreted,
// compression and unsynchronization already undone) into a typed
// frame value.
type DecodeFunc func(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error)

// EncodeFunc encodes a typed frame value back into a raw payload.
// Compression and unsynchronization are applied later by the frame
// codec.
type EncodeFunc func(f types.Frame, p EncodingPolicy) ([]byte, error)

// Spec describes one frame shape.
type Spec struct {
	Label  string
	Decode DecodeFunc
	Encode EncodeFunc
}

// EncodingPolicy governs text encoding choices at write time.
type EncodingPolicy struct {
	// Version is the target sub-version; UTF-8 and UTF-16BE are only
	// legal on ID3v2.4 and downgrade to UTF-16 elsewhere.
	Version types.Version

	// Preferred is the Unicode encoding used when a frame requests
	// Latin-1 but its text is not representable in ISO-8859-1.
	Preferred types.Encoding
}

// registries maps versions to their frame spec tables. 2.3 and 2.4
// share shapes but are keyed separately so callers can extend one
// without the other.
var registries = map[types.Version]map[types.FrameID]Spec{
	types.ID3v22: make(map[types.FrameID]Spec),
	types.ID3v23: make(map[types.FrameID]Spec),
	types.ID3v24: make(map[types.FrameID]Spec),
}

// Register adds or replaces a spec for an identifier. Built-in shapes
// register during package initialization; callers may add specs for
// nonstandard identifiers through the public registry API.
func Register(v types.Version, id types.FrameID, spec Spec) {
	m := registries[v]
	if m == nil {
		return
	}
	m[id] = spec
}

// Lookup returns the exact registered spec for (version, identifier).
// It never falls back across identifier lengths; cross-version
// mapping is the converter's job.
func Lookup(v types.Version, id types.FrameID) (Spec, bool) {
	m := registries[v]
	if m == nil {
		return Spec{}, false
	}
	spec, ok := m[id]
	return spec, ok
}

// Resolve finds the spec governing an identifier using the documented
// fallback chain: exact registered spec, then the naming-convention
// fallback (T-prefix decodes as a text frame, W-prefix as a URL
// frame), then the opaque binary spec.
func Resolve(v types.Version, id types.FrameID) Spec {
	if spec, ok := Lookup(v, id); ok {
		return spec
	}
	switch {
	case id[0] == 'T':
		return Spec{Label: Label(id), Decode: decodeText, Encode: encodeText}
	case id[0] == 'W':
		return Spec{Label: Label(id), Decode: decodeURL, Encode: encodeURL}
	default:
		return Spec{Label: Label(id), Decode: decodeBinary, Encode: encodeBinary}
	}
}

// Known reports whether the identifier is either registered or a
// standard frame name for the version.
func Known(v types.Version, id types.FrameID) bool {
	if _, ok := Lookup(v, id); ok {
		return true
	}
	_, ok := frameNames[id]
	return ok
}

// Label returns the human-readable description of a standard frame
// identifier, or the identifier itself when unknown.
func Label(id types.FrameID) string {
	if name, ok := frameNames[id]; ok {
		return name
	}
	return string(id)
}
