package id3tag

import (
	"fmt"
	"iter"

	"github.com/simonhull/id3tag/internal/types"
	v1codec "github.com/simonhull/id3tag/internal/v1"
	v2codec "github.com/simonhull/id3tag/internal/v2"
)

// Tag is an ordered, duplicate-tolerant collection of frames plus
// tag-level metadata. Frames may repeat; insertion order is preserved
// and is the order frames serialize in.
//
// A Tag is exclusively owned by its caller and is not safe for
// concurrent mutation. Treat a parsed Tag as a snapshot and Clone
// before mutating from another goroutine.
type Tag struct {
	// Version is the sub-version the tag was parsed from, or the one
	// passed to New.
	Version Version

	// Unsynchronised records whether the parsed tag had the
	// tag-level unsynchronization flag set. It is informational;
	// Write applies unsynchronization per its own options.
	Unsynchronised bool

	// Warnings lists every recoverable anomaly encountered while
	// parsing: unknown frames kept as binary, size mismatches,
	// compression failures, truncation.
	Warnings []Warning

	// Truncated is set when the tag's declared size overran the
	// buffer or a frame overran the tag.
	Truncated bool

	frames []Frame

	// origSize is the total byte length of the parsed tag, used to
	// keep the serialized size stable across rewrites.
	origSize int
}

// New creates an empty tag for the given sub-version.
func New(v Version) *Tag {
	return &Tag{Version: v}
}

// Parse decodes a tag from a byte buffer. Buffers starting with "ID3"
// parse as ID3v2; 128-byte buffers starting with "TAG" parse as
// ID3v1. The returned Tag doubles as the parse report: recoverable
// anomalies accumulate in Warnings, and only a StructuralError (bad
// magic, unreadable header) makes Parse fail.
//
// Options can be provided to customize parsing behavior:
//
//	tag, err := id3tag.Parse(data,
//	    id3tag.WithStrictParsing(),
//	)
func Parse(data []byte, opts ...ParseOption) (*Tag, error) {
	o := defaultParseOptions()
	for _, opt := range opts {
		opt(o)
	}

	t, err := parse(data, o)
	if err != nil {
		return nil, err
	}

	// Check strict parsing mode
	if o.strictParsing && len(t.Warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", t.Warnings[0].Message)
	}
	if o.ignoreWarnings {
		t.Warnings = nil
	}
	return t, nil
}

func parse(data []byte, o *parseOptions) (*Tag, error) {
	if len(data) >= 3 && string(data[:3]) == "TAG" {
		frames, version, warns, err := v1codec.Decode(data)
		if err != nil {
			return nil, err
		}
		return &Tag{
			Version:  version,
			Warnings: warns,
			frames:   frames,
			origSize: v1codec.TagLength,
		}, nil
	}

	res, err := v2codec.ParseWithOptions(data, v2codec.ParseOptions{
		StrictSizes: o.strictSizes,
	})
	if err != nil {
		return nil, err
	}
	t := &Tag{
		Version:        res.Header.Version,
		Unsynchronised: res.Header.Unsynchronised,
		Warnings:       res.Warnings,
		Truncated:      res.Truncated,
		frames:         res.Frames,
		origSize:       v2codec.HeaderLength + int(res.Header.Size),
	}
	return t, nil
}

// Len returns the number of frames.
func (t *Tag) Len() int { return len(t.frames) }

// Frames returns all frames with the given identifier, in order.
func (t *Tag) Frames(id FrameID) []Frame {
	var out []Frame
	for _, f := range t.frames {
		if f.ID() == id {
			out = append(out, f)
		}
	}
	return out
}

// First returns the first frame with the given identifier, or nil.
func (t *Tag) First(id FrameID) Frame {
	for _, f := range t.frames {
		if f.ID() == id {
			return f
		}
	}
	return nil
}

// All iterates over the frames in insertion order.
func (t *Tag) All() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for _, f := range t.frames {
			if !yield(f) {
				return
			}
		}
	}
}

// Add appends a frame, keeping any existing frames with the same
// identifier; duplicates are legal.
func (t *Tag) Add(f Frame) {
	t.frames = append(t.frames, f)
}

// Replace removes every frame with f's identifier and inserts f at
// the position of the first removed frame, or appends when none
// existed.
func (t *Tag) Replace(f Frame) {
	id := f.ID()
	pos := -1
	out := t.frames[:0]
	for i, existing := range t.frames {
		if existing.ID() == id {
			if pos < 0 {
				pos = i
			}
			continue
		}
		out = append(out, existing)
	}
	if pos < 0 || pos >= len(out) {
		t.frames = append(out, f)
		return
	}
	out = append(out, nil)
	copy(out[pos+1:], out[pos:])
	out[pos] = f
	t.frames = out
}

// Remove deletes every frame with the given identifier and reports
// how many were removed.
func (t *Tag) Remove(id FrameID) int {
	out := t.frames[:0]
	removed := 0
	for _, f := range t.frames {
		if f.ID() == id {
			removed++
			continue
		}
		out = append(out, f)
	}
	t.frames = out
	return removed
}

// Clone returns a deep-enough copy for independent mutation: the
// frame sequence is copied, frame payloads are value types and copy
// with it.
func (t *Tag) Clone() *Tag {
	dup := *t
	dup.frames = append([]Frame(nil), t.frames...)
	dup.Warnings = append([]Warning(nil), t.Warnings...)
	return &dup
}

// sourceVersion normalizes the tag's origin to a frame-identifier
// namespace the converter understands. Frames from ID3v1 tags and
// frames added to a fresh tag use the 4-character namespace.
func (t *Tag) sourceVersion() types.Version {
	switch t.Version {
	case ID3v22, ID3v23, ID3v24:
		return t.Version
	default:
		return ID3v23
	}
}
