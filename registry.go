package id3tag

import (
	"github.com/simonhull/id3tag/internal/frames"
)

// FrameSpec describes how one frame shape is decoded and encoded.
// Re-exporting from internal/frames for the public API.
type FrameSpec = frames.Spec

// DecodeFrameFunc decodes a raw frame payload, with flags already
// interpreted and compression and unsynchronization already undone,
// into a typed frame value.
type DecodeFrameFunc = frames.DecodeFunc

// EncodeFrameFunc encodes a typed frame value back into a raw
// payload.
type EncodeFrameFunc = frames.EncodeFunc

// EncodingPolicy governs text encoding choices at write time.
type EncodingPolicy = frames.EncodingPolicy

// RegisterFrame adds or replaces the spec for a frame identifier in
// one sub-version's registry. Registration applies process-wide and
// is not safe for concurrent use with parsing or writing; register
// custom shapes during program initialization.
//
// Identifiers without a registered spec still decode: T-prefixed
// identifiers fall back to the text-frame shape, W-prefixed ones to
// the URL-frame shape, and everything else to an opaque BinaryFrame.
//
// Example:
//
//	id3tag.RegisterFrame(id3tag.ID3v24, "XCST", id3tag.FrameSpec{
//	    Label:  "Custom station",
//	    Decode: decodeStation,
//	    Encode: encodeStation,
//	})
func RegisterFrame(v Version, id FrameID, spec FrameSpec) {
	frames.Register(v, id, spec)
}

// FrameLabel returns the human-readable description of a frame
// identifier, or the identifier itself when no description is known.
func FrameLabel(id FrameID) string {
	return frames.Label(id)
}
