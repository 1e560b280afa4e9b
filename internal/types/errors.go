package types

import "fmt"

// StructuralError is returned when the tag header itself cannot be
// read: missing magic bytes, impossible version, or a buffer too short
// to hold a header. It is the only error that aborts a parse.
type StructuralError struct {
	Reason string
	Offset int64
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at offset %d: %s", e.Offset, e.Reason)
}

// FrameError describes a malformed individual frame. Frame errors are
// recovered during parsing: the offending bytes are retained as a
// BinaryFrame and the error surfaces as a Warning, never as a parse
// failure.
type FrameError struct {
	ID     FrameID
	Reason string
	Offset int64
}

func (e *FrameError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("frame %s at offset %d: %s", e.ID, e.Offset, e.Reason)
	}
	return fmt.Sprintf("frame at offset %d: %s", e.Offset, e.Reason)
}

// TextError describes a text encoding or decoding failure. Decoding
// recovers with a best-effort interpretation and a Warning.
type TextError struct {
	Encoding Encoding
	Reason   string
}

func (e *TextError) Error() string {
	return fmt.Sprintf("text (%s): %s", e.Encoding, e.Reason)
}

// SizeError describes an invalid synchsafe integer or a size field
// inconsistency. Parsing recovers via the raw big-endian fallback
// interpretation where plausible.
type SizeError struct {
	Reason string
}

func (e *SizeError) Error() string {
	return "size: " + e.Reason
}

// ConversionError is reported when a frame has no equivalent in the
// target sub-version. Depending on policy the frame is dropped or
// preserved opaquely; either way the conversion succeeds.
type ConversionError struct {
	ID     FrameID
	Target Version
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("frame %s has no %s equivalent", e.ID, e.Target)
}

// DecompressionError describes a corrupt compressed frame payload.
// The frame is retained as a BinaryFrame of the raw compressed bytes.
type DecompressionError struct {
	ID     FrameID
	Reason string
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("frame %s: decompression failed: %s", e.ID, e.Reason)
}

// Warning represents a non-fatal issue encountered during parsing,
// writing or converting a tag.
//
// Warnings indicate problems that don't prevent producing a usable
// result but may indicate corrupted or unusual data. Examples include:
//   - Unknown frame ids retained as binary payloads
//   - Size field mismatches resolved by a fallback interpretation
//   - Compressed payloads that failed to inflate
//   - Truncated tags
//
// Warnings are collected on the Tag during parsing.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "header", "frame", "text", "convert", "v1"

	// Warning message
	Message string

	// Byte offset within the tag buffer (0 if not applicable)
	Offset int64

	// Err is the underlying typed error, if one exists.
	Err error
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
