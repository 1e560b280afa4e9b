package id3tag

import (
	"github.com/simonhull/id3tag/internal/types"
)

// StructuralError is an alias to types.StructuralError.
// Re-exporting from internal/types to keep the public API flat.
type StructuralError = types.StructuralError

// FrameError is an alias to types.FrameError.
// Re-exporting from internal/types to keep the public API flat.
type FrameError = types.FrameError

// TextError is an alias to types.TextError.
// Re-exporting from internal/types to keep the public API flat.
type TextError = types.TextError

// SizeError is an alias to types.SizeError.
// Re-exporting from internal/types to keep the public API flat.
type SizeError = types.SizeError

// ConversionError is an alias to types.ConversionError.
// Re-exporting from internal/types to keep the public API flat.
type ConversionError = types.ConversionError

// DecompressionError is an alias to types.DecompressionError.
// Re-exporting from internal/types to keep the public API flat.
type DecompressionError = types.DecompressionError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to keep the public API flat.
type Warning = types.Warning
