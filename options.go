package id3tag

// ParseOption configures behavior when parsing tags.
//
// Options use the functional options pattern for clean, extensible
// APIs.
//
// Example:
//
//	tag, err := id3tag.Parse(data,
//	    id3tag.WithStrictParsing(),
//	)
type ParseOption func(*parseOptions)

// parseOptions holds configuration for parsing tags.
type parseOptions struct {
	strictParsing  bool // Fail on any warning
	ignoreWarnings bool // Suppress all warnings
	strictSizes    bool // No raw reinterpretation of 2.4 frame sizes
}

// defaultParseOptions returns the default configuration.
func defaultParseOptions() *parseOptions {
	return &parseOptions{}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, id3tag continues parsing when it encounters issues like
// malformed frames or inconsistent size fields, returning warnings
// alongside the parsed tag.
//
// With strict parsing enabled, any warning becomes a fatal error.
//
// Example:
//
//	tag, err := id3tag.Parse(data, id3tag.WithStrictParsing())
//	// err != nil if ANY issue is encountered
func WithStrictParsing() ParseOption {
	return func(o *parseOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings from the parsed tag.
//
// Use this when you only care about the best-effort result and do not
// want to inspect the anomaly report.
func WithIgnoreWarnings() ParseOption {
	return func(o *parseOptions) {
		o.ignoreWarnings = true
	}
}

// WithStrictFrameSizes disables the reinterpretation of ID3v2.4 frame
// sizes as plain big-endian integers.
//
// Older iTunes versions wrote non-synchsafe frame sizes; by default
// the parser tries both interpretations and keeps whichever yields
// more frames. Disable this when parsing tags known to be conformant
// and the heuristic must not second-guess the size fields.
func WithStrictFrameSizes() ParseOption {
	return func(o *parseOptions) {
		o.strictSizes = true
	}
}
