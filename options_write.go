package id3tag

// WriteOption configures tag serialization.
//
// Options use the functional options pattern for clean, extensible
// APIs.
//
// Example:
//
//	out, _, err := tag.Write(id3tag.ID3v24,
//	    id3tag.WithPadding(2048),
//	    id3tag.WithUnsynchronization(),
//	)
type WriteOption func(*writeOptions)

// writeOptions holds configuration for writing tags.
type writeOptions struct {
	padding         int  // Zero bytes appended after the last frame
	paddingSet      bool // Caller picked a padding explicitly
	paddingMax      int  // Largest padding the size-stability rule may add
	unsynchronise   bool // Apply the unsynchronization transform
	footer          bool // Append the ID3v2.4 footer
	preferred       Encoding
	preserveUnknown bool // Keep inconvertible frames as opaque binary
}

// defaultWriteOptions returns the default configuration.
func defaultWriteOptions() *writeOptions {
	return &writeOptions{
		padding:    1024,
		paddingMax: 10240,
		preferred:  UTF16,
	}
}

// WithPadding sets a fixed number of zero bytes appended after the
// last frame. Padding lets the next rewrite happen in place without
// shifting the audio data that follows the tag.
//
// An explicit padding disables the default size-stability behavior,
// which pads a rewritten tag back up to its original size when the
// difference is small.
//
// Example:
//
//	out, _, err := tag.Write(id3tag.ID3v23, id3tag.WithPadding(4096))
func WithPadding(n int) WriteOption {
	return func(o *writeOptions) {
		if n < 0 {
			n = 0
		}
		o.padding = n
		o.paddingSet = true
	}
}

// WithoutPadding emits the tag with no padding at all.
//
// Example:
//
//	out, _, err := tag.Write(id3tag.ID3v24, id3tag.WithoutPadding())
func WithoutPadding() WriteOption {
	return WithPadding(0)
}

// WithUnsynchronization applies the unsynchronization transform on
// write: over the whole frames region for ID3v2.2 and 2.3, per frame
// for 2.4.
//
// Use this when the output will be embedded ahead of MPEG audio and
// legacy decoders might otherwise mistake tag bytes for frame sync
// patterns.
func WithUnsynchronization() WriteOption {
	return func(o *writeOptions) {
		o.unsynchronise = true
	}
}

// WithFooter appends the 10-byte footer to ID3v2.4 output, letting
// readers find the tag by scanning backwards from the end of a file.
// A tag with a footer carries no padding; this option overrides any
// padding setting. Ignored for other target sub-versions.
func WithFooter() WriteOption {
	return func(o *writeOptions) {
		o.footer = true
	}
}

// WithPreferredEncoding sets the Unicode encoding used when a frame
// requests Latin-1 but its text is not representable in ISO-8859-1.
//
// The default is UTF-16 with BOM, the only Unicode encoding legal in
// every ID3v2 sub-version. UTF8 and UTF16BE downgrade to UTF16 when
// the target is not 2.4.
//
// Example:
//
//	out, _, err := tag.Write(id3tag.ID3v24,
//	    id3tag.WithPreferredEncoding(id3tag.UTF8),
//	)
func WithPreferredEncoding(enc Encoding) WriteOption {
	return func(o *writeOptions) {
		o.preferred = enc
	}
}

// WithPreserveUnknown keeps frames that have no equivalent in the
// target sub-version as opaque binary payloads under a
// vendor-extension identifier instead of dropping them.
//
// By default such frames are dropped and reported in the write
// warnings.
func WithPreserveUnknown() WriteOption {
	return func(o *writeOptions) {
		o.preserveUnknown = true
	}
}
