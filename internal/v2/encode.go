package v2

import (
	"bytes"
	"compress/zlib"
	"fmt"

	"github.com/simonhull/id3tag/internal/frames"
	"github.com/simonhull/id3tag/internal/types"
	"github.com/simonhull/id3tag/internal/unsync"
)

// EncodeOptions configures tag serialization.
type EncodeOptions struct {
	// Unsynchronise applies the unsynchronization transform: over the
	// whole frames region for 2.2 and 2.3, per frame for 2.4.
	Unsynchronise bool

	// Padding is the number of zero bytes appended after the last
	// frame. Ignored when Footer is set; a tag with a footer carries
	// no padding.
	Padding int

	// Footer appends the 10-byte footer (2.4 only).
	Footer bool

	// Preferred is the Unicode encoding used when Latin-1 cannot
	// represent a frame's text.
	Preferred types.Encoding
}

// Encode serializes frames as a complete ID3v2 tag for the given
// sub-version. Individual frames that cannot be encoded are skipped
// with a warning; only a tag too large for the synchsafe size field
// fails outright.
func Encode(v types.Version, frameList []types.Frame, opts EncodeOptions) ([]byte, []types.Warning, error) {
	var warns []types.Warning
	policy := frames.EncodingPolicy{Version: v, Preferred: opts.Preferred}

	var framedata bytes.Buffer
	for _, f := range frameList {
		raw, fwarns := encodeFrame(v, f, policy, opts)
		warns = append(warns, fwarns...)
		framedata.Write(raw)
	}

	body := framedata.Bytes()
	if opts.Unsynchronise && v != types.ID3v24 {
		body = unsync.Unsynchronize(body)
	}

	padding := opts.Padding
	footer := opts.Footer && v == types.ID3v24
	if footer {
		padding = 0
	}

	size := len(body) + padding
	if size > unsync.MaxSynchsafe {
		return nil, warns, &types.SizeError{
			Reason: fmt.Sprintf("tag size %d exceeds synchsafe range", size),
		}
	}

	h := Header{
		Version:        v,
		Unsynchronised: opts.Unsynchronise,
		Footer:         footer,
		Size:           uint32(size),
	}
	out := make([]byte, 0, HeaderLength+size+HeaderLength)
	header, err := EncodeHeader(h)
	if err != nil {
		return nil, warns, err
	}
	out = append(out, header...)
	out = append(out, body...)
	out = append(out, make([]byte, padding)...)
	if footer {
		f, err := encodeFooter(h)
		if err != nil {
			return nil, warns, err
		}
		out = append(out, f...)
	}
	return out, warns, nil
}

// encodeFrame serializes one frame, recomputing its size field fresh
// and applying compression and per-frame unsynchronization as the
// frame's flags and the options require. A frame the target
// sub-version cannot hold is skipped with a warning.
func encodeFrame(v types.Version, f types.Frame, policy frames.EncodingPolicy, opts EncodeOptions) ([]byte, []types.Warning) {
	var warns []types.Warning
	h := f.Header()
	id := h.FrameID

	skip := func(reason string, err error) ([]byte, []types.Warning) {
		warns = append(warns, types.Warning{
			Stage:   "frame",
			Message: fmt.Sprintf("frame %s skipped: %s", id, reason),
			Err:     err,
		})
		return nil, warns
	}

	if len(id) != v.IDLength() || !id.Valid() {
		return skip(fmt.Sprintf("identifier not valid for %s", v), nil)
	}

	// Binary payloads are re-emitted byte for byte regardless of what
	// the identifier's registered shape is; this covers encrypted and
	// malformed frames retained opaquely at parse time. Opaque
	// payloads never re-deflate: an encrypted frame's ciphertext is
	// already in its wire form, compressed or not.
	var payload []byte
	opaque := false
	if bf, ok := f.(types.BinaryFrame); ok {
		payload = bf.Data
		opaque = true
	} else {
		var err error
		payload, err = frames.Resolve(v, id).Encode(f, policy)
		if err != nil {
			return skip("payload could not be encoded", err)
		}
	}
	origLen := len(payload)

	var flagBits uint32
	var info []byte

	switch v {
	case types.ID3v23:
		if h.Flags.Compressed {
			if !opaque {
				payload = deflate(payload)
			}
			flagBits |= frame23FormatCompressed
			info = append(info, unsync.EncodeUint(uint32(origLen), 4)...)
		}
		if h.Flags.Encrypted {
			flagBits |= frame23FormatEncrypted
			info = append(info, h.Flags.EncryptionMethod)
		}
		if h.Flags.Grouped {
			flagBits |= frame23FormatGroup
			info = append(info, h.Flags.Group)
		}
		if h.Flags.DiscardOnTagAlter {
			flagBits |= frame23StatusDiscardTag
		}
		if h.Flags.DiscardOnFileAlter {
			flagBits |= frame23StatusDiscardFile
		}
		if h.Flags.ReadOnly {
			flagBits |= frame23StatusReadOnly
		}

	case types.ID3v24:
		if h.Flags.Grouped {
			flagBits |= frame24FormatGroup
			info = append(info, h.Flags.Group)
		}
		if h.Flags.Encrypted {
			flagBits |= frame24FormatEncrypted
			info = append(info, h.Flags.EncryptionMethod)
		}
		dataLength := false
		if h.Flags.Compressed {
			if !opaque {
				payload = deflate(payload)
			}
			flagBits |= frame24FormatCompressed
			dataLength = true
		}
		if opts.Unsynchronise {
			payload = unsync.Unsynchronize(payload)
			flagBits |= frame24FormatUnsync
			dataLength = true
		}
		if dataLength || h.Flags.DataLengthIndicator {
			flagBits |= frame24FormatDataLength
			enc, err := unsync.EncodeSynchsafe(uint32(origLen))
			if err != nil {
				return skip("payload exceeds synchsafe range", err)
			}
			info = append(info, enc[:]...)
		}
		if h.Flags.DiscardOnTagAlter {
			flagBits |= frame24StatusDiscardTag
		}
		if h.Flags.DiscardOnFileAlter {
			flagBits |= frame24StatusDiscardFile
		}
		if h.Flags.ReadOnly {
			flagBits |= frame24StatusReadOnly
		}
	}

	size := len(info) + len(payload)
	var sizeField []byte
	switch v {
	case types.ID3v22:
		if size > 1<<24-1 {
			return skip("payload too large for a 3-byte size field", nil)
		}
		sizeField = unsync.EncodeUint(uint32(size), 3)
	case types.ID3v23:
		sizeField = unsync.EncodeUint(uint32(size), 4)
	case types.ID3v24:
		enc, err := unsync.EncodeSynchsafe(uint32(size))
		if err != nil {
			return skip("payload exceeds synchsafe range", err)
		}
		sizeField = enc[:]
	}

	out := make([]byte, 0, v.FrameHeaderLength()+size)
	out = append(out, id...)
	out = append(out, sizeField...)
	if v != types.ID3v22 {
		out = append(out, unsync.EncodeUint(flagBits, 2)...)
	}
	out = append(out, info...)
	out = append(out, payload...)
	return out, warns
}

func deflate(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}
