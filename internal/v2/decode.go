package v2

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/id3tag/internal/convert"
	"github.com/simonhull/id3tag/internal/frames"
	"github.com/simonhull/id3tag/internal/types"
	"github.com/simonhull/id3tag/internal/unsync"
)

// ID3v2.3 frame flag bits.
const (
	frame23StatusDiscardTag  = 0x8000
	frame23StatusDiscardFile = 0x4000
	frame23StatusReadOnly    = 0x2000
	frame23StatusUnknownMask = 0x1F00

	frame23FormatCompressed  = 0x0080
	frame23FormatEncrypted   = 0x0040
	frame23FormatGroup       = 0x0020
	frame23FormatUnknownMask = 0x001F
)

// ID3v2.4 frame flag bits.
const (
	frame24StatusDiscardTag  = 0x4000
	frame24StatusDiscardFile = 0x2000
	frame24StatusReadOnly    = 0x1000
	frame24StatusUnknownMask = 0x8F00

	frame24FormatGroup       = 0x0040
	frame24FormatCompressed  = 0x0008
	frame24FormatEncrypted   = 0x0004
	frame24FormatUnsync      = 0x0002
	frame24FormatDataLength  = 0x0001
	frame24FormatUnknownMask = 0x00B0
)

// Result is the outcome of parsing one ID3v2 tag buffer.
type Result struct {
	Header   Header
	Frames   []types.Frame
	Warnings []types.Warning

	// Truncated is set when the declared tag size overran the buffer
	// or a frame overran the declared tag size.
	Truncated bool

	// Padding is the number of trailing zero bytes after the last
	// frame.
	Padding int
}

// ParseOptions adjusts parsing behavior.
type ParseOptions struct {
	// StrictSizes disables the reinterpretation of ID3v2.4 frame
	// sizes as plain big-endian when more frames parse that way.
	// Older iTunes versions wrote such sizes.
	StrictSizes bool
}

// Parse decodes a complete ID3v2 tag from a byte buffer. The only
// fatal condition is an unreadable header; malformed frames are
// retained as binary payloads and reported.
func Parse(data []byte) (*Result, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseWithOptions is Parse with explicit parsing options.
func ParseWithOptions(data []byte, opts ParseOptions) (*Result, error) {
	h, warns, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	res := &Result{Header: h, Warnings: warns}

	end := HeaderLength + int(h.Size)
	if end > len(data) {
		res.Warnings = append(res.Warnings, types.Warning{
			Stage:   "header",
			Message: fmt.Sprintf("declared tag size %d overruns the %d-byte buffer", h.Size, len(data)),
			Offset:  6,
		})
		res.Truncated = true
		end = len(data)
	}
	body := data[HeaderLength:end]

	if h.Footer {
		if len(data) >= end+HeaderLength && string(data[end:end+3]) == footerMagic {
			// Footer present and well-formed.
		} else {
			res.Warnings = append(res.Warnings, types.Warning{
				Stage:   "header",
				Message: "footer flag set but no footer found after the frames region",
				Offset:  int64(end),
			})
		}
	}

	body, ext, extWarns := skipExtendedHeader(h, body)
	res.Header.Extended = ext
	res.Warnings = append(res.Warnings, extWarns...)

	// 2.2 and 2.3 unsynchronize the whole frames region; 2.4 applies
	// the transform per frame.
	if h.Unsynchronised && h.Version != types.ID3v24 {
		body = unsync.Resynchronize(body)
	}

	sizeDecode := frameSizeDecoder(h.Version)
	if h.Version == types.ID3v24 && !opts.StrictSizes {
		// Older iTunes wrote plain big-endian frame sizes. Parse
		// with whichever interpretation yields more frames.
		raw := func(b []byte) (uint32, error) { return unsync.DecodeUint(b), nil }
		if countFrames(body, raw) > countFrames(body, sizeDecode) {
			res.Warnings = append(res.Warnings, types.Warning{
				Stage:   "frame",
				Message: "frame sizes are not synchsafe, using raw big-endian interpretation",
			})
			sizeDecode = raw
		}
	}

	res.parseFrames(h.Version, body, sizeDecode)
	return res, nil
}

func frameSizeDecoder(v types.Version) func([]byte) (uint32, error) {
	switch v {
	case types.ID3v24:
		return unsync.DecodeSynchsafe
	default:
		return func(b []byte) (uint32, error) { return unsync.DecodeUint(b), nil }
	}
}

// countFrames walks the frames region with the given size
// interpretation and reports how many well-formed frame headers it
// encounters before the first inconsistency.
func countFrames(body []byte, sizeDecode func([]byte) (uint32, error)) int {
	count := 0
	off := 0
	for off+10 <= len(body) {
		id := types.FrameID(body[off : off+4])
		if !id.Valid() {
			return count
		}
		size, err := sizeDecode(body[off+4 : off+8])
		if err != nil {
			return count
		}
		flags := unsync.DecodeUint(body[off+8 : off+10])
		if flags&(frame24StatusUnknownMask|frame24FormatUnknownMask) != 0 {
			return count
		}
		off += 10 + int(size)
		if off > len(body) {
			return count
		}
		count++
	}
	return count
}

// parseFrames walks the frames region, decoding each frame and
// recovering from malformed ones without aborting.
func (res *Result) parseFrames(v types.Version, body []byte, sizeDecode func([]byte) (uint32, error)) {
	hdrLen := v.FrameHeaderLength()
	idLen := v.IDLength()
	off := 0

	for off+hdrLen <= len(body) {
		if body[off] == 0x00 {
			res.Padding = len(body) - off
			return
		}

		id := types.FrameID(body[off : off+idLen])
		if !id.Valid() {
			off = res.recoverAt(v, body, off, sizeDecode)
			if off < 0 {
				return
			}
			continue
		}
		id = res.normalizeID(id, int64(off))

		size, err := sizeDecode(body[off+idLen : off+idLen+sizeLength(v)])
		if err != nil {
			res.Warnings = append(res.Warnings, types.Warning{
				Stage:   "frame",
				Message: fmt.Sprintf("frame %s: size field is not synchsafe, using raw interpretation", id),
				Offset:  int64(off),
				Err:     err,
			})
			size = unsync.DecodeUint(body[off+idLen : off+idLen+sizeLength(v)])
		}

		var flags types.FrameFlags
		var flagBits uint32
		if v != types.ID3v22 {
			flagBits = unsync.DecodeUint(body[off+8 : off+10])
		}

		total := hdrLen + int(size)
		if off+total > len(body) {
			// Clamp the final frame to the bytes that are actually
			// there and attempt the typed decode anyway; decodeOne
			// falls back to an invalid binary frame when the
			// remainder is not decodable.
			res.Warnings = append(res.Warnings, types.Warning{
				Stage:   "frame",
				Message: fmt.Sprintf("frame %s: declared size %d overruns the frames region", id, size),
				Offset:  int64(off),
			})
			res.Truncated = true
			total = len(body) - off
		}
		payload := body[off+hdrLen : off+total]

		frame, warns := res.decodeOne(v, id, flags, flagBits, payload, int64(off))
		res.Warnings = append(res.Warnings, warns...)
		if frame != nil {
			res.Frames = append(res.Frames, frame)
		}
		off += total
	}
}

func sizeLength(v types.Version) int {
	if v == types.ID3v22 {
		return 3
	}
	return 4
}

// normalizeID strips the trailing space some encoders leave on
// 4-character identifiers and maps the remaining 3-character
// identifier into the tag's namespace.
func (res *Result) normalizeID(id types.FrameID, off int64) types.FrameID {
	if len(id) != 4 || id[3] != ' ' {
		return id
	}
	short := types.FrameID(strings.TrimSuffix(string(id), " "))
	mapped, ok := convert.UpgradeID(short)
	if !ok {
		mapped = short
	}
	res.Warnings = append(res.Warnings, types.Warning{
		Stage:   "frame",
		Message: fmt.Sprintf("frame id %q has a trailing space, reading as %s", id, mapped),
		Offset:  off,
	})
	return mapped
}

// recoverAt handles bytes that do not start with a valid frame id:
// it scans forward for the next plausible frame header, retains the
// skipped bytes as an invalid binary frame, and reports. Returns -1
// when no further frame exists.
func (res *Result) recoverAt(v types.Version, body []byte, off int, sizeDecode func([]byte) (uint32, error)) int {
	hdrLen := v.FrameHeaderLength()
	idLen := v.IDLength()

	next := -1
	for p := off + 1; p+hdrLen <= len(body); p++ {
		id := types.FrameID(body[p : p+idLen])
		if !id.Valid() {
			continue
		}
		size, err := sizeDecode(body[p+idLen : p+idLen+sizeLength(v)])
		if err != nil || p+hdrLen+int(size) > len(body) {
			continue
		}
		next = p
		break
	}

	skipEnd := next
	if skipEnd < 0 {
		skipEnd = len(body)
	}
	res.Warnings = append(res.Warnings, types.Warning{
		Stage:   "frame",
		Message: fmt.Sprintf("invalid frame id at offset %d, skipped %d bytes", off, skipEnd-off),
		Offset:  int64(off),
		Err:     &types.FrameError{Reason: "invalid frame id", Offset: int64(off)},
	})
	res.Frames = append(res.Frames, types.BinaryFrame{
		FrameHeader: types.FrameHeader{FrameID: ""},
		Data:        bytes.Clone(body[off:skipEnd]),
		Invalid:     true,
	})
	if next < 0 {
		res.Truncated = true
	}
	return next
}

// decodeOne interprets one frame's flag bits and payload. Errors are
// recovered by retaining the raw payload as an invalid binary frame.
func (res *Result) decodeOne(v types.Version, id types.FrameID, flags types.FrameFlags, flagBits uint32, payload []byte, off int64) (types.Frame, []types.Warning) {
	var warns []types.Warning

	invalid := func(reason string, err error) (types.Frame, []types.Warning) {
		warns = append(warns, types.Warning{
			Stage:   "frame",
			Message: fmt.Sprintf("frame %s: %s", id, reason),
			Offset:  off,
			Err:     err,
		})
		return types.BinaryFrame{
			FrameHeader: types.FrameHeader{FrameID: id, Flags: flags},
			Data:        bytes.Clone(payload),
			Invalid:     true,
		}, warns
	}

	switch v {
	case types.ID3v23:
		if flagBits&frame23FormatUnknownMask != 0 {
			return invalid(fmt.Sprintf("unknown format flags 0x%04X", flagBits), nil)
		}
		flags.DiscardOnTagAlter = flagBits&frame23StatusDiscardTag != 0
		flags.DiscardOnFileAlter = flagBits&frame23StatusDiscardFile != 0
		flags.ReadOnly = flagBits&frame23StatusReadOnly != 0
		if flagBits&frame23StatusUnknownMask != 0 {
			warns = append(warns, types.Warning{
				Stage:   "frame",
				Message: fmt.Sprintf("frame %s: unexpected status flags 0x%04X", id, flagBits),
				Offset:  off,
			})
		}
		// Extra fields precede the data in flag-bit order:
		// expanded size, encryption method, group byte.
		var expanded23 uint32
		if flagBits&frame23FormatCompressed != 0 {
			flags.Compressed = true
			if len(payload) < 4 {
				return invalid("compressed frame shorter than its expanded-size field", nil)
			}
			expanded23 = unsync.DecodeUint(payload[:4])
			payload = payload[4:]
		}
		if flagBits&frame23FormatEncrypted != 0 {
			flags.Encrypted = true
			if len(payload) > 0 {
				flags.EncryptionMethod = payload[0]
				payload = payload[1:]
			}
		}
		if flagBits&frame23FormatGroup != 0 {
			flags.Grouped = true
			if len(payload) == 0 {
				return invalid("grouped frame missing its group byte", nil)
			}
			flags.Group = payload[0]
			payload = payload[1:]
		}
		if flags.Encrypted {
			// No decryption attempted; keep the payload opaque.
			return types.BinaryFrame{
				FrameHeader: types.FrameHeader{FrameID: id, Flags: flags},
				Data:        bytes.Clone(payload),
			}, warns
		}
		if flags.Compressed {
			inflated, err := inflate(payload)
			if err != nil {
				f, w := invalid("corrupt compressed payload", &types.DecompressionError{ID: id, Reason: err.Error()})
				return f, w
			}
			if uint32(len(inflated)) != expanded23 {
				warns = append(warns, types.Warning{
					Stage:   "frame",
					Message: fmt.Sprintf("frame %s: expanded size %d does not match inflated length %d", id, expanded23, len(inflated)),
					Offset:  off,
				})
			}
			payload = inflated
		}

	case types.ID3v24:
		if flagBits&frame24FormatUnknownMask != 0 {
			return invalid(fmt.Sprintf("unknown format flags 0x%04X", flagBits), nil)
		}
		flags.DiscardOnTagAlter = flagBits&frame24StatusDiscardTag != 0
		flags.DiscardOnFileAlter = flagBits&frame24StatusDiscardFile != 0
		flags.ReadOnly = flagBits&frame24StatusReadOnly != 0
		if flagBits&frame24StatusUnknownMask != 0 {
			warns = append(warns, types.Warning{
				Stage:   "frame",
				Message: fmt.Sprintf("frame %s: unexpected status flags 0x%04X", id, flagBits),
				Offset:  off,
			})
		}
		// Extra fields precede the data in flag-bit order: group
		// byte, encryption method, data length indicator.
		if flagBits&frame24FormatGroup != 0 {
			flags.Grouped = true
			if len(payload) == 0 {
				return invalid("grouped frame missing its group byte", nil)
			}
			flags.Group = payload[0]
			payload = payload[1:]
		}
		if flagBits&frame24FormatEncrypted != 0 {
			flags.Encrypted = true
			if len(payload) > 0 {
				flags.EncryptionMethod = payload[0]
				payload = payload[1:]
			}
		}
		expanded := -1
		if flagBits&frame24FormatDataLength != 0 {
			flags.DataLengthIndicator = true
			if len(payload) < 4 {
				return invalid("frame shorter than its data length indicator", nil)
			}
			n, err := unsync.DecodeSynchsafe(payload[:4])
			if err == nil {
				expanded = int(n)
			}
			payload = payload[4:]
		}
		if flagBits&frame24FormatUnsync != 0 {
			flags.Unsynchronised = true
			payload = unsync.Resynchronize(payload)
		}
		if flags.Encrypted {
			return types.BinaryFrame{
				FrameHeader: types.FrameHeader{FrameID: id, Flags: flags},
				Data:        bytes.Clone(payload),
			}, warns
		}
		if flagBits&frame24FormatCompressed != 0 {
			flags.Compressed = true
			inflated, err := inflate(payload)
			if err != nil {
				f, w := invalid("corrupt compressed payload", &types.DecompressionError{ID: id, Reason: err.Error()})
				return f, w
			}
			payload = inflated
		}
		if expanded >= 0 && expanded != len(payload) {
			warns = append(warns, types.Warning{
				Stage:   "frame",
				Message: fmt.Sprintf("frame %s: data length indicator %d does not match decoded length %d", id, expanded, len(payload)),
				Offset:  off,
			})
		}
	}

	spec := frames.Resolve(v, id)
	frame, fwarns, err := spec.Decode(types.FrameHeader{FrameID: id, Flags: flags}, payload)
	warns = append(warns, fwarns...)
	if err != nil {
		return invalid("malformed payload", err)
	}
	if !frames.Known(v, id) {
		if _, ok := frame.(types.BinaryFrame); ok {
			warns = append(warns, types.Warning{
				Stage:   "frame",
				Message: fmt.Sprintf("unknown frame %s retained as binary", id),
				Offset:  off,
			})
		}
	}
	return frame, warns
}

func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
