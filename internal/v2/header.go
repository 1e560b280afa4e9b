// Package v2 implements the ID3v2 container: the 10-byte tag header
// and optional footer, the extended header, and the per-sub-version
// frame codecs for ID3v2.2, 2.3 and 2.4.
package v2

import (
	"fmt"

	"github.com/simonhull/id3tag/internal/types"
	"github.com/simonhull/id3tag/internal/unsync"
)

// HeaderLength is the size of the ID3v2 tag header and of the
// optional footer.
const HeaderLength = 10

const (
	magic       = "ID3"
	footerMagic = "3DI"
)

// tag-level flag bits. The lower nibble differs between 2.3 and 2.4;
// unknown set bits are reported, not rejected.
const (
	flagUnsynchronised = 0x80
	flagExtendedHeader = 0x40
	flagExperimental   = 0x20
	flagFooter         = 0x10
)

// Header is the decoded ID3v2 tag header.
type Header struct {
	Version        types.Version
	Unsynchronised bool
	ExtendedHeader bool
	Experimental   bool
	Footer         bool

	// Size is the declared length of everything between the header
	// and the optional footer.
	Size uint32

	// Extended holds the decoded extended header contents when the
	// ExtendedHeader flag is set and the contents are readable.
	Extended *ExtendedHeader
}

// ExtendedHeader is the decoded contents of a 2.3 or 2.4 extended
// header. The 2.3 layout declares a padding size and an optional CRC;
// the 2.4 layout declares update, CRC and restriction flag blocks.
type ExtendedHeader struct {
	// Padding is the padding size a 2.3 extended header declares.
	Padding uint32

	HasCRC bool
	CRC    uint64

	// Update marks a 2.4 tag as an update of the preceding tag.
	Update bool

	HasRestrictions bool
	Restrictions    byte
}

// DecodeHeader reads the 10-byte tag header. A missing magic or an
// unknown major version is the only hard failure in the whole parse
// path.
func DecodeHeader(data []byte) (Header, []types.Warning, error) {
	if len(data) < HeaderLength {
		return Header{}, nil, &types.StructuralError{Reason: "buffer shorter than the 10-byte header"}
	}
	if string(data[:3]) != magic {
		return Header{}, nil, &types.StructuralError{Reason: "missing ID3 magic"}
	}

	var h Header
	var warns []types.Warning

	switch data[3] {
	case 2:
		h.Version = types.ID3v22
	case 3:
		h.Version = types.ID3v23
	case 4:
		h.Version = types.ID3v24
	default:
		return Header{}, nil, &types.StructuralError{
			Reason: fmt.Sprintf("unknown ID3v2 version 2.%d.%d", data[3], data[4]),
			Offset: 3,
		}
	}
	if data[4] != 0 {
		warns = append(warns, types.Warning{
			Stage:   "header",
			Message: fmt.Sprintf("nonzero revision byte %d", data[4]),
			Offset:  4,
		})
	}

	flags := data[5]
	h.Unsynchronised = flags&flagUnsynchronised != 0
	var known byte = flagUnsynchronised
	switch h.Version {
	case types.ID3v22:
		// 0x40 is the ill-defined 2.2 compression bit; a compressed
		// 2.2 tag cannot be read, so the flag is reported and the
		// frames region will fail frame-id validation and come back
		// empty rather than crashing.
		if flags&flagExtendedHeader != 0 {
			warns = append(warns, types.Warning{
				Stage:   "header",
				Message: "ID3v2.2 compression flag set, frame data is likely unreadable",
				Offset:  5,
			})
		}
		known |= flagExtendedHeader
	case types.ID3v23:
		h.ExtendedHeader = flags&flagExtendedHeader != 0
		h.Experimental = flags&flagExperimental != 0
		known |= flagExtendedHeader | flagExperimental
	case types.ID3v24:
		h.ExtendedHeader = flags&flagExtendedHeader != 0
		h.Experimental = flags&flagExperimental != 0
		h.Footer = flags&flagFooter != 0
		known |= flagExtendedHeader | flagExperimental | flagFooter
	}
	if rest := flags &^ known; rest != 0 {
		warns = append(warns, types.Warning{
			Stage:   "header",
			Message: fmt.Sprintf("unknown tag flags 0x%02X", rest),
			Offset:  5,
		})
	}

	size, err := unsync.DecodeSynchsafe(data[6:10])
	if err != nil {
		// Some encoders write a plain big-endian size here; fall
		// back to the raw interpretation.
		size = unsync.DecodeUint(data[6:10])
		warns = append(warns, types.Warning{
			Stage:   "header",
			Message: "tag size is not synchsafe, using raw big-endian interpretation",
			Offset:  6,
			Err:     err,
		})
	}
	h.Size = size
	return h, warns, nil
}

// EncodeHeader renders the header (or with footer set to true in h
// and footerOut, a footer).
func EncodeHeader(h Header) ([]byte, error) {
	out := make([]byte, 0, HeaderLength)
	out = append(out, magic...)
	switch h.Version {
	case types.ID3v22:
		out = append(out, 2, 0)
	case types.ID3v23:
		out = append(out, 3, 0)
	case types.ID3v24:
		out = append(out, 4, 0)
	default:
		return nil, &types.StructuralError{Reason: "cannot encode a header for " + h.Version.String()}
	}
	var flags byte
	if h.Unsynchronised {
		flags |= flagUnsynchronised
	}
	if h.ExtendedHeader && h.Version != types.ID3v22 {
		flags |= flagExtendedHeader
	}
	if h.Experimental && h.Version != types.ID3v22 {
		flags |= flagExperimental
	}
	if h.Footer && h.Version == types.ID3v24 {
		flags |= flagFooter
	}
	out = append(out, flags)
	size, err := unsync.EncodeSynchsafe(h.Size)
	if err != nil {
		return nil, err
	}
	return append(out, size[:]...), nil
}

// encodeFooter renders the 10-byte ID3v2.4 footer, a byte-reversed
// magic followed by a copy of the header fields.
func encodeFooter(h Header) ([]byte, error) {
	out, err := EncodeHeader(h)
	if err != nil {
		return nil, err
	}
	copy(out[:3], footerMagic)
	return out, nil
}

// skipExtendedHeader returns the frames region with the extended
// header removed, plus its decoded contents. Layouts differ: 2.3
// prefixes a plain big-endian size that excludes its own four bytes,
// 2.4 a synchsafe size that includes them.
func skipExtendedHeader(h Header, body []byte) ([]byte, *ExtendedHeader, []types.Warning) {
	if !h.ExtendedHeader || len(body) < 4 {
		return body, nil, nil
	}
	var skip uint32
	var warns []types.Warning
	switch h.Version {
	case types.ID3v23:
		skip = unsync.DecodeUint(body[:4]) + 4
	case types.ID3v24:
		size, err := unsync.DecodeSynchsafe(body[:4])
		if err != nil {
			warns = append(warns, types.Warning{
				Stage:   "header",
				Message: "extended header size is not synchsafe",
				Err:     err,
			})
			size = unsync.DecodeUint(body[:4])
		}
		skip = size
	default:
		return body, nil, nil
	}
	if skip > uint32(len(body)) {
		warns = append(warns, types.Warning{
			Stage:   "header",
			Message: "extended header overruns the tag, ignoring the frames region",
		})
		return nil, nil, warns
	}

	var ext *ExtendedHeader
	switch h.Version {
	case types.ID3v23:
		ext = decodeExtended23(body[4:skip])
	case types.ID3v24:
		ext = decodeExtended24(body[4:skip])
	}
	if ext == nil {
		warns = append(warns, types.Warning{
			Stage:   "header",
			Message: "extended header contents are malformed, skipping",
		})
	}
	return body[skip:], ext, warns
}

// decodeExtended23 reads [flags(2)][padding size(4)][CRC(4) when the
// CRC flag bit is set]. Returns nil when the bytes do not cover the
// declared fields.
func decodeExtended23(b []byte) *ExtendedHeader {
	if len(b) < 6 {
		return nil
	}
	flags := unsync.DecodeUint(b[:2])
	ext := &ExtendedHeader{Padding: unsync.DecodeUint(b[2:6])}
	if flags&0x8000 != 0 {
		if len(b) < 10 {
			return nil
		}
		ext.HasCRC = true
		ext.CRC = uint64(unsync.DecodeUint(b[6:10]))
	}
	return ext
}

// decodeExtended24 reads [flag byte count(1)][flag byte(1)] followed
// by one length-prefixed data block per set flag bit: update (empty),
// CRC (5 synchsafe bytes), restrictions (1 byte).
func decodeExtended24(b []byte) *ExtendedHeader {
	if len(b) < 2 || b[0] != 1 {
		return nil
	}
	flags := b[1]
	b = b[2:]
	next := func(want int) ([]byte, bool) {
		if len(b) == 0 || int(b[0]) != want || len(b) < 1+want {
			return nil, false
		}
		block := b[1 : 1+want]
		b = b[1+want:]
		return block, true
	}

	var ext ExtendedHeader
	if flags&0x40 != 0 {
		if _, ok := next(0); !ok {
			return nil
		}
		ext.Update = true
	}
	if flags&0x20 != 0 {
		block, ok := next(5)
		if !ok {
			return nil
		}
		ext.HasCRC = true
		for _, c := range block {
			ext.CRC = ext.CRC<<7 | uint64(c&0x7F)
		}
	}
	if flags&0x10 != 0 {
		block, ok := next(1)
		if !ok {
			return nil
		}
		ext.HasRestrictions = true
		ext.Restrictions = block[0]
	}
	return &ext
}
