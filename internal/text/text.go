// Package text maps between the four ID3v2 text encodings and Go
// strings, handling BOM detection, terminator conventions and the
// Latin-1 representability fallback.
package text

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/simonhull/id3tag/internal/types"
)

// Terminator returns the string terminator for the encoding: a single
// zero byte for Latin-1 and UTF-8, a 2-byte-aligned double zero for
// the UTF-16 variants.
func Terminator(enc types.Encoding) []byte {
	if enc == types.UTF16 || enc == types.UTF16BE {
		return []byte{0x00, 0x00}
	}
	return []byte{0x00}
}

// CutTerminator splits data at the first terminator for the encoding.
// For UTF-16 variants the scan is aligned to 2-byte boundaries. When
// no terminator exists, the whole input is the segment and found is
// false.
func CutTerminator(enc types.Encoding, data []byte) (segment, rest []byte, found bool) {
	if enc == types.UTF16 || enc == types.UTF16BE {
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0x00 && data[i+1] == 0x00 {
				return data[:i], data[i+2:], true
			}
		}
		return data, nil, false
	}
	if i := bytes.IndexByte(data, 0x00); i >= 0 {
		return data[:i], data[i+1:], true
	}
	return data, nil, false
}

// DecodeString decodes a single unterminated segment. BOM handling
// for the UTF-16 encoding follows the standard: a missing or malformed
// BOM defaults to big-endian and records a recoverable warning
// instead of failing.
func DecodeString(enc types.Encoding, data []byte) (string, []types.Warning) {
	var warns []types.Warning

	switch enc {
	case types.Latin1:
		s, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			// Latin-1 maps every byte; this cannot happen in
			// practice, but degrade to raw bytes regardless.
			return string(data), warns
		}
		return string(s), warns

	case types.UTF16:
		if len(data) == 0 {
			return "", warns
		}
		endian := unicode.BigEndian
		switch {
		case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
			data = data[2:]
		case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
			endian = unicode.LittleEndian
			data = data[2:]
		default:
			warns = append(warns, types.Warning{
				Stage:   "text",
				Message: "UTF-16 string without BOM, assuming big-endian",
				Err:     &types.TextError{Encoding: enc, Reason: "missing BOM"},
			})
		}
		return decodeUTF16(endian, enc, data, &warns), warns

	case types.UTF16BE:
		return decodeUTF16(unicode.BigEndian, enc, data, &warns), warns

	case types.UTF8:
		if !utf8.Valid(data) {
			warns = append(warns, types.Warning{
				Stage:   "text",
				Message: "invalid UTF-8 sequence retained as-is",
				Err:     &types.TextError{Encoding: enc, Reason: "invalid UTF-8"},
			})
		}
		return string(data), warns

	default:
		warns = append(warns, types.Warning{
			Stage:   "text",
			Message: fmt.Sprintf("unknown text encoding %d, decoding as ISO-8859-1", enc),
			Err:     &types.TextError{Encoding: enc, Reason: "unknown encoding byte"},
		})
		s, _ := DecodeString(types.Latin1, data)
		return s, warns
	}
}

func decodeUTF16(endian unicode.Endianness, enc types.Encoding, data []byte, warns *[]types.Warning) string {
	if len(data)%2 != 0 {
		*warns = append(*warns, types.Warning{
			Stage:   "text",
			Message: "odd-length UTF-16 data, dropping trailing byte",
			Err:     &types.TextError{Encoding: enc, Reason: "odd byte count"},
		})
		data = data[:len(data)-1]
	}
	s, err := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
	if err != nil {
		*warns = append(*warns, types.Warning{
			Stage:   "text",
			Message: "malformed UTF-16 data decoded with replacement characters",
			Err:     &types.TextError{Encoding: enc, Reason: err.Error()},
		})
		return string(data)
	}
	return string(s)
}

// Decode splits data on the encoding's terminator and decodes each
// segment. A trailing terminator does not produce an extra empty
// element; an empty payload decodes to a single empty string, never
// to zero elements.
func Decode(enc types.Encoding, data []byte) ([]string, []types.Warning) {
	var (
		out   []string
		warns []types.Warning
	)
	for {
		segment, rest, found := CutTerminator(enc, data)
		s, w := DecodeString(enc, segment)
		out = append(out, s)
		warns = append(warns, w...)
		if !found || len(rest) == 0 {
			break
		}
		data = rest
	}
	return out, warns
}

// EncodeString encodes a single string without a terminator. Latin-1
// fails with a TextError when the string contains characters outside
// ISO-8859-1; callers fall back to a Unicode encoding per the write
// options.
func EncodeString(enc types.Encoding, s string) ([]byte, error) {
	switch enc {
	case types.Latin1:
		out, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, &types.TextError{
				Encoding: enc,
				Reason:   "string not representable in ISO-8859-1",
			}
		}
		return out, nil

	case types.UTF16:
		out, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, &types.TextError{Encoding: enc, Reason: err.Error()}
		}
		return out, nil

	case types.UTF16BE:
		out, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, &types.TextError{Encoding: enc, Reason: err.Error()}
		}
		return out, nil

	case types.UTF8:
		return []byte(s), nil

	default:
		return nil, &types.TextError{Encoding: enc, Reason: "unknown encoding byte"}
	}
}

// Encode joins the strings with the encoding's terminator as a
// separator. An empty slice encodes as a single empty string so that
// frames requiring non-empty text stay well-formed.
func Encode(enc types.Encoding, strs []string) ([]byte, error) {
	if len(strs) == 0 {
		strs = []string{""}
	}
	var buf bytes.Buffer
	for i, s := range strs {
		if i > 0 {
			buf.Write(Terminator(enc))
		}
		seg, err := EncodeString(enc, s)
		if err != nil {
			return nil, err
		}
		buf.Write(seg)
	}
	return buf.Bytes(), nil
}
