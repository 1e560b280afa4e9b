// Package v1 implements the fixed 128-byte ID3v1 and ID3v1.1
// trailer, mapping its fields to and from the frame identifiers used
// by the rest of the codec.
package v1

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/simonhull/id3tag/internal/text"
	"github.com/simonhull/id3tag/internal/types"
)

// TagLength is the fixed size of an ID3v1 trailer.
const TagLength = 128

const magic = "TAG"

// field offsets within the 128-byte record.
const (
	offTitle   = 3
	offArtist  = 33
	offAlbum   = 63
	offYear    = 93
	offComment = 97
	offZero    = 125
	offTrack   = 126
	offGenre   = 127
)

func trimField(b []byte) []byte {
	if i := bytes.IndexByte(b, 0x00); i >= 0 {
		b = b[:i]
	}
	return bytes.TrimRight(b, " ")
}

func textFrame(id types.FrameID, value string) types.Frame {
	return types.TextFrame{
		FrameHeader: types.FrameHeader{FrameID: id},
		Encoding:    types.Latin1,
		Text:        []string{value},
	}
}

// Decode parses a 128-byte trailer into frames. The only hard
// failure is a missing "TAG" magic or a short buffer.
func Decode(data []byte) ([]types.Frame, types.Version, []types.Warning, error) {
	if len(data) < TagLength {
		return nil, types.VersionUnknown, nil, &types.StructuralError{
			Reason: "buffer shorter than the 128-byte trailer",
		}
	}
	if string(data[:len(magic)]) != magic {
		return nil, types.VersionUnknown, nil, &types.StructuralError{
			Reason: "missing TAG magic",
		}
	}

	var frames []types.Frame
	var warns []types.Warning
	version := types.ID3v1

	field := func(id types.FrameID, raw []byte) {
		raw = trimField(raw)
		if len(raw) == 0 {
			return
		}
		value, w := text.DecodeString(types.Latin1, raw)
		warns = append(warns, w...)
		frames = append(frames, textFrame(id, value))
	}

	field("TIT2", data[offTitle:offArtist])
	field("TPE1", data[offArtist:offAlbum])
	field("TALB", data[offAlbum:offYear])
	field("TYER", data[offYear:offComment])

	commentEnd := offGenre
	// A zero byte at comment offset 28 followed by a nonzero track
	// byte marks an ID3v1.1 record.
	if data[offZero] == 0 && data[offTrack] != 0 {
		version = types.ID3v11
		commentEnd = offZero
		frames = append(frames, textFrame("TRCK", strconv.Itoa(int(data[offTrack]))))
	}
	if raw := trimField(data[offComment:commentEnd]); len(raw) > 0 {
		comment, w := text.DecodeString(types.Latin1, raw)
		warns = append(warns, w...)
		frames = append(frames, types.CommentFrame{
			FrameHeader: types.FrameHeader{FrameID: "COMM"},
			Encoding:    types.Latin1,
			Language:    "XXX",
			Text:        comment,
		})
	}

	if name := types.GenreName(data[offGenre]); name != "" {
		frames = append(frames, textFrame("TCON", name))
	}

	return frames, version, warns, nil
}

// latin1Field renders a string into a fixed-width Latin-1 field,
// replacing unrepresentable characters and truncating over-length
// input. Writing never fails.
func latin1Field(dst []byte, s string) {
	i := 0
	for _, r := range s {
		if i >= len(dst) {
			return
		}
		if r > 0xFF {
			r = '?'
		}
		dst[i] = byte(r)
		i++
	}
}

// firstText returns the first string of the first text frame matching
// any of the identifiers.
func firstText(frames []types.Frame, ids ...types.FrameID) string {
	for _, id := range ids {
		for _, f := range frames {
			tf, ok := f.(types.TextFrame)
			if !ok || tf.FrameID != id || len(tf.Text) == 0 {
				continue
			}
			return tf.Text[0]
		}
	}
	return ""
}

func firstComment(frames []types.Frame) string {
	for _, f := range frames {
		if cf, ok := f.(types.CommentFrame); ok && cf.FrameID == "COMM" {
			return cf.Text
		}
	}
	return ""
}

// trackNumber extracts the leading integer of a TRCK value such as
// "3" or "3/12".
func trackNumber(s string) int {
	s, _, _ = strings.Cut(s, "/")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 255 {
		return 0
	}
	return n
}

// genreByte resolves a TCON value to an ID3v1 genre index, accepting
// either a genre name or a bare numeric index.
func genreByte(s string) byte {
	if s == "" {
		return 255
	}
	if idx := types.GenreIndex(s); idx != 255 {
		return idx
	}
	if n, err := strconv.Atoi(strings.Trim(s, "()")); err == nil && n >= 0 && n < 255 {
		return byte(n)
	}
	return 255
}

// Encode renders frames as a 128-byte trailer. Over-length fields are
// truncated and a track number, when present, produces the ID3v1.1
// layout.
func Encode(frames []types.Frame) [TagLength]byte {
	var out [TagLength]byte
	copy(out[:offTitle], magic)

	latin1Field(out[offTitle:offArtist], firstText(frames, "TIT2"))
	latin1Field(out[offArtist:offAlbum], firstText(frames, "TPE1"))
	latin1Field(out[offAlbum:offYear], firstText(frames, "TALB"))

	year := firstText(frames, "TYER", "TDRC")
	if len(year) > 4 {
		year = year[:4]
	}
	latin1Field(out[offYear:offComment], year)

	track := trackNumber(firstText(frames, "TRCK"))
	commentEnd := offGenre
	if track > 0 {
		commentEnd = offZero
		out[offZero] = 0
		out[offTrack] = byte(track)
	}
	latin1Field(out[offComment:commentEnd], firstComment(frames))

	out[offGenre] = genreByte(firstText(frames, "TCON"))
	return out
}
