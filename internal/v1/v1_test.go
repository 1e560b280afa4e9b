package v1

import (
	"errors"
	"strings"
	"testing"

	"github.com/simonhull/id3tag/internal/types"
)

func buildTrailer(title, artist, album, year, comment string, track, genre byte) []byte {
	b := make([]byte, TagLength)
	copy(b[:3], "TAG")
	copy(b[3:33], title)
	copy(b[33:63], artist)
	copy(b[63:93], album)
	copy(b[93:97], year)
	copy(b[97:127], comment)
	if track != 0 {
		b[125] = 0
		b[126] = track
	}
	b[127] = genre
	return b
}

func findText(t *testing.T, frames []types.Frame, id types.FrameID) string {
	t.Helper()
	for _, f := range frames {
		if tf, ok := f.(types.TextFrame); ok && tf.FrameID == id {
			return tf.Text[0]
		}
	}
	return ""
}

func TestDecode(t *testing.T) {
	data := buildTrailer("So What", "Miles Davis", "Kind of Blue", "1959", "classic", 1, 8)
	frames, version, warns, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(warns) != 0 {
		t.Errorf("warnings = %v, want none", warns)
	}
	if version != types.ID3v11 {
		t.Errorf("version = %v, want ID3v1.1", version)
	}
	want := map[types.FrameID]string{
		"TIT2": "So What",
		"TPE1": "Miles Davis",
		"TALB": "Kind of Blue",
		"TYER": "1959",
		"TRCK": "1",
		"TCON": "Jazz",
	}
	for id, val := range want {
		if got := findText(t, frames, id); got != val {
			t.Errorf("%s = %q, want %q", id, got, val)
		}
	}
	var comment string
	for _, f := range frames {
		if cf, ok := f.(types.CommentFrame); ok {
			comment = cf.Text
		}
	}
	if comment != "classic" {
		t.Errorf("comment = %q, want %q", comment, "classic")
	}
}

func TestDecodeVersionDetection(t *testing.T) {
	tests := []struct {
		name  string
		track byte
		want  types.Version
	}{
		{"zero track byte is plain v1", 0, types.ID3v1},
		{"nonzero track byte is v1.1", 7, types.ID3v11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildTrailer("t", "a", "b", "2000", "c", tt.track, 255)
			frames, version, _, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if version != tt.want {
				t.Errorf("version = %v, want %v", version, tt.want)
			}
			gotTrack := findText(t, frames, "TRCK")
			if tt.track == 0 && gotTrack != "" {
				t.Errorf("TRCK = %q, want none for plain v1", gotTrack)
			}
			if tt.track != 0 && gotTrack != "7" {
				t.Errorf("TRCK = %q, want %q", gotTrack, "7")
			}
		})
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data := make([]byte, TagLength)
	copy(data, "MP3")
	_, _, _, err := Decode(data)
	if err == nil {
		t.Fatal("expected a structural error for a missing magic")
	}
	var serr *types.StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want StructuralError", err)
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	if _, _, _, err := Decode([]byte("TAG")); err == nil {
		t.Fatal("expected an error for a short buffer")
	}
}

func TestEncodeTruncatesLongFields(t *testing.T) {
	long := strings.Repeat("x", 40)
	out := Encode([]types.Frame{
		types.TextFrame{FrameHeader: types.FrameHeader{FrameID: "TIT2"}, Encoding: types.Latin1, Text: []string{long}},
	})
	if got := string(out[3:33]); got != strings.Repeat("x", 30) {
		t.Errorf("title field = %q, want 30 bytes of x", got)
	}
	// The byte after the title field belongs to the artist and must
	// not be overrun.
	if out[33] != 0 {
		t.Errorf("artist field first byte = %#x, want 0", out[33])
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	frames := []types.Frame{
		types.TextFrame{FrameHeader: types.FrameHeader{FrameID: "TIT2"}, Encoding: types.Latin1, Text: []string{"Holidays in the Sun"}},
		types.TextFrame{FrameHeader: types.FrameHeader{FrameID: "TPE1"}, Encoding: types.Latin1, Text: []string{"Sex Pistols"}},
		types.TextFrame{FrameHeader: types.FrameHeader{FrameID: "TRCK"}, Encoding: types.Latin1, Text: []string{"1/12"}},
		types.TextFrame{FrameHeader: types.FrameHeader{FrameID: "TCON"}, Encoding: types.Latin1, Text: []string{"Punk"}},
		types.CommentFrame{FrameHeader: types.FrameHeader{FrameID: "COMM"}, Encoding: types.Latin1, Language: "XXX", Text: "bootleg"},
	}
	out := Encode(frames)
	decoded, version, _, err := Decode(out[:])
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if version != types.ID3v11 {
		t.Errorf("version = %v, want ID3v1.1 when a track is present", version)
	}
	if got := findText(t, decoded, "TIT2"); got != "Holidays in the Sun" {
		t.Errorf("TIT2 = %q", got)
	}
	if got := findText(t, decoded, "TRCK"); got != "1" {
		t.Errorf("TRCK = %q, want leading number only", got)
	}
	if got := findText(t, decoded, "TCON"); got != "Punk" {
		t.Errorf("TCON = %q", got)
	}
}

func TestEncodeUnrepresentableCharacters(t *testing.T) {
	out := Encode([]types.Frame{
		types.TextFrame{FrameHeader: types.FrameHeader{FrameID: "TIT2"}, Encoding: types.UTF8, Text: []string{"日本"}},
	})
	if got := string(out[3:5]); got != "??" {
		t.Errorf("title field = %q, want replacement characters", got)
	}
}

func TestEncodeYearFromRecordingTime(t *testing.T) {
	out := Encode([]types.Frame{
		types.TextFrame{FrameHeader: types.FrameHeader{FrameID: "TDRC"}, Encoding: types.Latin1, Text: []string{"1977-10-14"}},
	})
	if got := string(out[93:97]); got != "1977" {
		t.Errorf("year field = %q, want %q", got, "1977")
	}
}
