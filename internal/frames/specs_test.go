package frames

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/simonhull/id3tag/internal/types"
)

func header(id string) types.FrameHeader {
	return types.FrameHeader{FrameID: types.FrameID(id)}
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantEnc  types.Encoding
		wantText []string
	}{
		{
			name:     "latin1 single",
			data:     []byte("\x00Abbey Road"),
			wantEnc:  types.Latin1,
			wantText: []string{"Abbey Road"},
		},
		{
			name:     "latin1 multi",
			data:     []byte("\x00Rock\x00Blues"),
			wantEnc:  types.Latin1,
			wantText: []string{"Rock", "Blues"},
		},
		{
			name:     "utf8",
			data:     append([]byte{0x03}, []byte("Björk")...),
			wantEnc:  types.UTF8,
			wantText: []string{"Björk"},
		},
		{
			name:     "encoding byte only",
			data:     []byte{0x00},
			wantEnc:  types.Latin1,
			wantText: []string{""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _, err := decodeText(header("TIT2"), tt.data)
			if err != nil {
				t.Fatalf("decodeText() error = %v", err)
			}
			tf := f.(types.TextFrame)
			if tf.Encoding != tt.wantEnc {
				t.Errorf("Encoding = %v, want %v", tf.Encoding, tt.wantEnc)
			}
			if !reflect.DeepEqual(tf.Text, tt.wantText) {
				t.Errorf("Text = %q, want %q", tf.Text, tt.wantText)
			}
		})
	}
}

func TestDecodeTextUndefinedEncoding(t *testing.T) {
	f, warns, err := decodeText(header("TIT2"), []byte("\x09Hi"))
	if err != nil {
		t.Fatalf("decodeText() error = %v", err)
	}
	if len(warns) == 0 {
		t.Error("expected a warning for undefined encoding byte")
	}
	tf := f.(types.TextFrame)
	if tf.Encoding != types.Latin1 {
		t.Errorf("Encoding = %v, want Latin1 fallback", tf.Encoding)
	}
	if got := tf.Text[0]; got != "Hi" {
		t.Errorf("Text = %q, want %q", got, "Hi")
	}
}

func TestDecodeTextEmptyPayload(t *testing.T) {
	_, _, err := decodeText(header("TIT2"), nil)
	if err == nil {
		t.Fatal("expected an error for empty payload")
	}
}

func TestEncodeTextRoundTrip(t *testing.T) {
	policy := EncodingPolicy{Version: types.ID3v24}
	in := types.TextFrame{
		FrameHeader: header("TPE1"),
		Encoding:    types.UTF8,
		Text:        []string{"Sigur Rós", "múm"},
	}
	raw, err := encodeText(in, policy)
	if err != nil {
		t.Fatalf("encodeText() error = %v", err)
	}
	out, _, err := decodeText(in.FrameHeader, raw)
	if err != nil {
		t.Fatalf("decodeText() error = %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestEncodeTextLatin1Fallback(t *testing.T) {
	// Latin-1 cannot hold CJK text; the policy upgrades to the
	// preferred Unicode encoding instead of failing.
	policy := EncodingPolicy{Version: types.ID3v23}
	raw, err := encodeText(types.TextFrame{
		FrameHeader: header("TIT2"),
		Encoding:    types.Latin1,
		Text:        []string{"残酷な天使のテーゼ"},
	}, policy)
	if err != nil {
		t.Fatalf("encodeText() error = %v", err)
	}
	if types.Encoding(raw[0]) != types.UTF16 {
		t.Errorf("encoding byte = %v, want UTF16", types.Encoding(raw[0]))
	}
}

func TestEncodeTextDowngradesUTF8(t *testing.T) {
	// UTF-8 is only legal on v2.4; targeting v2.3 downgrades it.
	policy := EncodingPolicy{Version: types.ID3v23}
	raw, err := encodeText(types.TextFrame{
		FrameHeader: header("TIT2"),
		Encoding:    types.UTF8,
		Text:        []string{"Hello"},
	}, policy)
	if err != nil {
		t.Fatalf("encodeText() error = %v", err)
	}
	if types.Encoding(raw[0]) != types.UTF16 {
		t.Errorf("encoding byte = %v, want UTF16", types.Encoding(raw[0]))
	}
}

func TestDecodeURL(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantURL  string
		wantWarn bool
	}{
		{"plain", []byte("http://example.com"), "http://example.com", false},
		{"terminated", []byte("http://example.com\x00junk"), "http://example.com", false},
		{"stray encoding byte", []byte("\x00http://feed.example.com"), "http://feed.example.com", true},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, warns, err := decodeURL(header("WOAR"), tt.data)
			if err != nil {
				t.Fatalf("decodeURL() error = %v", err)
			}
			uf := f.(types.URLFrame)
			if uf.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", uf.URL, tt.wantURL)
			}
			if (len(warns) > 0) != tt.wantWarn {
				t.Errorf("warnings = %v, wantWarn %v", warns, tt.wantWarn)
			}
		})
	}
}

func TestUserTextRoundTrip(t *testing.T) {
	policy := EncodingPolicy{Version: types.ID3v24}
	in := types.UserTextFrame{
		FrameHeader: header("TXXX"),
		Encoding:    types.UTF8,
		Description: "MusicBrainz Album Id",
		Value:       "f5093c06-23e3-404f-aeaa-40f72885ee3a",
	}
	raw, err := encodeUserText(in, policy)
	if err != nil {
		t.Fatalf("encodeUserText() error = %v", err)
	}
	out, _, err := decodeUserText(in.FrameHeader, raw)
	if err != nil {
		t.Fatalf("decodeUserText() error = %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestCommentRoundTrip(t *testing.T) {
	policy := EncodingPolicy{Version: types.ID3v23}
	in := types.CommentFrame{
		FrameHeader: header("COMM"),
		Encoding:    types.Latin1,
		Language:    "eng",
		Description: "",
		Text:        "ripped with care",
	}
	raw, err := encodeComment(in, policy)
	if err != nil {
		t.Fatalf("encodeComment() error = %v", err)
	}
	out, _, err := decodeComment(in.FrameHeader, raw)
	if err != nil {
		t.Fatalf("decodeComment() error = %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestDecodeCommentNoSeparator(t *testing.T) {
	// A comment missing the description terminator reads the whole
	// remainder as text.
	f, _, err := decodeComment(header("COMM"), []byte("\x00engall text no separator"))
	if err != nil {
		t.Fatalf("decodeComment() error = %v", err)
	}
	cf := f.(types.CommentFrame)
	if cf.Description != "" {
		t.Errorf("Description = %q, want empty", cf.Description)
	}
	if cf.Text != "all text no separator" {
		t.Errorf("Text = %q", cf.Text)
	}
}

func TestDecodeCommentTooShort(t *testing.T) {
	if _, _, err := decodeComment(header("COMM"), []byte("\x00en")); err == nil {
		t.Fatal("expected an error for a truncated language code")
	}
}

func TestPictureRoundTrip(t *testing.T) {
	policy := EncodingPolicy{Version: types.ID3v23}
	in := types.PictureFrame{
		FrameHeader: header("APIC"),
		Encoding:    types.Latin1,
		MIMEType:    "image/png",
		PictureType: types.PictureCoverFront,
		Description: "front",
		Data:        []byte{0x89, 'P', 'N', 'G'},
	}
	raw, err := encodePicture(in, policy)
	if err != nil {
		t.Fatalf("encodePicture() error = %v", err)
	}
	out, _, err := decodePicture(in.FrameHeader, raw)
	if err != nil {
		t.Fatalf("decodePicture() error = %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestPicture22FormatMapping(t *testing.T) {
	policy := EncodingPolicy{Version: types.ID3v22}
	in := types.PictureFrame{
		FrameHeader: header("PIC"),
		Encoding:    types.Latin1,
		MIMEType:    "image/jpeg",
		PictureType: types.PictureCoverFront,
		Description: "",
		Data:        []byte{0xFF, 0xD8},
	}
	raw, err := encodePicture22(in, policy)
	if err != nil {
		t.Fatalf("encodePicture22() error = %v", err)
	}
	if got := string(raw[1:4]); got != "JPG" {
		t.Errorf("image format = %q, want %q", got, "JPG")
	}
	out, _, err := decodePicture22(in.FrameHeader, raw)
	if err != nil {
		t.Fatalf("decodePicture22() error = %v", err)
	}
	pf := out.(types.PictureFrame)
	if pf.MIMEType != "image/jpeg" {
		t.Errorf("MIMEType = %q, want %q", pf.MIMEType, "image/jpeg")
	}
	if !bytes.Equal(pf.Data, in.Data) {
		t.Errorf("Data = %v, want %v", pf.Data, in.Data)
	}
}

func TestObjectRoundTrip(t *testing.T) {
	policy := EncodingPolicy{Version: types.ID3v24}
	in := types.ObjectFrame{
		FrameHeader: header("GEOB"),
		Encoding:    types.UTF8,
		MIMEType:    "application/pdf",
		Filename:    "booklet.pdf",
		Description: "liner notes",
		Data:        []byte{'%', 'P', 'D', 'F'},
	}
	raw, err := encodeObject(in, policy)
	if err != nil {
		t.Fatalf("encodeObject() error = %v", err)
	}
	out, _, err := decodeObject(in.FrameHeader, raw)
	if err != nil {
		t.Fatalf("decodeObject() error = %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestUniqueFileIDRoundTrip(t *testing.T) {
	in := types.UniqueFileIDFrame{
		FrameHeader: header("UFID"),
		Owner:       "http://musicbrainz.org",
		Identifier:  []byte("8f468f36"),
	}
	raw, err := encodeUniqueFileID(in, EncodingPolicy{})
	if err != nil {
		t.Fatalf("encodeUniqueFileID() error = %v", err)
	}
	out, _, err := decodeUniqueFileID(in.FrameHeader, raw)
	if err != nil {
		t.Fatalf("decodeUniqueFileID() error = %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestPlayCount(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint64
	}{
		{"four bytes", []byte{0x00, 0x00, 0x01, 0x00}, 256},
		{"five bytes", []byte{0x01, 0x00, 0x00, 0x00, 0x00}, 1 << 32},
		{"short", []byte{0x05}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _, err := decodePlayCount(header("PCNT"), tt.data)
			if err != nil {
				t.Fatalf("decodePlayCount() error = %v", err)
			}
			if got := f.(types.PlayCountFrame).Count; got != tt.want {
				t.Errorf("Count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEncodePlayCountWidth(t *testing.T) {
	raw, err := encodePlayCount(types.PlayCountFrame{FrameHeader: header("PCNT"), Count: 7}, EncodingPolicy{})
	if err != nil {
		t.Fatalf("encodePlayCount() error = %v", err)
	}
	if !bytes.Equal(raw, []byte{0, 0, 0, 7}) {
		t.Errorf("raw = %v, want 4-byte counter", raw)
	}
	raw, err = encodePlayCount(types.PlayCountFrame{FrameHeader: header("PCNT"), Count: 1 << 32}, EncodingPolicy{})
	if err != nil {
		t.Fatalf("encodePlayCount() error = %v", err)
	}
	if len(raw) != 5 {
		t.Errorf("len(raw) = %d, want 5 for a counter above 32 bits", len(raw))
	}
}

func TestPopularimeterRoundTrip(t *testing.T) {
	in := types.PopularimeterFrame{
		FrameHeader: header("POPM"),
		Email:       "user@example.com",
		Rating:      196,
		Count:       42,
	}
	raw, err := encodePopularimeter(in, EncodingPolicy{})
	if err != nil {
		t.Fatalf("encodePopularimeter() error = %v", err)
	}
	out, _, err := decodePopularimeter(in.FrameHeader, raw)
	if err != nil {
		t.Fatalf("decodePopularimeter() error = %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestResolveFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		ver  types.Version
		id   types.FrameID
		data []byte
		want any
	}{
		{"registered", types.ID3v23, "COMM", []byte("\x00engd\x00t"), types.CommentFrame{}},
		{"text convention", types.ID3v23, "TZZZ", []byte("\x00x"), types.TextFrame{}},
		{"url convention", types.ID3v23, "WZZZ", []byte("http://x"), types.URLFrame{}},
		{"binary fallback", types.ID3v23, "XYZA", []byte{1, 2, 3}, types.BinaryFrame{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Resolve(tt.ver, tt.id)
			f, _, err := spec.Decode(header(string(tt.id)), tt.data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if reflect.TypeOf(f) != reflect.TypeOf(tt.want) {
				t.Errorf("frame type = %T, want %T", f, tt.want)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	if !Known(types.ID3v23, "TIT2") {
		t.Error("TIT2 should be a known v2.3 identifier")
	}
	if !Known(types.ID3v22, "TT2") {
		t.Error("TT2 should be a known v2.2 identifier")
	}
	if Known(types.ID3v23, "ZZZZ") {
		t.Error("ZZZZ should not be known")
	}
}

func TestLabel(t *testing.T) {
	if got := Label("APIC"); got != "Attached picture" {
		t.Errorf("Label(APIC) = %q", got)
	}
	if got := Label("QQQQ"); got != "QQQQ" {
		t.Errorf("Label(QQQQ) = %q, want the identifier itself", got)
	}
}
