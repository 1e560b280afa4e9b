package id3tag

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewTag(t *testing.T) {
	tag := New(ID3v24)

	if tag.Version != ID3v24 {
		t.Errorf("Version = %v, want %v", tag.Version, ID3v24)
	}
	if tag.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tag.Len())
	}
	if tag.First("TIT2") != nil {
		t.Error("First() on empty tag should return nil")
	}
}

func TestAddKeepsDuplicates(t *testing.T) {
	tag := New(ID3v24)
	tag.Add(NewTextFrame("TPE1", Latin1, "First"))
	tag.Add(NewTextFrame("TIT2", Latin1, "Title"))
	tag.Add(NewTextFrame("TPE1", Latin1, "Second"))

	if tag.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tag.Len())
	}

	artists := tag.Frames("TPE1")
	if len(artists) != 2 {
		t.Fatalf("Frames(TPE1) returned %d frames, want 2", len(artists))
	}
	if got := artists[0].(TextFrame).Text[0]; got != "First" {
		t.Errorf("first TPE1 = %q, want %q", got, "First")
	}
	if got := artists[1].(TextFrame).Text[0]; got != "Second" {
		t.Errorf("second TPE1 = %q, want %q", got, "Second")
	}

	first := tag.First("TPE1")
	if first == nil {
		t.Fatal("First(TPE1) returned nil")
	}
	if got := first.(TextFrame).Text[0]; got != "First" {
		t.Errorf("First(TPE1) = %q, want %q", got, "First")
	}
}

func TestReplace(t *testing.T) {
	tag := New(ID3v23)
	tag.Add(NewTextFrame("TPE1", Latin1, "One"))
	tag.Add(NewTextFrame("TIT2", Latin1, "Title"))
	tag.Add(NewTextFrame("TPE1", Latin1, "Two"))

	tag.Replace(NewTextFrame("TPE1", Latin1, "Only"))

	if tag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tag.Len())
	}

	// The replacement takes the position of the first removed frame.
	var ids []FrameID
	for f := range tag.All() {
		ids = append(ids, f.ID())
	}
	want := []FrameID{"TPE1", "TIT2"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("frame order = %v, want %v", ids, want)
	}
	if got := tag.First("TPE1").(TextFrame).Text[0]; got != "Only" {
		t.Errorf("TPE1 = %q, want %q", got, "Only")
	}
}

func TestReplaceAppendsWhenAbsent(t *testing.T) {
	tag := New(ID3v23)
	tag.Add(NewTextFrame("TIT2", Latin1, "Title"))

	tag.Replace(NewTextFrame("TALB", Latin1, "Album"))

	if tag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tag.Len())
	}
	if tag.First("TALB") == nil {
		t.Error("TALB not added")
	}
}

func TestRemove(t *testing.T) {
	tag := New(ID3v24)
	tag.Add(NewTextFrame("TPE1", Latin1, "One"))
	tag.Add(NewTextFrame("TIT2", Latin1, "Title"))
	tag.Add(NewTextFrame("TPE1", Latin1, "Two"))

	if got := tag.Remove("TPE1"); got != 2 {
		t.Errorf("Remove(TPE1) = %d, want 2", got)
	}
	if got := tag.Remove("TPE1"); got != 0 {
		t.Errorf("second Remove(TPE1) = %d, want 0", got)
	}
	if tag.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tag.Len())
	}
	if tag.First("TIT2") == nil {
		t.Error("unrelated frame removed")
	}
}

func TestAllStopsEarly(t *testing.T) {
	tag := New(ID3v24)
	tag.Add(NewTextFrame("TIT2", Latin1, "a"))
	tag.Add(NewTextFrame("TPE1", Latin1, "b"))
	tag.Add(NewTextFrame("TALB", Latin1, "c"))

	seen := 0
	for range tag.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Errorf("iterated %d frames after break, want 2", seen)
	}
}

func TestClone(t *testing.T) {
	tag := New(ID3v24)
	tag.Add(NewTextFrame("TIT2", Latin1, "Original"))

	dup := tag.Clone()
	dup.Replace(NewTextFrame("TIT2", Latin1, "Changed"))
	dup.Add(NewTextFrame("TALB", Latin1, "Album"))

	if got := tag.First("TIT2").(TextFrame).Text[0]; got != "Original" {
		t.Errorf("original mutated through clone: TIT2 = %q", got)
	}
	if tag.Len() != 1 {
		t.Errorf("original Len() = %d, want 1", tag.Len())
	}
	if dup.Len() != 2 {
		t.Errorf("clone Len() = %d, want 2", dup.Len())
	}
}

func TestParseDispatchesV1(t *testing.T) {
	src := New(ID3v23)
	src.Add(NewTextFrame("TIT2", Latin1, "Trailer Title"))
	src.Add(NewTextFrame("TRCK", Latin1, "7"))
	out, _, err := src.Write(ID3v1)
	if err != nil {
		t.Fatalf("Write(ID3v1) error: %v", err)
	}

	tag, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if tag.Version != ID3v11 {
		t.Errorf("Version = %v, want %v", tag.Version, ID3v11)
	}
	if got := tag.First("TIT2").(TextFrame).Text[0]; got != "Trailer Title" {
		t.Errorf("TIT2 = %q, want %q", got, "Trailer Title")
	}
	if got := tag.First("TRCK").(TextFrame).Text[0]; got != "7" {
		t.Errorf("TRCK = %q, want %q", got, "7")
	}
}

// warnedBuffer builds a tag whose parse produces a warning: an
// unknown identifier outside every naming convention decodes as
// opaque binary and is reported.
func warnedBuffer(t *testing.T) []byte {
	t.Helper()
	src := New(ID3v24)
	src.Add(BinaryFrame{
		FrameHeader: FrameHeader{FrameID: "XYZA"},
		Data:        []byte{0x01, 0x02, 0x03},
	})
	out, _, err := src.Write(ID3v24)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	return out
}

func TestParseStrictMode(t *testing.T) {
	data := warnedBuffer(t)

	tag, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(tag.Warnings) == 0 {
		t.Fatal("fixture must produce a warning")
	}

	if _, err := Parse(data, WithStrictParsing()); err == nil {
		t.Error("strict parsing should fail on a warned buffer")
	}
}

func TestParseIgnoreWarnings(t *testing.T) {
	tag, err := Parse(warnedBuffer(t), WithIgnoreWarnings())
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(tag.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", tag.Warnings)
	}
	if tag.First("XYZA") == nil {
		t.Error("frame must survive warning suppression")
	}
}

func TestParseStrictFrameSizes(t *testing.T) {
	// An ID3v2.4 frame whose raw big-endian size (328) also decodes
	// as synchsafe (200). The default heuristic keeps the raw
	// interpretation; the option forces synchsafe.
	payload := append([]byte{0x00}, make([]byte, 327)...)
	for i := 1; i < len(payload); i++ {
		payload[i] = 'x'
	}
	body := []byte("TIT2")
	body = append(body, 0x00, 0x00, 0x01, 0x48)
	body = append(body, 0, 0)
	body = append(body, payload...)
	body = append(body, "TALB"...)
	body = append(body, 0x00, 0x00, 0x00, 0x04)
	body = append(body, 0, 0)
	body = append(body, "\x00two"...)

	data := []byte("ID3\x04\x00\x00")
	data = append(data, 0x00, 0x00, byte(len(body)>>7), byte(len(body)&0x7F))
	data = append(data, body...)

	loose, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if tf, ok := loose.First("TIT2").(TextFrame); !ok || len(tf.Text[0]) != 327 {
		t.Errorf("default TIT2 = %+v, want 327-character text", loose.First("TIT2"))
	}

	strict, err := Parse(data, WithStrictFrameSizes())
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if tf, ok := strict.First("TIT2").(TextFrame); !ok || len(tf.Text[0]) != 199 {
		t.Errorf("strict TIT2 = %+v, want 199-character text", strict.First("TIT2"))
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	_, err := Parse([]byte("NOT A TAG AT ALL"))
	if err == nil {
		t.Fatal("Parse() should fail on bad magic")
	}
	var serr *StructuralError
	if !errors.As(err, &serr) {
		t.Errorf("error type = %T, want *StructuralError", err)
	}
}
