package types

// FrameID is a frame identifier: 3 characters for ID3v2.2, 4 for
// ID3v2.3 and ID3v2.4.
type FrameID string

// Valid reports whether the identifier matches the standard's grammar:
// a capital letter followed by capitals or digits. A single trailing
// space is tolerated on 4-character ids; some programs (e.g. iTunes
// 8.2) generate such frames when converting 2.2 tags to 2.3/2.4.
func (id FrameID) Valid() bool {
	if len(id) != 3 && len(id) != 4 {
		return false
	}
	if id[0] < 'A' || id[0] > 'Z' {
		return false
	}
	for i := 1; i < len(id); i++ {
		c := id[i]
		if c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			continue
		}
		if c == ' ' && len(id) == 4 && i == 3 {
			continue
		}
		return false
	}
	return true
}

// Encoding is one of the four ID3v2 text encodings.
type Encoding byte

const (
	Latin1  Encoding = 0 // ISO-8859-1
	UTF16   Encoding = 1 // UTF-16 with BOM
	UTF16BE Encoding = 2 // UTF-16 big-endian, no BOM (v2.4)
	UTF8    Encoding = 3 // UTF-8 (v2.4)
)

func (e Encoding) String() string {
	switch e {
	case Latin1:
		return "ISO-8859-1"
	case UTF16:
		return "UTF-16"
	case UTF16BE:
		return "UTF-16BE"
	case UTF8:
		return "UTF-8"
	default:
		return "invalid"
	}
}

// Valid reports whether the byte names a defined encoding.
func (e Encoding) Valid() bool { return e <= UTF8 }

// FrameFlags is the decoded per-frame flags bitset. Which members are
// meaningful depends on the sub-version: 2.2 frames carry no flags,
// 2.3 adds status and compression/encryption/grouping, 2.4 adds
// per-frame unsynchronization and the data length indicator.
type FrameFlags struct {
	DiscardOnTagAlter  bool
	DiscardOnFileAlter bool
	ReadOnly           bool

	Compressed bool
	Encrypted  bool
	// EncryptionMethod is the method symbol byte, meaningful only
	// when Encrypted is set.
	EncryptionMethod byte
	Grouped          bool
	Group            byte

	// v2.4 only.
	Unsynchronised      bool
	DataLengthIndicator bool
}

// FrameHeader carries the identity and flags common to all frame
// kinds. Embed it in a payload type to get a Frame.
type FrameHeader struct {
	FrameID FrameID
	Flags   FrameFlags
}

// ID returns the frame identifier.
func (h FrameHeader) ID() FrameID { return h.FrameID }

// Header returns the header itself; it exists so that embedding types
// satisfy the Frame interface.
func (h FrameHeader) Header() FrameHeader { return h }

// Frame is one metadata record within a tag. The concrete payload
// type is determined by the frame's identifier via the registry at
// parse time.
type Frame interface {
	ID() FrameID
	Header() FrameHeader
}

// TextFrame is a text information frame: an encoding and one or more
// strings. All T-prefixed frames except TXXX decode to this shape,
// including unregistered ones.
type TextFrame struct {
	FrameHeader
	Encoding Encoding
	Text     []string
}

// URLFrame is a URL link frame. The standard mandates Latin-1 but other
// bytes are tolerated on read. All W-prefixed frames except WXXX
// decode to this shape.
type URLFrame struct {
	FrameHeader
	URL string
}

// UserTextFrame is a TXXX user-defined text frame.
type UserTextFrame struct {
	FrameHeader
	Encoding    Encoding
	Description string
	Value       string
}

// UserURLFrame is a WXXX user-defined URL frame.
type UserURLFrame struct {
	FrameHeader
	Encoding    Encoding
	Description string
	URL         string
}

// CommentFrame is a COMM frame: language code, short description and
// the comment text.
type CommentFrame struct {
	FrameHeader
	Encoding    Encoding
	Language    string
	Description string
	Text        string
}

// LyricsFrame is a USLT unsynchronised lyrics frame.
type LyricsFrame struct {
	FrameHeader
	Encoding    Encoding
	Language    string
	Description string
	Text        string
}

// TermsOfUseFrame is a USER frame.
type TermsOfUseFrame struct {
	FrameHeader
	Encoding Encoding
	Language string
	Text     string
}

// PictureFrame is an APIC attached picture. ID3v2.2 PIC frames store
// a 3-character image format instead of a MIME type; the codec maps
// between the two representations.
type PictureFrame struct {
	FrameHeader
	Encoding    Encoding
	MIMEType    string
	PictureType PictureType
	Description string
	Data        []byte
}

// ObjectFrame is a GEOB general encapsulated object.
type ObjectFrame struct {
	FrameHeader
	Encoding    Encoding
	MIMEType    string
	Filename    string
	Description string
	Data        []byte
}

// UniqueFileIDFrame is a UFID frame.
type UniqueFileIDFrame struct {
	FrameHeader
	Owner      string
	Identifier []byte
}

// PrivateFrame is a PRIV frame.
type PrivateFrame struct {
	FrameHeader
	Owner string
	Data  []byte
}

// PlayCountFrame is a PCNT play counter.
type PlayCountFrame struct {
	FrameHeader
	Count uint64
}

// PopularimeterFrame is a POPM frame.
type PopularimeterFrame struct {
	FrameHeader
	Email  string
	Rating byte
	Count  uint64
}

// BinaryFrame holds an opaque payload. It is used for frames with no
// registered shape and no naming-convention fallback, for encrypted
// payloads, and for frames whose decode failed.
type BinaryFrame struct {
	FrameHeader
	Data []byte

	// Invalid marks bytes retained from a frame that could not be
	// decoded (bad size, corrupt compression, malformed payload).
	Invalid bool
}

// PictureType classifies an attached picture.
type PictureType byte

const (
	PictureOther      PictureType = 0
	PictureFileIcon   PictureType = 1
	PictureCoverFront PictureType = 3
	PictureCoverBack  PictureType = 4
	PictureArtist     PictureType = 8
)

// PictureTypes are the names defined for APIC/PIC picture type bytes.
var PictureTypes = []string{
	"Other",
	"32x32 pixels 'file icon' (PNG only)",
	"Other file icon",
	"Cover (front)",
	"Cover (back)",
	"Leaflet page",
	"Media (e.g. label side of CD)",
	"Lead artist/lead performer/soloist",
	"Artist/performer",
	"Conductor",
	"Band/Orchestra",
	"Composer",
	"Lyricist/text writer",
	"Recording Location",
	"During recording",
	"During performance",
	"Movie/video screen capture",
	"A bright coloured fish",
	"Illustration",
	"Band/artist logotype",
	"Publisher/Studio logotype",
}

func (p PictureType) String() string {
	if int(p) >= len(PictureTypes) {
		return ""
	}
	return PictureTypes[p]
}
