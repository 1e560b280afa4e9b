package id3tag

import (
	"github.com/simonhull/id3tag/internal/types"
)

// Frame is an alias to types.Frame.
// Re-exporting from internal/types to keep the public API flat.
type Frame = types.Frame

// FrameID is an alias to types.FrameID.
type FrameID = types.FrameID

// FrameHeader is an alias to types.FrameHeader.
type FrameHeader = types.FrameHeader

// FrameFlags is an alias to types.FrameFlags.
type FrameFlags = types.FrameFlags

// Encoding is an alias to types.Encoding.
type Encoding = types.Encoding

// The four ID3v2 text encodings. Latin1 and UTF16 are legal
// everywhere; UTF16BE and UTF8 only in ID3v2.4.
const (
	Latin1  = types.Latin1
	UTF16   = types.UTF16
	UTF16BE = types.UTF16BE
	UTF8    = types.UTF8
)

// Frame payload shapes, re-exported from internal/types.
type (
	TextFrame          = types.TextFrame
	URLFrame           = types.URLFrame
	UserTextFrame      = types.UserTextFrame
	UserURLFrame       = types.UserURLFrame
	CommentFrame       = types.CommentFrame
	LyricsFrame        = types.LyricsFrame
	TermsOfUseFrame    = types.TermsOfUseFrame
	PictureFrame       = types.PictureFrame
	ObjectFrame        = types.ObjectFrame
	UniqueFileIDFrame  = types.UniqueFileIDFrame
	PrivateFrame       = types.PrivateFrame
	PlayCountFrame     = types.PlayCountFrame
	PopularimeterFrame = types.PopularimeterFrame
	BinaryFrame        = types.BinaryFrame
)

// PictureType is an alias to types.PictureType.
type PictureType = types.PictureType

// Common picture type values.
const (
	PictureOther      = types.PictureOther
	PictureFileIcon   = types.PictureFileIcon
	PictureCoverFront = types.PictureCoverFront
	PictureCoverBack  = types.PictureCoverBack
	PictureArtist     = types.PictureArtist
)

// PictureTypes are the names defined for APIC/PIC picture type bytes.
var PictureTypes = types.PictureTypes

// Genres is the ID3v1 genre table, including the Winamp extensions.
var Genres = types.Genres

// NewTextFrame builds a text frame for a known identifier from bare
// strings.
func NewTextFrame(id FrameID, enc Encoding, text ...string) TextFrame {
	if len(text) == 0 {
		text = []string{""}
	}
	return TextFrame{
		FrameHeader: FrameHeader{FrameID: id},
		Encoding:    enc,
		Text:        text,
	}
}
