package types

import "fmt"

// Version identifies one of the tag layouts this module understands.
type Version int

const (
	VersionUnknown Version = iota

	// ID3v1 is the fixed 128-byte trailer without a track number.
	ID3v1

	// ID3v11 is the ID3v1.1 variant carrying a track number byte.
	ID3v11

	// ID3v22 uses 3-character frame ids and 3-byte frame sizes.
	ID3v22

	// ID3v23 uses 4-character frame ids and plain big-endian frame sizes.
	ID3v23

	// ID3v24 uses 4-character frame ids and synchsafe frame sizes.
	ID3v24
)

// String returns the conventional name of the version.
func (v Version) String() string {
	switch v {
	case ID3v1:
		return "ID3v1"
	case ID3v11:
		return "ID3v1.1"
	case ID3v22:
		return "ID3v2.2"
	case ID3v23:
		return "ID3v2.3"
	case ID3v24:
		return "ID3v2.4"
	default:
		return fmt.Sprintf("Version(%d)", int(v))
	}
}

// IDLength returns the frame identifier length for v2 versions,
// or 0 for v1 variants.
func (v Version) IDLength() int {
	switch v {
	case ID3v22:
		return 3
	case ID3v23, ID3v24:
		return 4
	default:
		return 0
	}
}

// FrameHeaderLength returns the on-disk frame header size for v2
// versions: id + size for 2.2, id + size + flags for 2.3/2.4.
func (v Version) FrameHeaderLength() int {
	switch v {
	case ID3v22:
		return 6
	case ID3v23, ID3v24:
		return 10
	default:
		return 0
	}
}
