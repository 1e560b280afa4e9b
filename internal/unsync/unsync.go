// Package unsync implements the ID3v2 byte-level transforms:
// synchsafe integers, plain big-endian integers of arbitrary width,
// and the unsynchronization byte-stuffing scheme.
package unsync

import (
	"fmt"

	"github.com/simonhull/id3tag/internal/types"
)

// MaxSynchsafe is the largest value representable in a 4-byte
// synchsafe integer (28 payload bits).
const MaxSynchsafe = 1<<28 - 1

// EncodeSynchsafe encodes n into four bytes using only the low 7 bits
// of each byte. Values above MaxSynchsafe fail with a SizeError.
func EncodeSynchsafe(n uint32) ([4]byte, error) {
	if n > MaxSynchsafe {
		return [4]byte{}, &types.SizeError{
			Reason: fmt.Sprintf("%d exceeds synchsafe range", n),
		}
	}
	return [4]byte{
		byte(n >> 21 & 0x7F),
		byte(n >> 14 & 0x7F),
		byte(n >> 7 & 0x7F),
		byte(n & 0x7F),
	}, nil
}

// DecodeSynchsafe decodes a big-endian 7-bit-per-byte integer. A set
// high bit in any input byte is not a valid synchsafe encoding and
// fails with a SizeError; callers that must tolerate encoders which
// wrote plain sizes fall back to DecodeUint.
func DecodeSynchsafe(b []byte) (uint32, error) {
	var n uint32
	for _, c := range b {
		if c > 0x7F {
			return 0, &types.SizeError{
				Reason: fmt.Sprintf("byte 0x%02X has its high bit set", c),
			}
		}
		n = n<<7 | uint32(c)
	}
	return n, nil
}

// DecodeUint decodes a plain big-endian unsigned integer of any width
// up to 4 bytes.
func DecodeUint(b []byte) uint32 {
	var n uint32
	for _, c := range b {
		n = n<<8 | uint32(c)
	}
	return n
}

// EncodeUint encodes n as a big-endian integer of the given width.
func EncodeUint(n uint32, width int) []byte {
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = byte(n)
		n >>= 8
	}
	return out
}

// Unsynchronize inserts a zero byte after every 0xFF that is followed
// by a byte with its three high bits set or by another zero, so the
// output can never contain an MPEG frame sync pattern or a false
// end-of-data marker. A trailing 0xFF also gets a zero appended, since
// whatever follows the tag could complete a sync pattern.
func Unsynchronize(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i, b := range data {
		out = append(out, b)
		if b != 0xFF {
			continue
		}
		if i == len(data)-1 || data[i+1] == 0x00 || data[i+1] >= 0xE0 {
			out = append(out, 0x00)
		}
	}
	return out
}

// Resynchronize removes every zero byte that immediately follows an
// 0xFF. It is a strict left-inverse of Unsynchronize:
// Resynchronize(Unsynchronize(x)) == x for every x.
func Resynchronize(data []byte) []byte {
	out := make([]byte, 0, len(data))
	sync := false
	for _, b := range data {
		if !(sync && b == 0x00) {
			out = append(out, b)
		}
		sync = b == 0xFF
	}
	return out
}
