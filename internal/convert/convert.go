// Package convert maps frames between ID3v2 sub-versions: the
// 3-character identifiers of ID3v2.2 to and from their 4-character
// equivalents, and the small set of frames renamed between 2.3 and
// 2.4. Frames with no equivalent in the target sub-version are
// dropped or preserved opaquely depending on policy.
package convert

import (
	"fmt"

	"github.com/simonhull/id3tag/internal/frames"
	"github.com/simonhull/id3tag/internal/types"
)

// upgrade maps ID3v2.2 identifiers to their ID3v2.3 equivalents.
var upgrade = map[types.FrameID]types.FrameID{
	"BUF": "RBUF", "CNT": "PCNT", "COM": "COMM", "CRA": "AENC",
	"EQU": "EQUA", "ETC": "ETCO", "GEO": "GEOB", "IPL": "IPLS",
	"LNK": "LINK", "MCI": "MCDI", "MLL": "MLLT", "PIC": "APIC",
	"POP": "POPM", "REV": "RVRB", "RVA": "RVAD", "SLT": "SYLT",
	"STC": "SYTC", "TAL": "TALB", "TBP": "TBPM", "TCM": "TCOM",
	"TCO": "TCON", "TCR": "TCOP", "TDA": "TDAT", "TDY": "TDLY",
	"TEN": "TENC", "TFT": "TFLT", "TIM": "TIME", "TKE": "TKEY",
	"TLA": "TLAN", "TLE": "TLEN", "TMT": "TMED", "TOA": "TOPE",
	"TOF": "TOFN", "TOL": "TOLY", "TOR": "TORY", "TOT": "TOAL",
	"TP1": "TPE1", "TP2": "TPE2", "TP3": "TPE3", "TP4": "TPE4",
	"TPA": "TPOS", "TPB": "TPUB", "TRC": "TSRC", "TRD": "TRDA",
	"TRK": "TRCK", "TSI": "TSIZ", "TSS": "TSSE", "TT1": "TIT1",
	"TT2": "TIT2", "TT3": "TIT3", "TXT": "TEXT", "TXX": "TXXX",
	"TYE": "TYER", "UFI": "UFID", "ULT": "USLT", "WAF": "WOAF",
	"WAR": "WOAR", "WAS": "WOAS", "WCM": "WCOM", "WCP": "WCOP",
	"WPB": "WPUB", "WXX": "WXXX",

	// iTunes extensions.
	"TCP": "TCMP", "TDS": "TDES", "TID": "TGID", "TCT": "TCAT",
	"TKW": "TKWD", "PCS": "PCST", "WFD": "WFED",
	"TST": "TSOT", "TSP": "TSOP", "TSA": "TSOA", "TS2": "TSO2",
	"TSC": "TSOC", "GP1": "GRP1", "MVN": "MVNM", "MVI": "MVIN",
}

// downgrade is the exact inverse of upgrade.
var downgrade = func() map[types.FrameID]types.FrameID {
	m := make(map[types.FrameID]types.FrameID, len(upgrade))
	for short, long := range upgrade {
		m[long] = short
	}
	return m
}()

// rename23to24 covers frames renamed between ID3v2.3 and 2.4.
var rename23to24 = map[types.FrameID]types.FrameID{
	"TYER": "TDRC",
	"TORY": "TDOR",
	"IPLS": "TIPL",
}

var rename24to23 = map[types.FrameID]types.FrameID{
	"TDRC": "TYER",
	"TDOR": "TORY",
	"TIPL": "IPLS",
	"TMCL": "IPLS",
}

// only23 lists frames dropped by the 2.3-to-2.4 renames: their
// content has no single 2.4 home.
var only23 = map[types.FrameID]bool{
	"TDAT": true, "TIME": true, "TRDA": true, "TSIZ": true,
	"RVAD": true, "EQUA": true,
}

// only24 lists frames introduced in 2.4 with no 2.3 equivalent.
var only24 = map[types.FrameID]bool{
	"ASPI": true, "EQU2": true, "RVA2": true, "SEEK": true,
	"SIGN": true, "TDEN": true, "TDRL": true, "TDTG": true,
	"TMOO": true, "TPRO": true,
}

// UpgradeID maps a 3-character identifier to its 4-character
// equivalent.
func UpgradeID(id types.FrameID) (types.FrameID, bool) {
	long, ok := upgrade[id]
	return long, ok
}

// DowngradeID maps a 4-character identifier to its ID3v2.2
// equivalent.
func DowngradeID(id types.FrameID) (types.FrameID, bool) {
	short, ok := downgrade[id]
	return short, ok
}

// Policy configures how frames without a target-version equivalent
// are treated.
type Policy struct {
	// PreserveUnknown keeps inconvertible frames as opaque binary
	// payloads under a vendor-extension identifier instead of
	// dropping them.
	PreserveUnknown bool
}

// Report lists what a conversion discarded or flagged.
type Report struct {
	// Dropped holds the identifiers of frames with no equivalent in
	// the target sub-version that were discarded.
	Dropped []types.FrameID

	Warnings []types.Warning
}

// preservedID is the vendor-extension identifier under which
// inconvertible frames are retained when the policy asks for it.
func preservedID(to types.Version) types.FrameID {
	if to.IDLength() == 3 {
		return "XPF"
	}
	return "XPFR"
}

// mapID resolves the identifier a frame takes in the target
// sub-version. ok is false when there is no equivalent.
func mapID(id types.FrameID, from, to types.Version) (types.FrameID, bool) {
	if from == to {
		return id, true
	}

	// Normalize to the 4-character namespace first.
	canonical := id
	if from == types.ID3v22 {
		long, ok := upgrade[id]
		if !ok {
			return "", false
		}
		canonical = long
	}

	switch to {
	case types.ID3v22:
		if from == types.ID3v24 {
			if renamed, ok := rename24to23[canonical]; ok {
				canonical = renamed
			} else if only24[canonical] {
				return "", false
			}
		}
		short, ok := downgrade[canonical]
		return short, ok
	case types.ID3v23:
		if from == types.ID3v24 {
			if renamed, ok := rename24to23[canonical]; ok {
				return renamed, true
			}
			if only24[canonical] {
				return "", false
			}
		}
		return canonical, true
	case types.ID3v24:
		if renamed, ok := rename23to24[canonical]; ok {
			return renamed, true
		}
		if only23[canonical] {
			return "", false
		}
		return canonical, true
	default:
		return "", false
	}
}

// sanitizeFlags clears flag bits the target sub-version cannot
// express.
func sanitizeFlags(flags types.FrameFlags, to types.Version) types.FrameFlags {
	switch to {
	case types.ID3v22:
		return types.FrameFlags{}
	case types.ID3v23:
		flags.Unsynchronised = false
		flags.DataLengthIndicator = false
	}
	return flags
}

// withHeader rebuilds a frame with a replacement header. The payload
// shape carries over unchanged; shapes are shared across
// sub-versions, only identifiers and flags differ.
func withHeader(f types.Frame, h types.FrameHeader) types.Frame {
	switch p := f.(type) {
	case types.TextFrame:
		p.FrameHeader = h
		return p
	case types.URLFrame:
		p.FrameHeader = h
		return p
	case types.UserTextFrame:
		p.FrameHeader = h
		return p
	case types.UserURLFrame:
		p.FrameHeader = h
		return p
	case types.CommentFrame:
		p.FrameHeader = h
		return p
	case types.LyricsFrame:
		p.FrameHeader = h
		return p
	case types.TermsOfUseFrame:
		p.FrameHeader = h
		return p
	case types.PictureFrame:
		p.FrameHeader = h
		return p
	case types.ObjectFrame:
		p.FrameHeader = h
		return p
	case types.UniqueFileIDFrame:
		p.FrameHeader = h
		return p
	case types.PrivateFrame:
		p.FrameHeader = h
		return p
	case types.PlayCountFrame:
		p.FrameHeader = h
		return p
	case types.PopularimeterFrame:
		p.FrameHeader = h
		return p
	case types.BinaryFrame:
		p.FrameHeader = h
		return p
	default:
		return f
	}
}

// preserve wraps an inconvertible frame as an opaque binary payload
// under the vendor-extension identifier: the original identifier, a
// zero byte, then the frame's payload encoded for its source
// sub-version.
func preserve(f types.Frame, from, to types.Version) types.Frame {
	h := f.Header()
	var body []byte
	if bf, ok := f.(types.BinaryFrame); ok {
		body = bf.Data
	} else {
		encoded, err := frames.Resolve(from, h.FrameID).Encode(f, frames.EncodingPolicy{Version: from})
		if err == nil {
			body = encoded
		}
	}
	data := make([]byte, 0, len(h.FrameID)+1+len(body))
	data = append(data, h.FrameID...)
	data = append(data, 0x00)
	data = append(data, body...)
	return types.BinaryFrame{
		FrameHeader: types.FrameHeader{FrameID: preservedID(to)},
		Data:        data,
	}
}

// Convert maps frames from one sub-version's identifier space to
// another's. It never fails; inconvertible frames are dropped or
// preserved per policy and reported.
func Convert(frames []types.Frame, from, to types.Version, policy Policy) ([]types.Frame, Report) {
	var report Report
	if from == to {
		return frames, report
	}

	out := make([]types.Frame, 0, len(frames))
	for _, f := range frames {
		h := f.Header()
		target, ok := mapID(h.FrameID, from, to)
		if ok {
			h.FrameID = target
			h.Flags = sanitizeFlags(h.Flags, to)
			out = append(out, withHeader(f, h))
			continue
		}

		cerr := &types.ConversionError{ID: h.FrameID, Target: to}
		if policy.PreserveUnknown {
			out = append(out, preserve(f, from, to))
			report.Warnings = append(report.Warnings, types.Warning{
				Stage:   "convert",
				Message: fmt.Sprintf("frame %s preserved as %s, no %s equivalent", h.FrameID, preservedID(to), to),
				Err:     cerr,
			})
			continue
		}
		report.Dropped = append(report.Dropped, h.FrameID)
		report.Warnings = append(report.Warnings, types.Warning{
			Stage:   "convert",
			Message: fmt.Sprintf("frame %s dropped, no %s equivalent", h.FrameID, to),
			Err:     cerr,
		})
	}
	return out, report
}
