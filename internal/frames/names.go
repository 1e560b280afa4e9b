package frames

import "github.com/simonhull/id3tag/internal/types"

// frameNames maps declared frame identifiers to their descriptions.
// The 4-character entries cover ID3v2.3 and v2.4 (plus common vendor
// extensions); the 3-character entries are the ID3v2.2 equivalents.
var frameNames = map[types.FrameID]string{
	"AENC": "Audio encryption",
	"APIC": "Attached picture",
	"ASPI": "Audio seek point index",
	"COMM": "Comments",
	"COMR": "Commercial frame",

	"ENCR": "Encryption method registration",
	"EQUA": "Equalisation",
	"EQU2": "Equalisation (2)",
	"ETCO": "Event timing codes",

	"GEOB": "General encapsulated object",
	"GRID": "Group identification registration",

	"IPLS": "Involved people list",

	"LINK": "Linked information",

	"MCDI": "Music CD identifier",
	"MLLT": "MPEG location lookup table",

	"OWNE": "Ownership frame",

	"PRIV": "Private frame",
	"PCNT": "Play counter",
	"POPM": "Popularimeter",
	"POSS": "Position synchronisation frame",

	"RBUF": "Recommended buffer size",
	"RVAD": "Relative volume adjustment",
	"RVA2": "Relative volume adjustment (2)",
	"RVRB": "Reverb",

	"SEEK": "Seek frame",
	"SIGN": "Signature frame",
	"SYLT": "Synchronised lyric/text",
	"SYTC": "Synchronised tempo codes",

	"TALB": "Album/Movie/Show title",
	"TBPM": "BPM (beats per minute)",
	"TCOM": "Composer",
	"TCON": "Content type",
	"TCOP": "Copyright message",
	"TDAT": "Date",
	"TDEN": "Encoding time",
	"TDLY": "Playlist delay",
	"TDOR": "Original release time",
	"TDRC": "Recording time",
	"TDRL": "Release time",
	"TDTG": "Tagging time",
	"TENC": "Encoded by",
	"TEXT": "Lyricist/Text writer",
	"TFLT": "File type",
	"TIME": "Time",
	"TIPL": "Involved people list",
	"TIT1": "Content group description",
	"TIT2": "Title/songname/content description",
	"TIT3": "Subtitle/Description refinement",
	"TKEY": "Initial key",
	"TLAN": "Language(s)",
	"TLEN": "Length",
	"TMCL": "Musician credits list",
	"TMED": "Media type",
	"TMOO": "Mood",
	"TOAL": "Original album/movie/show title",
	"TOFN": "Original filename",
	"TOLY": "Original lyricist(s)/text writer(s)",
	"TORY": "Original release year",
	"TOPE": "Original artist(s)/performer(s)",
	"TOWN": "File owner/licensee",
	"TPE1": "Lead performer(s)/Soloist(s)",
	"TPE2": "Band/orchestra/accompaniment",
	"TPE3": "Conductor/performer refinement",
	"TPE4": "Interpreted, remixed, or otherwise modified by",
	"TPOS": "Part of a set",
	"TPRO": "Produced notice",
	"TPUB": "Publisher",
	"TRCK": "Track number/Position in set",
	"TRDA": "Recording dates",
	"TRSN": "Internet radio station name",
	"TRSO": "Internet radio station owner",
	"TSIZ": "Size",
	"TSOA": "Album sort order",
	"TSOP": "Performer sort order",
	"TSOT": "Title sort order",
	"TSRC": "ISRC (international standard recording code)",
	"TSSE": "Software/Hardware and settings used for encoding",
	"TSST": "Set subtitle",
	"TYER": "Year",
	"TXXX": "User defined text information frame",

	// iTunes extensions.
	"TCMP": "Part of a compilation",
	"TSO2": "Album artist sort order",
	"TSOC": "Composer sort order",
	"TDES": "Podcast description",
	"TGID": "Podcast identifier",
	"TKWD": "Podcast keywords",
	"TCAT": "Podcast category",
	"PCST": "Podcast flag",
	"WFED": "Podcast feed URL",
	"MVNM": "Movement name",
	"MVIN": "Movement number",
	"GRP1": "Grouping",

	"UFID": "Unique file identifier",
	"USER": "Terms of use",
	"USLT": "Unsynchronised lyric/text transcription",

	"WCOM": "Commercial information",
	"WCOP": "Copyright/Legal information",
	"WOAF": "Official audio file webpage",
	"WOAR": "Official artist/performer webpage",
	"WOAS": "Official audio source webpage",
	"WORS": "Official Internet radio station homepage",
	"WPAY": "Payment",
	"WPUB": "Publishers official webpage",
	"WXXX": "User defined URL link frame",

	// ID3v2.2 identifiers.
	"BUF": "Recommended buffer size",
	"CNT": "Play counter",
	"COM": "Comments",
	"CRA": "Audio encryption",
	"CRM": "Encrypted meta frame",
	"EQU": "Equalisation",
	"ETC": "Event timing codes",
	"GEO": "General encapsulated object",
	"IPL": "Involved people list",
	"LNK": "Linked information",
	"MCI": "Music CD identifier",
	"MLL": "MPEG location lookup table",
	"PIC": "Attached picture",
	"POP": "Popularimeter",
	"REV": "Reverb",
	"RVA": "Relative volume adjustment",
	"SLT": "Synchronised lyric/text",
	"STC": "Synchronised tempo codes",
	"TAL": "Album/Movie/Show title",
	"TBP": "BPM (beats per minute)",
	"TCM": "Composer",
	"TCO": "Content type",
	"TCR": "Copyright message",
	"TDA": "Date",
	"TDY": "Playlist delay",
	"TEN": "Encoded by",
	"TFT": "File type",
	"TIM": "Time",
	"TKE": "Initial key",
	"TLA": "Language(s)",
	"TLE": "Length",
	"TMT": "Media type",
	"TOA": "Original artist(s)/performer(s)",
	"TOF": "Original filename",
	"TOL": "Original lyricist(s)/text writer(s)",
	"TOR": "Original release year",
	"TOT": "Original album/movie/show title",
	"TP1": "Lead performer(s)/Soloist(s)",
	"TP2": "Band/orchestra/accompaniment",
	"TP3": "Conductor/performer refinement",
	"TP4": "Interpreted, remixed, or otherwise modified by",
	"TPA": "Part of a set",
	"TPB": "Publisher",
	"TRC": "ISRC (international standard recording code)",
	"TRD": "Recording dates",
	"TRK": "Track number/Position in set",
	"TSI": "Size",
	"TSS": "Software/Hardware and settings used for encoding",
	"TT1": "Content group description",
	"TT2": "Title/songname/content description",
	"TT3": "Subtitle/Description refinement",
	"TXT": "Lyricist/Text writer",
	"TXX": "User defined text information frame",
	"TYE": "Year",
	"UFI": "Unique file identifier",
	"ULT": "Unsynchronised lyric/text transcription",
	"WAF": "Official audio file webpage",
	"WAR": "Official artist/performer webpage",
	"WAS": "Official audio source webpage",
	"WCM": "Commercial information",
	"WCP": "Copyright/Legal information",
	"WPB": "Publishers official webpage",
	"WXX": "User defined URL link frame",

	// iTunes extensions in 2.2 form.
	"TCP": "Part of a compilation",
	"TS2": "Album artist sort order",
	"TSC": "Composer sort order",
	"TST": "Title sort order",
	"TSA": "Album sort order",
	"TSP": "Performer sort order",
	"PCS": "Podcast flag",
	"WFD": "Podcast feed URL",
	"TDS": "Podcast description",
	"TID": "Podcast identifier",
	"TKW": "Podcast keywords",
	"TGU": "Podcast URL",
	"GP1": "Grouping",
	"MVN": "Movement name",
	"MVI": "Movement number",
}
