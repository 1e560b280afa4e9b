package frames

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/simonhull/id3tag/internal/text"
	"github.com/simonhull/id3tag/internal/types"
)

func init() {
	shapes := map[types.FrameID]Spec{
		"TXXX": {Label: Label("TXXX"), Decode: decodeUserText, Encode: encodeUserText},
		"WXXX": {Label: Label("WXXX"), Decode: decodeUserURL, Encode: encodeUserURL},
		"COMM": {Label: Label("COMM"), Decode: decodeComment, Encode: encodeComment},
		"USLT": {Label: Label("USLT"), Decode: decodeLyrics, Encode: encodeLyrics},
		"USER": {Label: Label("USER"), Decode: decodeTermsOfUse, Encode: encodeTermsOfUse},
		"APIC": {Label: Label("APIC"), Decode: decodePicture, Encode: encodePicture},
		"GEOB": {Label: Label("GEOB"), Decode: decodeObject, Encode: encodeObject},
		"UFID": {Label: Label("UFID"), Decode: decodeUniqueFileID, Encode: encodeUniqueFileID},
		"PRIV": {Label: Label("PRIV"), Decode: decodePrivate, Encode: encodePrivate},
		"PCNT": {Label: Label("PCNT"), Decode: decodePlayCount, Encode: encodePlayCount},
		"POPM": {Label: Label("POPM"), Decode: decodePopularimeter, Encode: encodePopularimeter},
	}
	for id, spec := range shapes {
		Register(types.ID3v23, id, spec)
		Register(types.ID3v24, id, spec)
	}

	v22 := map[types.FrameID]Spec{
		"TXX": {Label: Label("TXX"), Decode: decodeUserText, Encode: encodeUserText},
		"WXX": {Label: Label("WXX"), Decode: decodeUserURL, Encode: encodeUserURL},
		"COM": {Label: Label("COM"), Decode: decodeComment, Encode: encodeComment},
		"ULT": {Label: Label("ULT"), Decode: decodeLyrics, Encode: encodeLyrics},
		"PIC": {Label: Label("PIC"), Decode: decodePicture22, Encode: encodePicture22},
		"GEO": {Label: Label("GEO"), Decode: decodeObject, Encode: encodeObject},
		"UFI": {Label: Label("UFI"), Decode: decodeUniqueFileID, Encode: encodeUniqueFileID},
		"CNT": {Label: Label("CNT"), Decode: decodePlayCount, Encode: encodePlayCount},
		"POP": {Label: Label("POP"), Decode: decodePopularimeter, Encode: encodePopularimeter},
	}
	for id, spec := range v22 {
		Register(types.ID3v22, id, spec)
	}
}

// normalize maps an encoding to one legal for the target version.
// UTF-8 and UTF-16BE exist only in ID3v2.4; elsewhere they downgrade
// to UTF-16 with BOM.
func (p EncodingPolicy) normalize(e types.Encoding) types.Encoding {
	if !e.Valid() {
		return types.Latin1
	}
	if p.Version != types.ID3v24 && (e == types.UTF8 || e == types.UTF16BE) {
		return types.UTF16
	}
	return e
}

// fallback is the Unicode encoding used when Latin-1 cannot represent
// a frame's text.
func (p EncodingPolicy) fallback() types.Encoding {
	if p.Preferred == types.Latin1 || !p.Preferred.Valid() {
		return p.normalize(types.UTF16)
	}
	return p.normalize(p.Preferred)
}

// run builds a payload with the requested encoding, retrying once
// with the fallback encoding when Latin-1 turns out to be
// insufficient. All text fields of a frame share one encoding byte,
// so the whole payload is rebuilt.
func (p EncodingPolicy) run(requested types.Encoding, build func(types.Encoding) ([]byte, error)) ([]byte, error) {
	enc := p.normalize(requested)
	out, err := build(enc)
	if err != nil {
		var terr *types.TextError
		if errors.As(err, &terr) && enc == types.Latin1 {
			return build(p.fallback())
		}
		return nil, err
	}
	return out, nil
}

func payloadError(h types.FrameHeader, reason string) error {
	return &types.FrameError{ID: h.FrameID, Reason: reason}
}

func wrongKind(h types.FrameHeader, f types.Frame) error {
	return &types.FrameError{
		ID:     h.FrameID,
		Reason: fmt.Sprintf("payload type %T does not match the registered shape", f),
	}
}

// readEncoding pulls the leading encoding byte off a payload,
// degrading to Latin-1 with a warning for undefined values.
func readEncoding(h types.FrameHeader, data []byte) (types.Encoding, []byte, []types.Warning, error) {
	if len(data) == 0 {
		return 0, nil, nil, payloadError(h, "empty payload, missing encoding byte")
	}
	enc := types.Encoding(data[0])
	if !enc.Valid() {
		warn := types.Warning{
			Stage:   "frame",
			Message: fmt.Sprintf("frame %s: undefined encoding byte 0x%02X, reading as ISO-8859-1", h.FrameID, data[0]),
			Err:     &types.TextError{Encoding: enc, Reason: "undefined encoding byte"},
		}
		return types.Latin1, data[1:], []types.Warning{warn}, nil
	}
	return enc, data[1:], nil, nil
}

func decodeText(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	enc, rest, warns, err := readEncoding(h, data)
	if err != nil {
		return nil, nil, err
	}
	strs, w := text.Decode(enc, rest)
	return types.TextFrame{FrameHeader: h, Encoding: enc, Text: strs}, append(warns, w...), nil
}

func encodeText(f types.Frame, p EncodingPolicy) ([]byte, error) {
	tf, ok := f.(types.TextFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	return p.run(tf.Encoding, func(enc types.Encoding) ([]byte, error) {
		body, err := text.Encode(enc, tf.Text)
		if err != nil {
			return nil, err
		}
		return append([]byte{byte(enc)}, body...), nil
	})
}

func decodeURL(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	var warns []types.Warning
	// iTunes prepends a stray encoding byte to some URL frames
	// (notably WFED); skip a leading zero when content follows.
	if len(data) > 1 && data[0] == 0x00 {
		data = data[1:]
		warns = append(warns, types.Warning{
			Stage:   "frame",
			Message: fmt.Sprintf("frame %s: skipped stray leading zero byte in URL frame", h.FrameID),
		})
	}
	segment, _, _ := text.CutTerminator(types.Latin1, data)
	url, w := text.DecodeString(types.Latin1, segment)
	return types.URLFrame{FrameHeader: h, URL: url}, append(warns, w...), nil
}

func encodeURL(f types.Frame, _ EncodingPolicy) ([]byte, error) {
	uf, ok := f.(types.URLFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	out, err := text.EncodeString(types.Latin1, uf.URL)
	if err != nil {
		// URLs are Latin-1 per the standard, but the writer must always
		// produce output; retain the raw UTF-8 bytes.
		return []byte(uf.URL), nil
	}
	return out, nil
}

func decodeUserText(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	enc, rest, warns, err := readEncoding(h, data)
	if err != nil {
		return nil, nil, err
	}
	descSeg, valRest, _ := text.CutTerminator(enc, rest)
	desc, w1 := text.DecodeString(enc, descSeg)
	valSeg, _, _ := text.CutTerminator(enc, valRest)
	val, w2 := text.DecodeString(enc, valSeg)
	warns = append(warns, w1...)
	warns = append(warns, w2...)
	return types.UserTextFrame{FrameHeader: h, Encoding: enc, Description: desc, Value: val}, warns, nil
}

func encodeUserText(f types.Frame, p EncodingPolicy) ([]byte, error) {
	uf, ok := f.(types.UserTextFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	return p.run(uf.Encoding, func(enc types.Encoding) ([]byte, error) {
		desc, err := text.EncodeString(enc, uf.Description)
		if err != nil {
			return nil, err
		}
		val, err := text.EncodeString(enc, uf.Value)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteByte(byte(enc))
		buf.Write(desc)
		buf.Write(text.Terminator(enc))
		buf.Write(val)
		return buf.Bytes(), nil
	})
}

func decodeUserURL(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	enc, rest, warns, err := readEncoding(h, data)
	if err != nil {
		return nil, nil, err
	}
	descSeg, urlRest, _ := text.CutTerminator(enc, rest)
	desc, w1 := text.DecodeString(enc, descSeg)
	urlSeg, _, _ := text.CutTerminator(types.Latin1, urlRest)
	url, w2 := text.DecodeString(types.Latin1, urlSeg)
	warns = append(warns, w1...)
	warns = append(warns, w2...)
	return types.UserURLFrame{FrameHeader: h, Encoding: enc, Description: desc, URL: url}, warns, nil
}

func encodeUserURL(f types.Frame, p EncodingPolicy) ([]byte, error) {
	uf, ok := f.(types.UserURLFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	return p.run(uf.Encoding, func(enc types.Encoding) ([]byte, error) {
		desc, err := text.EncodeString(enc, uf.Description)
		if err != nil {
			return nil, err
		}
		url, err := text.EncodeString(types.Latin1, uf.URL)
		if err != nil {
			url = []byte(uf.URL)
		}
		var buf bytes.Buffer
		buf.WriteByte(byte(enc))
		buf.Write(desc)
		buf.Write(text.Terminator(enc))
		buf.Write(url)
		return buf.Bytes(), nil
	})
}

// languageField normalizes a language code to exactly three Latin-1
// bytes; "XXX" stands in for unknown languages per the standard.
func languageField(lang string) []byte {
	if len(lang) != 3 {
		if lang == "" {
			return []byte("XXX")
		}
		lang = (lang + "   ")[:3]
	}
	return []byte(strings.ToLower(lang))
}

func decodeLanguageText(h types.FrameHeader, data []byte) (enc types.Encoding, lang, desc, body string, warns []types.Warning, err error) {
	enc, rest, warns, err := readEncoding(h, data)
	if err != nil {
		return 0, "", "", "", nil, err
	}
	if len(rest) < 3 {
		return 0, "", "", "", nil, payloadError(h, "payload too short for language code")
	}
	lang = string(rest[:3])
	rest = rest[3:]
	descSeg, bodyRest, found := text.CutTerminator(enc, rest)
	if !found {
		// No separator: the whole remainder is the text and the
		// description is empty.
		body, w := text.DecodeString(enc, rest)
		return enc, lang, "", body, append(warns, w...), nil
	}
	desc, w1 := text.DecodeString(enc, descSeg)
	bodySeg, _, _ := text.CutTerminator(enc, bodyRest)
	body, w2 := text.DecodeString(enc, bodySeg)
	warns = append(warns, w1...)
	warns = append(warns, w2...)
	return enc, lang, desc, body, warns, nil
}

func encodeLanguageText(p EncodingPolicy, requested types.Encoding, lang, desc, body string) ([]byte, error) {
	return p.run(requested, func(enc types.Encoding) ([]byte, error) {
		descB, err := text.EncodeString(enc, desc)
		if err != nil {
			return nil, err
		}
		bodyB, err := text.EncodeString(enc, body)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteByte(byte(enc))
		buf.Write(languageField(lang))
		buf.Write(descB)
		buf.Write(text.Terminator(enc))
		buf.Write(bodyB)
		return buf.Bytes(), nil
	})
}

func decodeComment(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	enc, lang, desc, body, warns, err := decodeLanguageText(h, data)
	if err != nil {
		return nil, nil, err
	}
	return types.CommentFrame{FrameHeader: h, Encoding: enc, Language: lang, Description: desc, Text: body}, warns, nil
}

func encodeComment(f types.Frame, p EncodingPolicy) ([]byte, error) {
	cf, ok := f.(types.CommentFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	return encodeLanguageText(p, cf.Encoding, cf.Language, cf.Description, cf.Text)
}

func decodeLyrics(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	enc, lang, desc, body, warns, err := decodeLanguageText(h, data)
	if err != nil {
		return nil, nil, err
	}
	return types.LyricsFrame{FrameHeader: h, Encoding: enc, Language: lang, Description: desc, Text: body}, warns, nil
}

func encodeLyrics(f types.Frame, p EncodingPolicy) ([]byte, error) {
	lf, ok := f.(types.LyricsFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	return encodeLanguageText(p, lf.Encoding, lf.Language, lf.Description, lf.Text)
}

func decodeTermsOfUse(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	enc, rest, warns, err := readEncoding(h, data)
	if err != nil {
		return nil, nil, err
	}
	if len(rest) < 3 {
		return nil, nil, payloadError(h, "payload too short for language code")
	}
	lang := string(rest[:3])
	bodySeg, _, _ := text.CutTerminator(enc, rest[3:])
	body, w := text.DecodeString(enc, bodySeg)
	return types.TermsOfUseFrame{FrameHeader: h, Encoding: enc, Language: lang, Text: body}, append(warns, w...), nil
}

func encodeTermsOfUse(f types.Frame, p EncodingPolicy) ([]byte, error) {
	uf, ok := f.(types.TermsOfUseFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	return p.run(uf.Encoding, func(enc types.Encoding) ([]byte, error) {
		body, err := text.EncodeString(enc, uf.Text)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteByte(byte(enc))
		buf.Write(languageField(uf.Language))
		buf.Write(body)
		return buf.Bytes(), nil
	})
}

func decodePicture(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	enc, rest, warns, err := readEncoding(h, data)
	if err != nil {
		return nil, nil, err
	}
	mimeSeg, rest, found := text.CutTerminator(types.Latin1, rest)
	if !found || len(rest) < 1 {
		return nil, nil, payloadError(h, "truncated picture header")
	}
	mime, w1 := text.DecodeString(types.Latin1, mimeSeg)
	ptype := types.PictureType(rest[0])
	descSeg, imgData, found := text.CutTerminator(enc, rest[1:])
	if !found {
		return nil, nil, payloadError(h, "unterminated picture description")
	}
	desc, w2 := text.DecodeString(enc, descSeg)
	warns = append(warns, w1...)
	warns = append(warns, w2...)
	return types.PictureFrame{
		FrameHeader: h,
		Encoding:    enc,
		MIMEType:    mime,
		PictureType: ptype,
		Description: desc,
		Data:        bytes.Clone(imgData),
	}, warns, nil
}

func encodePicture(f types.Frame, p EncodingPolicy) ([]byte, error) {
	pf, ok := f.(types.PictureFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	return p.run(pf.Encoding, func(enc types.Encoding) ([]byte, error) {
		desc, err := text.EncodeString(enc, pf.Description)
		if err != nil {
			return nil, err
		}
		mime, err := text.EncodeString(types.Latin1, pf.MIMEType)
		if err != nil {
			mime = []byte(pf.MIMEType)
		}
		var buf bytes.Buffer
		buf.WriteByte(byte(enc))
		buf.Write(mime)
		buf.WriteByte(0x00)
		buf.WriteByte(byte(pf.PictureType))
		buf.Write(desc)
		buf.Write(text.Terminator(enc))
		buf.Write(pf.Data)
		return buf.Bytes(), nil
	})
}

// imageFormat maps between the 3-character image format of ID3v2.2
// PIC frames and MIME types.
func mimeFromFormat(format string) string {
	switch strings.ToUpper(format) {
	case "PNG":
		return "image/png"
	case "JPG":
		return "image/jpeg"
	default:
		return "image/" + strings.ToLower(strings.TrimSpace(format))
	}
}

func formatFromMIME(mime string) string {
	switch strings.ToLower(mime) {
	case "image/png":
		return "PNG"
	case "image/jpeg", "image/jpg":
		return "JPG"
	default:
		ext := strings.TrimPrefix(strings.ToLower(mime), "image/")
		ext = strings.ToUpper(ext)
		if len(ext) >= 3 {
			return ext[:3]
		}
		return (ext + "   ")[:3]
	}
}

func decodePicture22(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	enc, rest, warns, err := readEncoding(h, data)
	if err != nil {
		return nil, nil, err
	}
	if len(rest) < 4 {
		return nil, nil, payloadError(h, "truncated picture header")
	}
	format := string(rest[:3])
	ptype := types.PictureType(rest[3])
	descSeg, imgData, found := text.CutTerminator(enc, rest[4:])
	if !found {
		return nil, nil, payloadError(h, "unterminated picture description")
	}
	desc, w := text.DecodeString(enc, descSeg)
	warns = append(warns, w...)
	return types.PictureFrame{
		FrameHeader: h,
		Encoding:    enc,
		MIMEType:    mimeFromFormat(format),
		PictureType: ptype,
		Description: desc,
		Data:        bytes.Clone(imgData),
	}, warns, nil
}

func encodePicture22(f types.Frame, p EncodingPolicy) ([]byte, error) {
	pf, ok := f.(types.PictureFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	return p.run(pf.Encoding, func(enc types.Encoding) ([]byte, error) {
		desc, err := text.EncodeString(enc, pf.Description)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteByte(byte(enc))
		buf.WriteString(formatFromMIME(pf.MIMEType))
		buf.WriteByte(byte(pf.PictureType))
		buf.Write(desc)
		buf.Write(text.Terminator(enc))
		buf.Write(pf.Data)
		return buf.Bytes(), nil
	})
}

func decodeObject(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	enc, rest, warns, err := readEncoding(h, data)
	if err != nil {
		return nil, nil, err
	}
	mimeSeg, rest, found := text.CutTerminator(types.Latin1, rest)
	if !found {
		return nil, nil, payloadError(h, "unterminated MIME type")
	}
	mime, w1 := text.DecodeString(types.Latin1, mimeSeg)
	fileSeg, rest, found := text.CutTerminator(enc, rest)
	if !found {
		return nil, nil, payloadError(h, "unterminated filename")
	}
	filename, w2 := text.DecodeString(enc, fileSeg)
	descSeg, objData, found := text.CutTerminator(enc, rest)
	if !found {
		return nil, nil, payloadError(h, "unterminated description")
	}
	desc, w3 := text.DecodeString(enc, descSeg)
	warns = append(warns, w1...)
	warns = append(warns, w2...)
	warns = append(warns, w3...)
	return types.ObjectFrame{
		FrameHeader: h,
		Encoding:    enc,
		MIMEType:    mime,
		Filename:    filename,
		Description: desc,
		Data:        bytes.Clone(objData),
	}, warns, nil
}

func encodeObject(f types.Frame, p EncodingPolicy) ([]byte, error) {
	of, ok := f.(types.ObjectFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	return p.run(of.Encoding, func(enc types.Encoding) ([]byte, error) {
		filename, err := text.EncodeString(enc, of.Filename)
		if err != nil {
			return nil, err
		}
		desc, err := text.EncodeString(enc, of.Description)
		if err != nil {
			return nil, err
		}
		mime, err := text.EncodeString(types.Latin1, of.MIMEType)
		if err != nil {
			mime = []byte(of.MIMEType)
		}
		var buf bytes.Buffer
		buf.WriteByte(byte(enc))
		buf.Write(mime)
		buf.WriteByte(0x00)
		buf.Write(filename)
		buf.Write(text.Terminator(enc))
		buf.Write(desc)
		buf.Write(text.Terminator(enc))
		buf.Write(of.Data)
		return buf.Bytes(), nil
	})
}

func decodeUniqueFileID(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	ownerSeg, ident, found := text.CutTerminator(types.Latin1, data)
	if !found {
		return nil, nil, payloadError(h, "unterminated owner identifier")
	}
	owner, w := text.DecodeString(types.Latin1, ownerSeg)
	return types.UniqueFileIDFrame{FrameHeader: h, Owner: owner, Identifier: bytes.Clone(ident)}, w, nil
}

func encodeUniqueFileID(f types.Frame, _ EncodingPolicy) ([]byte, error) {
	uf, ok := f.(types.UniqueFileIDFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	owner, err := text.EncodeString(types.Latin1, uf.Owner)
	if err != nil {
		owner = []byte(uf.Owner)
	}
	var buf bytes.Buffer
	buf.Write(owner)
	buf.WriteByte(0x00)
	buf.Write(uf.Identifier)
	return buf.Bytes(), nil
}

func decodePrivate(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	ownerSeg, rest, found := text.CutTerminator(types.Latin1, data)
	if !found {
		return nil, nil, payloadError(h, "unterminated owner identifier")
	}
	owner, w := text.DecodeString(types.Latin1, ownerSeg)
	return types.PrivateFrame{FrameHeader: h, Owner: owner, Data: bytes.Clone(rest)}, w, nil
}

func encodePrivate(f types.Frame, _ EncodingPolicy) ([]byte, error) {
	pf, ok := f.(types.PrivateFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	owner, err := text.EncodeString(types.Latin1, pf.Owner)
	if err != nil {
		owner = []byte(pf.Owner)
	}
	var buf bytes.Buffer
	buf.Write(owner)
	buf.WriteByte(0x00)
	buf.Write(pf.Data)
	return buf.Bytes(), nil
}

func be64(b []byte) uint64 {
	var n uint64
	for _, c := range b {
		n = n<<8 | uint64(c)
	}
	return n
}

func be64Bytes(n uint64, minWidth int) []byte {
	width := minWidth
	for v := n >> (8 * uint(minWidth)); v > 0; v >>= 8 {
		width++
	}
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = byte(n)
		n >>= 8
	}
	return out
}

func decodePlayCount(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	var warns []types.Warning
	if len(data) < 4 {
		warns = append(warns, types.Warning{
			Stage:   "frame",
			Message: fmt.Sprintf("frame %s: play counter shorter than 4 bytes", h.FrameID),
		})
	}
	return types.PlayCountFrame{FrameHeader: h, Count: be64(data)}, warns, nil
}

func encodePlayCount(f types.Frame, _ EncodingPolicy) ([]byte, error) {
	pf, ok := f.(types.PlayCountFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	return be64Bytes(pf.Count, 4), nil
}

func decodePopularimeter(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	emailSeg, rest, found := text.CutTerminator(types.Latin1, data)
	if !found || len(rest) < 1 {
		return nil, nil, payloadError(h, "truncated popularimeter")
	}
	email, w := text.DecodeString(types.Latin1, emailSeg)
	return types.PopularimeterFrame{
		FrameHeader: h,
		Email:       email,
		Rating:      rest[0],
		Count:       be64(rest[1:]),
	}, w, nil
}

func encodePopularimeter(f types.Frame, _ EncodingPolicy) ([]byte, error) {
	pf, ok := f.(types.PopularimeterFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	email, err := text.EncodeString(types.Latin1, pf.Email)
	if err != nil {
		email = []byte(pf.Email)
	}
	var buf bytes.Buffer
	buf.Write(email)
	buf.WriteByte(0x00)
	buf.WriteByte(pf.Rating)
	buf.Write(be64Bytes(pf.Count, 4))
	return buf.Bytes(), nil
}

func decodeBinary(h types.FrameHeader, data []byte) (types.Frame, []types.Warning, error) {
	return types.BinaryFrame{FrameHeader: h, Data: bytes.Clone(data)}, nil, nil
}

func encodeBinary(f types.Frame, _ EncodingPolicy) ([]byte, error) {
	bf, ok := f.(types.BinaryFrame)
	if !ok {
		return nil, wrongKind(f.Header(), f)
	}
	return bf.Data, nil
}
