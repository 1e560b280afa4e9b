package id3tag

import (
	"github.com/simonhull/id3tag/internal/convert"
	"github.com/simonhull/id3tag/internal/types"
	v1codec "github.com/simonhull/id3tag/internal/v1"
	v2codec "github.com/simonhull/id3tag/internal/v2"
)

// Write serializes the tag for the given target version.
//
// Frames are converted from their source sub-version's identifier
// namespace to the target's first; frames with no target equivalent
// are dropped (or preserved, see WithPreserveUnknown) and reported in
// the returned warnings. Conversion and serialization never fail for
// individual frames; the only error is a tag too large for the
// synchsafe size field.
//
// ID3v1 and ID3v1.1 targets produce the fixed 128-byte trailer. The
// ID3v1.1 layout is chosen automatically when a track number is
// present.
//
// Example:
//
//	out, warns, err := tag.Write(id3tag.ID3v24)
//	if err != nil {
//	    return err
//	}
//	for _, w := range warns {
//	    log.Println(w)
//	}
func (t *Tag) Write(target Version, opts ...WriteOption) ([]byte, []Warning, error) {
	o := defaultWriteOptions()
	for _, opt := range opts {
		opt(o)
	}

	switch target {
	case ID3v1, ID3v11:
		return t.writeV1(o)
	case ID3v22, ID3v23, ID3v24:
		return t.writeV2(target, o)
	default:
		return nil, nil, &types.StructuralError{
			Reason: "cannot write version " + target.String(),
		}
	}
}

func (t *Tag) writeV1(o *writeOptions) ([]byte, []Warning, error) {
	frames := t.frames
	var warns []Warning

	// The v1 field mapping works on 4-character identifiers.
	if t.sourceVersion() == ID3v22 {
		converted, report := convert.Convert(frames, ID3v22, ID3v23, convert.Policy{})
		frames = converted
		warns = append(warns, report.Warnings...)
	}

	out := v1codec.Encode(frames)
	return out[:], warns, nil
}

func (t *Tag) writeV2(target Version, o *writeOptions) ([]byte, []Warning, error) {
	frames, report := convert.Convert(t.frames, t.sourceVersion(), target, convert.Policy{
		PreserveUnknown: o.preserveUnknown,
	})
	warns := report.Warnings

	enc := v2codec.EncodeOptions{
		Unsynchronise: o.unsynchronise,
		Footer:        o.footer,
		Preferred:     o.preferred,
		Padding:       o.padding,
	}
	if !o.paddingSet && t.origSize > 0 {
		enc.Padding = t.stablePadding(target, frames, o)
	}

	out, ewarns, err := v2codec.Encode(target, frames, enc)
	warns = append(warns, ewarns...)
	if err != nil {
		return nil, warns, err
	}
	return out, warns, nil
}

// stablePadding sizes the padding so a rewritten tag does not shrink
// below its original on-disk footprint, as long as the gap stays
// within the padding maximum. A stable total size lets callers splice
// the new tag over the old one without moving the audio data behind
// it.
func (t *Tag) stablePadding(target Version, frames []Frame, o *writeOptions) int {
	probe := v2codec.EncodeOptions{
		Unsynchronise: o.unsynchronise,
		Footer:        o.footer,
		Preferred:     o.preferred,
	}
	bare, _, err := v2codec.Encode(target, frames, probe)
	if err != nil {
		return o.padding
	}
	if probe.Footer && target == ID3v24 {
		// A footer excludes padding regardless of size.
		return 0
	}
	gap := t.origSize - len(bare)
	if gap > 0 && gap <= o.paddingMax {
		return gap
	}
	return o.padding
}
