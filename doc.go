// Package id3tag is a codec for the ID3 tag family: ID3v1, ID3v1.1,
// and ID3v2 in sub-versions 2.2, 2.3 and 2.4.
//
// id3tag reads an existing tag from a byte buffer regardless of which
// sub-version or vendor quirk produced it, exposes a uniform in-memory
// frame model, lets that model be mutated, and re-serializes it,
// optionally into a different sub-version.
//
// # Quick Start
//
// Parsing a tag and reading its title:
//
//	tag, err := id3tag.Parse(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, f := range tag.Frames("TIT2") {
//		if tf, ok := f.(id3tag.TextFrame); ok {
//			fmt.Println(tf.Text[0])
//		}
//	}
//
// Writing it back as ID3v2.4:
//
//	out, warns, err := tag.Write(id3tag.ID3v24)
//
// # Philosophy
//
// id3tag embodies three core principles:
//
// 1. Graceful Degradation: corrupted frames return partial data plus
// warnings, not errors. A single malformed frame never aborts parsing
// of the remaining tag; only a missing magic is fatal.
//
// 2. Conformant Output: input tolerance is loose, but the writer
// always recomputes sizes fresh and emits byte-exact output per the
// target sub-version's specification.
//
// 3. Zero Surprises: duplicate frames are legal, order is preserved,
// and unknown frames round-trip untouched.
//
// # Frame Model
//
// A Tag is an ordered, duplicate-tolerant sequence of frames. Each
// frame's payload shape is determined by its identifier: T-prefixed
// identifiers decode as TextFrame, W-prefixed ones as URLFrame,
// structured frames (comments, pictures, objects) as their own types,
// and everything else as BinaryFrame. The registry is open; use
// RegisterFrame to add shapes for nonstandard identifiers.
//
// # Error Handling
//
// id3tag distinguishes between fatal errors and warnings:
//
//   - StructuralError prevents parsing entirely (missing magic,
//     unreadable header)
//   - Everything else (malformed frames, size mismatches, compression
//     failures, truncation) is recovered and reported
//
// Always check Tag.Warnings for issues encountered during parsing:
//
//	if len(tag.Warnings) > 0 {
//		for _, w := range tag.Warnings {
//			log.Printf("warning: %s", w)
//		}
//	}
//
// # Version Conversion
//
// Write accepts any target sub-version. Identifiers are mapped between
// the 3-character ID3v2.2 namespace and the 4-character 2.3/2.4 one,
// frames renamed between 2.3 and 2.4 (recording time, original
// release, involved people) are reconciled, and frames with no
// equivalent in the target are dropped with a warning or preserved
// opaquely via WithPreserveUnknown.
//
// # Concurrency
//
// The codec is a pure transformation over in-memory buffers. Distinct
// Tag values are independent; a single Tag is not safe for concurrent
// mutation. ParseMany parses independent buffers in parallel.
package id3tag
