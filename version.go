package id3tag

import (
	"github.com/simonhull/id3tag/internal/types"
)

// LibraryVersion is the semantic version of the id3tag library.
const LibraryVersion = "0.1.0"

// Version identifies one ID3 sub-version.
type Version = types.Version

// The supported sub-versions.
const (
	VersionUnknown = types.VersionUnknown
	ID3v1          = types.ID3v1
	ID3v11         = types.ID3v11
	ID3v22         = types.ID3v22
	ID3v23         = types.ID3v23
	ID3v24         = types.ID3v24
)
