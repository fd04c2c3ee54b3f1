// Format dispatcher: decides whether an inbound file of unknown
// provenance is a binary snapshot or a legacy JSON export.
package backup

import "strings"

// Format identifies which reader should handle an inbound file.
type Format int

const (
	// FormatSnapshot routes to the snapshot Reader.
	FormatSnapshot Format = iota
	// FormatLegacyJSON routes to the legacy Codec.
	FormatLegacyJSON
)

// String returns the format name for logging.
func (f Format) String() string {
	if f == FormatSnapshot {
		return "snapshot"
	}
	return "legacy-json"
}

// archiveExt is the snapshot archive extension checked case-insensitively.
const archiveExt = ".zip"

// zipContentTypes are the content types recognized as the ZIP family.
var zipContentTypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
	"multipart/x-zip":              true,
}

// Source describes an inbound file handle. ContentType may be empty or
// wrong; ResolveDisplayName, when set, performs the potentially expensive
// metadata lookup for a display name and may return "".
type Source struct {
	Path               string
	ContentType        string
	ResolveDisplayName func() string
}

// DetectFormat routes a source using several independent signals, first
// match wins. Filename extension is the most reliable signal in practice
// (content-type metadata is frequently wrong or absent for files shared
// from other apps), so it is tried both first and last; anything that
// never looks like an archive is treated as a legacy JSON export.
func DetectFormat(src Source) Format {
	if hasArchiveExt(src.Path) {
		return FormatSnapshot
	}
	if zipContentTypes[strings.ToLower(strings.TrimSpace(src.ContentType))] {
		return FormatSnapshot
	}
	if src.ResolveDisplayName != nil {
		name := src.ResolveDisplayName()
		if name == "" {
			name = src.Path
		}
		if hasArchiveExt(name) {
			return FormatSnapshot
		}
	}
	return FormatLegacyJSON
}

// hasArchiveExt reports whether name ends in the archive extension,
// case-insensitively.
func hasArchiveExt(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), archiveExt)
}
