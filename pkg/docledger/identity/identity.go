// Package identity parses controlled-document filenames into their
// structured parts: document ID, version-language tag, and title.
package identity

import (
	"regexp"
	"strconv"
	"strings"
)

// Filename grammar: <ID>-<VERSION>_<TITLE>, e.g.
// "AB-CD-001-V1.0-DE_Some_Title.pdf".
var (
	structuredPattern = regexp.MustCompile(`^([A-Z]+-[A-Z]+-\d{3})-(V\d+\.\d+-[A-Z]+)_(.+)$`)
	idPattern         = regexp.MustCompile(`^[A-Z]+-[A-Z]+-\d{3}`)
	prefixPattern     = regexp.MustCompile(`^[A-Z]+-[A-Z]+`)
	fallbackSplit     = regexp.MustCompile(`\s*-\s+|\s*_`)
	versionPattern    = regexp.MustCompile(`V(\d+)`)
)

// Quality indicates how an Identity was obtained. Fallback parses lose the
// reliable version/title separation of the structured grammar, so callers
// that depend on those fields should check this.
type Quality int

const (
	// QualityStructured means the primary grammar matched.
	QualityStructured Quality = iota
	// QualityFallback means the looser token split was used.
	QualityFallback
)

// Identity is the parsed form of a document filename.
type Identity struct {
	// ID is the document ID, e.g. "AB-CD-001".
	ID string
	// VersionLang is the version-language tag, e.g. "V1.0-DE".
	VersionLang string
	// Title is the free-text title part.
	Title string
	// Quality records which grammar produced this identity.
	Quality Quality
}

// Parse splits a filename into its identity parts. The extension is
// stripped first. If the structured grammar does not match, Parse falls
// back to splitting on " - " or "_"; missing tokens become empty strings.
// Parse never fails outright.
func Parse(filename string) Identity {
	name := stripExt(filename)

	if m := structuredPattern.FindStringSubmatch(name); m != nil {
		return Identity{
			ID:          m[1],
			VersionLang: m[2],
			Title:       m[3],
			Quality:     QualityStructured,
		}
	}

	parts := fallbackSplit.Split(name, -1)
	id := Identity{Quality: QualityFallback}
	if len(parts) > 0 {
		id.ID = parts[0]
	}
	if len(parts) > 1 {
		id.VersionLang = parts[1]
	}
	if len(parts) > 2 {
		id.Title = parts[2]
	}
	return id
}

// ExtractID returns the leading document ID of a filename or cell value,
// e.g. "AB-CD-001" from "AB-CD-001-V2.0-EN_Title.docx". The second return
// is false when the name does not start with a document ID.
func ExtractID(name string) (string, bool) {
	id := idPattern.FindString(stripExt(strings.TrimSpace(name)))
	return id, id != ""
}

// ExtractPrefix returns the two-letter-group prefix of a name, e.g.
// "AB-CD" from "AB-CD-001-...". Used by the bootstrap search, which groups
// documents by prefix rather than full ID.
func ExtractPrefix(name string) (string, bool) {
	p := prefixPattern.FindString(stripExt(strings.TrimSpace(name)))
	return p, p != ""
}

// SameDocument reports whether two names carry the same document identity.
// This is the sole identity predicate used throughout the ledger: both
// names must yield a document ID and the IDs must be equal. It never
// compares full strings or raw prefixes.
func SameDocument(a, b string) bool {
	idA, okA := ExtractID(a)
	idB, okB := ExtractID(b)
	return okA && okB && idA == idB
}

// NumericSuffix returns the 3-digit numeric suffix of a document ID as an
// integer, e.g. 10 for "AB-CD-010".
func NumericSuffix(id string) (int, bool) {
	if len(id) < 3 {
		return 0, false
	}
	n, err := strconv.Atoi(id[len(id)-3:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// VersionMajor returns the major version number of a version-language tag
// or filename, e.g. 2 for "V2.0-DE".
func VersionMajor(s string) (int, bool) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsBootstrap reports whether the filename carries a first-version tag
// (major version 1), which routes the update through the bootstrap path.
func IsBootstrap(filename string) bool {
	major, ok := VersionMajor(Parse(filename).VersionLang)
	if !ok {
		// Fallback parses may not isolate the version token; look at the
		// whole name the way column C is scanned.
		major, ok = VersionMajor(stripExt(filename))
	}
	return ok && major == 1
}

// extPattern matches a trailing file extension. Version tags contain dots
// ("V1.0"), so only a short alphanumeric tail counts as an extension.
var extPattern = regexp.MustCompile(`\.[A-Za-z0-9]{1,5}$`)

func stripExt(name string) string {
	if loc := extPattern.FindStringIndex(name); loc != nil {
		return name[:loc[0]]
	}
	return name
}
