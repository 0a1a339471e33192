package identity

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		filename string
		id       string
		version  string
		title    string
		quality  Quality
	}{
		{"AB-CD-001-V1.0-DE_Some_Title.pdf", "AB-CD-001", "V1.0-DE", "Some_Title", QualityStructured},
		{"QM-HR-123-V12.4-EN_Handbook.docx", "QM-HR-123", "V12.4-EN", "Handbook", QualityStructured},
		{"AB-CD-001-V1.0-DE_Spec", "AB-CD-001", "V1.0-DE", "Spec", QualityStructured},
		{"AB-CD-001 - V1.0-DE - Title.pdf", "AB-CD-001", "V1.0-DE", "Title", QualityFallback},
		{"AB-CD-001_V1.0-DE_Title.pdf", "AB-CD-001", "V1.0-DE", "Title", QualityFallback},
		{"plainname.pdf", "plainname", "", "", QualityFallback},
		{"", "", "", "", QualityFallback},
	}

	for _, tt := range tests {
		got := Parse(tt.filename)
		if got.ID != tt.id || got.VersionLang != tt.version || got.Title != tt.title {
			t.Errorf("Parse(%q) = (%q, %q, %q), expected (%q, %q, %q)",
				tt.filename, got.ID, got.VersionLang, got.Title, tt.id, tt.version, tt.title)
		}
		if got.Quality != tt.quality {
			t.Errorf("Parse(%q) quality = %v, expected %v", tt.filename, got.Quality, tt.quality)
		}
	}
}

func TestExtractID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"AB-CD-001-V1.0-DE_Title.pdf", "AB-CD-001", true},
		{"AB-CD-001", "AB-CD-001", true},
		{"  AB-CD-001  ", "AB-CD-001", true},
		{"ab-cd-001-V1.0-DE_Title.pdf", "", false},
		{"AB-CD-01", "", false},
		{"random file.pdf", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		id, ok := ExtractID(tt.name)
		if id != tt.id || ok != tt.ok {
			t.Errorf("ExtractID(%q) = (%q, %v), expected (%q, %v)", tt.name, id, ok, tt.id, tt.ok)
		}
	}
}

func TestSameDocument(t *testing.T) {
	// Identity equality ignores version and title but is exact on the ID.
	if !SameDocument("AB-CD-001-V1.0-DE_Title.pdf", "AB-CD-001-V2.0-EN_Other.docx") {
		t.Error("expected same identity for matching IDs with different version/title")
	}
	if SameDocument("AB-CD-001-V1.0-DE_Title.pdf", "AB-CD-002-V1.0-DE_Title.pdf") {
		t.Error("expected different identity for differing numeric suffix")
	}
	if SameDocument("AB-CD-001-V1.0-DE_Title.pdf", "no-id-here.pdf") {
		t.Error("expected no identity for unparseable name")
	}
	if SameDocument("junk", "junk") {
		t.Error("two unparseable names must never compare equal")
	}
	// Symmetry.
	a, b := "AB-CD-001-V1.0-DE_A.pdf", "AB-CD-001-V3.1-EN_B.pdf"
	if SameDocument(a, b) != SameDocument(b, a) {
		t.Error("identity equality must be symmetric")
	}
}

func TestNumericSuffix(t *testing.T) {
	tests := []struct {
		id string
		n  int
		ok bool
	}{
		{"AB-CD-001", 1, true},
		{"AB-CD-010", 10, true},
		{"AB-CD-999", 999, true},
		{"AB-CD-XYZ", 0, false},
		{"AB", 0, false},
	}
	for _, tt := range tests {
		n, ok := NumericSuffix(tt.id)
		if n != tt.n || ok != tt.ok {
			t.Errorf("NumericSuffix(%q) = (%d, %v), expected (%d, %v)", tt.id, n, ok, tt.n, tt.ok)
		}
	}
}

func TestVersionMajor(t *testing.T) {
	tests := []struct {
		s  string
		n  int
		ok bool
	}{
		{"V1.0-DE", 1, true},
		{"V12.4-EN", 12, true},
		{"no version", 0, false},
	}
	for _, tt := range tests {
		n, ok := VersionMajor(tt.s)
		if n != tt.n || ok != tt.ok {
			t.Errorf("VersionMajor(%q) = (%d, %v), expected (%d, %v)", tt.s, n, ok, tt.n, tt.ok)
		}
	}
}

func TestIsBootstrap(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"AB-CD-001-V1.0-DE_Title.pdf", true},
		{"AB-CD-001-V1.3-DE_Title.pdf", true},
		{"AB-CD-001-V2.0-DE_Title.pdf", false},
		{"AB-CD-001-V10.0-DE_Title.pdf", false},
		{"no version at all.pdf", false},
	}
	for _, tt := range tests {
		if got := IsBootstrap(tt.filename); got != tt.want {
			t.Errorf("IsBootstrap(%q) = %v, expected %v", tt.filename, got, tt.want)
		}
	}
}
