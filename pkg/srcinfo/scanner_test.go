package srcinfo

import (
	"strings"
	"testing"
)

func TestScanner(t *testing.T) {
	doc := "pkgbase = demo\n\tpkgver = 1.0.0\n\tdepends = glibc\n"

	s := NewScanner(strings.NewReader(doc))

	want := []Pair{
		{"pkgbase", "demo"},
		{"pkgver", "1.0.0"},
		{"depends", "glibc"},
	}
	var got []Pair
	for s.Scan() {
		got = append(got, s.Pair())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d pairs, want %d", len(got), len(want))
	}
	for i, p := range want {
		if got[i] != p {
			t.Errorf("pair %d = %+v, want %+v", i, got[i], p)
		}
	}
}

func TestScannerSkipsMalformedLines(t *testing.T) {
	// Deliberately malformed input: the scanner must skip, never fail.
	doc := strings.Join([]string{
		"# A comment line",
		"",
		"pkgbase = demo",
		"pkgname=nospace",     // missing spaces around =
		"just some prose",     // no = at all
		"= orphaned value",    // missing key
		"dangling =",          // missing value
		"\tpkgver  =  2.0.1 ", // extra whitespace is fine
		"bad-key = value",     // hyphen is not an identifier character
	}, "\n")

	s := NewScanner(strings.NewReader(doc))

	var got []Pair
	for s.Scan() {
		got = append(got, s.Pair())
	}

	want := []Pair{
		{"pkgbase", "demo"},
		{"pkgver", "2.0.1"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, p := range want {
		if got[i] != p {
			t.Errorf("pair %d = %+v, want %+v", i, got[i], p)
		}
	}
}

func TestScannerEmptyInput(t *testing.T) {
	s := NewScanner(strings.NewReader(""))
	if s.Scan() {
		t.Error("Scan on empty input should return false")
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err: %v", err)
	}
}
