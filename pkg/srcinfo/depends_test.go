package srcinfo

import (
	"reflect"
	"sort"
	"testing"
)

func TestRequiredDeps(t *testing.T) {
	rec := Record{
		"depends":            List("glibc", "zlib"),
		"depends_x86_64":     List("lib32-glibc"),
		"depends_i686":       List("ancient-lib"),
		"makedepends":        List("cmake", "zlib"),
		"checkdepends":       List("check"),
		"checkdepends_i686":  List("check32"),
		"optdepends":         List("cups: printing"),
		"pkgver":             String("1.0"),
	}

	got := RequiredDeps(rec, ArchX8664)
	sort.Strings(got)
	want := []string{"check", "cmake", "glibc", "lib32-glibc", "zlib"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RequiredDeps(x86_64) = %v, want %v", got, want)
	}

	got = RequiredDeps(rec, ArchI686)
	sort.Strings(got)
	want = []string{"ancient-lib", "check", "check32", "cmake", "glibc", "zlib"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RequiredDeps(i686) = %v, want %v", got, want)
	}
}

func TestRequiredDepsOtherArchOnly(t *testing.T) {
	rec := Record{"depends_i686": List("legacy")}

	if got := RequiredDeps(rec, ArchX8664); len(got) != 0 {
		t.Errorf("x86_64 extraction picked up i686 deps: %v", got)
	}
}

func TestRequiredDepsArchlessAppliesEverywhere(t *testing.T) {
	rec := Record{"depends": List("glibc")}

	for _, arch := range []Arch{ArchX8664, ArchI686} {
		if got := RequiredDeps(rec, arch); !reflect.DeepEqual(got, []string{"glibc"}) {
			t.Errorf("RequiredDeps(%s) = %v, want [glibc]", arch, got)
		}
	}
}

func TestRequiredDepsEmptyRecord(t *testing.T) {
	if got := RequiredDeps(Record{}, ArchX8664); len(got) != 0 {
		t.Errorf("empty record yielded %v", got)
	}
}

func TestDepName(t *testing.T) {
	tests := []struct {
		dep  string
		want string
	}{
		{"glibc", "glibc"},
		{"glibc>=2.38", "glibc"},
		{"python<3.13", "python<3.13"}, // bare < is not a split point
		{"pacman>5", "pacman>5"},
		{"foo=1.0", "foo"},
		{"bar<=2", "bar"},
	}
	for _, tt := range tests {
		if got := DepName(tt.dep); got != tt.want {
			t.Errorf("DepName(%q) = %q, want %q", tt.dep, got, tt.want)
		}
	}
}
