package srcinfo

import "regexp"

// Arch selects which architecture-specific dependency fields apply.
type Arch string

// Supported target architectures.
const (
	ArchX8664 Arch = "x86_64"
	ArchI686  Arch = "i686"
)

// depFields are the field prefixes contributing to the build/run
// dependency set, in extraction order.
var depFields = [...]string{"makedepends", "depends", "checkdepends"}

// RequiredDeps returns the union of the record's dependency fields for the
// given architecture: makedepends, depends and checkdepends plus their
// _<arch> variants. Absent fields are skipped; a record with none of them
// yields an empty set. Duplicates are collapsed, order is not significant.
func RequiredDeps(rec Record, arch Arch) []string {
	seen := make(map[string]bool)
	var deps []string

	for _, field := range depFields {
		for _, key := range [...]string{field, field + "_" + string(arch)} {
			for _, dep := range rec.Strings(key) {
				if !seen[dep] {
					seen[dep] = true
					deps = append(deps, dep)
				}
			}
		}
	}
	return deps
}

// depSplitRE matches the version comparison operator inside a dependency
// identifier such as "glibc>=2.38" or "python=3.12".
var depSplitRE = regexp.MustCompile(`[<>]?=`)

// DepName strips the version constraint from a dependency identifier,
// returning the bare package name. Version ordering semantics are opaque
// at this layer.
func DepName(dep string) string {
	if loc := depSplitRE.FindStringIndex(dep); loc != nil {
		return dep[:loc[0]]
	}
	return dep
}
