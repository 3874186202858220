package srcinfo

// Boundary keys: a line with one of these keys opens a new sub-package
// scope when the current scope already holds entries.
const (
	KeyPkgname = "pkgname"
	KeyPkgbase = "pkgbase"
)

// listFields are the fields that semantically represent collections even
// when the document carries exactly one value for them. The set matches
// what makepkg emits as array fields in .SRCINFO documents.
var listFields = map[string]bool{
	"validpgpkeys":        true,
	"checkdepends":        true,
	"checkdepends_x86_64": true,
	"checkdepends_i686":   true,
	"depends":             true,
	"depends_x86_64":      true,
	"depends_i686":        true,
	"optdepends":          true,
	"optdepends_x86_64":   true,
	"optdepends_i686":     true,
	"sha256sums":          true,
	"sha256sums_x86_64":   true,
	"sha512sums":          true,
	"sha512sums_x86_64":   true,
	"source":              true,
	"source_x86_64":       true,
	"source_i686":         true,
	"makedepends":         true,
	"makedepends_x86_64":  true,
	"makedepends_i686":    true,
	"provides":            true,
	"conflicts":           true,
}

// IsListField reports whether key is always treated as a collection.
func IsListField(key string) bool { return listFields[key] }
