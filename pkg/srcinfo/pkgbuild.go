package srcinfo

import (
	"regexp"
	"strings"
)

// pkgbuildLineRE matches plain variable assignments in a PKGBUILD:
// no whitespace around the equals sign, value up to end of line.
var pkgbuildLineRE = regexp.MustCompile(`(?m)^(\w+)=(.+)$`)

// pkgbuildCleaner drops the quote and shell-array characters wrapping
// PKGBUILD values. Expressions inside values are not interpreted.
var pkgbuildCleaner = strings.NewReplacer(`"`, "", `'`, "", "(", "", ")", "")

// ParsePKGBUILD extracts top-level variable assignments from raw PKGBUILD
// text into a flat map. This is the lighter-weight companion to [Parse]
// for simple key=value configuration blocks: every field stays a scalar
// and shell quoting/array syntax is stripped from values.
func ParsePKGBUILD(text string) map[string]string {
	out := make(map[string]string)
	for _, m := range pkgbuildLineRE.FindAllStringSubmatch(text, -1) {
		out[m[1]] = pkgbuildCleaner.Replace(m[2])
	}
	return out
}
