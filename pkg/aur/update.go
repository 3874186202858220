package aur

import (
	"context"
	"fmt"

	"github.com/aurtools/aurinfo/pkg/srcinfo"
)

// UpdateData summarizes one package for update checking. Provided always
// contains the bare name plus name=version; Repository is the constant
// source tag for this origin.
type UpdateData struct {
	Conflicts    []string `json:"conflicts,omitempty"`
	Repository   string   `json:"repository"`
	Provided     []string `json:"provided"`
	Version      string   `json:"version,omitempty"`
	Dependencies []string `json:"dependencies"`
	Base         string   `json:"base"`
}

// UpdateData builds the update summary for name. When rec is nil the
// record is resolved first; if no record is available at all, a minimal
// summary is built from name and latestVersion alone, so update checking
// still works offline with degraded information.
func (c *Client) UpdateData(ctx context.Context, name, latestVersion string, rec srcinfo.Record) UpdateData {
	if rec == nil {
		rec = c.SrcInfo(ctx, name)
	}

	provided := []string{name}

	if len(rec) > 0 {
		version := rec.Str("pkgver")
		provided = append(provided, fmt.Sprintf("%s=%s", name, version))
		for _, p := range rec.Strings("provides") {
			provided = appendMissing(provided, p)
		}

		base := rec.Str("pkgbase")
		if base == "" {
			base = name
		}
		deps := c.ExtractRequiredDeps(rec)
		if deps == nil {
			deps = []string{}
		}
		return UpdateData{
			Conflicts:    rec.Strings("conflicts"),
			Repository:   "aur",
			Provided:     provided,
			Version:      version,
			Dependencies: deps,
			Base:         base,
		}
	}

	if latestVersion != "" {
		provided = append(provided, fmt.Sprintf("%s=%s", name, latestVersion))
	}
	return UpdateData{
		Repository:   "aur",
		Provided:     provided,
		Version:      latestVersion,
		Dependencies: []string{},
		Base:         name,
	}
}

func appendMissing(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}
