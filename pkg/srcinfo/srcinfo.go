// Package srcinfo parses .SRCINFO package build descriptions.
//
// A .SRCINFO document describes one package base that may produce several
// installable sub-packages. Fields declared before the first pkgname
// boundary are shared by every sub-package; fields after a pkgname
// boundary belong to that sub-package only. [Parse] folds the document
// into a flat [Record] for one target sub-package, merging shared and
// package-specific scopes and preserving the scalar-vs-collection shape
// of every field.
package srcinfo

import "strings"

// Parse folds document text into a flat Record for the target sub-package.
//
// When target is empty, names just one sub-package, or doesn't occur in
// the document at all, every scope is folded: disambiguation only matters
// when multiple sub-package names are actually present.
//
// fields optionally restricts which non-boundary keys are retained; pass
// nil to keep everything. An empty document yields an empty Record.
func Parse(text, target string, fields map[string]bool) Record {
	blocks := segment(text, fields)

	names := make(map[string]bool)
	for _, b := range blocks {
		if b.Has(KeyPkgname) {
			names[b.Str(KeyPkgname)] = true
		}
	}
	if len(names) == 1 || !names[target] {
		target = ""
	}

	return mergeBlocks(blocks, target, fields)
}

// segment splits the document's pairs into per-scope records. A boundary
// key opens a new scope only when the current scope already holds at
// least one entry, so the document's first boundary seeds the initial
// scope instead of splitting.
func segment(text string, fields map[string]bool) []Record {
	var blocks []Record
	block := Record{}

	s := NewScanner(strings.NewReader(text))
	for s.Scan() {
		p := s.Pair()
		switch {
		case len(block) > 0 && (p.Key == KeyPkgname || p.Key == KeyPkgbase):
			blocks = append(blocks, block)
			block = Record{p.Key: String(p.Value)}
		case fields == nil || fields[p.Key]:
			block.add(p.Key, p.Value)
		}
	}
	if len(block) > 0 {
		blocks = append(blocks, block)
	}
	return blocks
}

// mergeBlocks reduces scope records to one flat record. Scopes carrying no
// pkgname are shared and always fold in; with a target set, scopes naming
// a different sub-package are skipped. A field seen in more than one scope
// is promoted to a collection.
func mergeBlocks(blocks []Record, target string, fields map[string]bool) Record {
	out := Record{}
	for _, block := range blocks {
		if target != "" && block.Has(KeyPkgname) && block.Str(KeyPkgname) != target {
			continue
		}
		for key, val := range block {
			if fields != nil && !fields[key] {
				continue
			}
			if cur, ok := out[key]; ok {
				out[key] = cur.Merge(val)
			} else {
				out[key] = val
			}
		}
	}
	return out
}
