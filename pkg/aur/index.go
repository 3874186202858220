package aur

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"strings"
)

// ReadLocalIndex reads a previously persisted name index: one key=value
// line per package, value is the package name. Returns nil when the file
// is absent or unreadable.
func (c *Client) ReadLocalIndex() map[string]string {
	if c.indexFile == "" {
		return nil
	}
	f, err := os.Open(c.indexFile)
	if err != nil {
		c.logger.Warn("local package index not found", "path", c.indexFile)
		return nil
	}
	defer f.Close()

	index := make(map[string]string)
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := s.Text()
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		index[key] = strings.TrimSpace(val)
	}
	c.logger.Info("local package index read", "path", c.indexFile, "packages", len(index))
	return index
}

// DownloadNames fetches the remote bulk package listing and returns the
// deduplicated set of names. Comment lines starting with # are discarded.
// Connectivity failures yield an empty result.
func (c *Client) DownloadNames(ctx context.Context) []string {
	c.logger.Info("downloading package index", "url", c.indexURL)

	data, err := c.http.GetBytes(ctx, c.indexURL)
	if err != nil {
		c.logger.Warn("could not download package index", "err", err)
		return nil
	}
	data, err = maybeGunzip(data)
	if err != nil {
		c.logger.Warn("could not decompress package index", "err", err)
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		name := strings.TrimSpace(s.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Index returns the known package names for search pre-indexing: the
// local persisted index when present, otherwise a fresh remote download.
// On failure it returns an empty set rather than an error.
func (c *Client) Index(ctx context.Context) []string {
	if index := c.ReadLocalIndex(); len(index) > 0 {
		names := make([]string, 0, len(index))
		for _, name := range index {
			names = append(names, name)
		}
		return names
	}
	return c.DownloadNames(ctx)
}

// maybeGunzip transparently decompresses gzip payloads, passing plain
// text through untouched. The bulk listing is served compressed.
func maybeGunzip(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
