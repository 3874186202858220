// Package aur resolves package metadata from the Arch User Repository.
//
// The central type is [Client]: it fetches a package base's .SRCINFO
// document, parses it into a per-sub-package record via [srcinfo.Parse],
// and caches results keyed by the queried name. When a queried name turns
// out to be a virtual alias of a different package base, the client falls
// back through the RPC info endpoint and retries once under the base name.
//
// Lookups treat "not found", "empty content" and "no connectivity" alike:
// the caller sees an absent result, never an error. The one exception is
// [Client.RequiredDeps], which reports [ErrPackageNotFound] when a name
// the caller declared mandatory cannot be resolved at all.
package aur

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aurtools/aurinfo/pkg/cache"
	"github.com/aurtools/aurinfo/pkg/httputil"
	"github.com/aurtools/aurinfo/pkg/srcinfo"
)

// DefaultBaseURL is the production AUR endpoint.
const DefaultBaseURL = "https://aur.archlinux.org"

// ErrPackageNotFound is returned by [Client.RequiredDeps] when no record
// can be resolved for a required package, even after fallback.
var ErrPackageNotFound = errors.New("package not found")

// Client looks up AUR package metadata. All methods are safe for
// concurrent use; the record cache is the only shared mutable state and
// two concurrent lookups for the same name may both fetch (last write
// wins, fetches are idempotent).
type Client struct {
	http      *httputil.Client
	cache     cache.Cache
	logger    *log.Logger
	arch      srcinfo.Arch
	cacheTTL  time.Duration
	indexFile string

	srcInfoURL string
	rpcURL     string
	indexURL   string
}

// Options configures a Client. The zero value selects the production AUR
// endpoint, an in-memory cache and the x86_64 architecture.
type Options struct {
	BaseURL   string        // endpoint root, defaults to DefaultBaseURL
	Cache     cache.Cache   // record cache, defaults to an in-memory cache
	Logger    *log.Logger   // defaults to log.Default()
	Arch      srcinfo.Arch  // defaults to ArchX8664
	CacheTTL  time.Duration // 0 keeps records for the cache's lifetime
	IndexFile string        // optional local name-index file path
}

// New creates a Client.
func New(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemoryCache(0)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Arch == "" {
		opts.Arch = srcinfo.ArchX8664
	}
	return &Client{
		http:       httputil.NewClient(nil),
		cache:      opts.Cache,
		logger:     opts.Logger,
		arch:       opts.Arch,
		cacheTTL:   opts.CacheTTL,
		indexFile:  opts.IndexFile,
		srcInfoURL: base + "/cgit/aur.git/plain/.SRCINFO?h=",
		rpcURL:     base + "/rpc/?v=5",
		indexURL:   base + "/packages.gz",
	}
}

// Arch returns the architecture this client extracts dependencies for.
func (c *Client) Arch() srcinfo.Arch { return c.arch }

// SrcInfo resolves the metadata record for name. It returns nil when no
// record is available: unknown name, empty document, or no connectivity.
func (c *Client) SrcInfo(ctx context.Context, name string) srcinfo.Record {
	return c.srcInfo(ctx, name, "")
}

// srcInfo runs one lookup. realName is set on the fallback recursion: the
// record is then fetched under the package base's name but filtered to the
// originally queried sub-package. The fallback recurses at most once.
func (c *Client) srcInfo(ctx context.Context, name, realName string) srcinfo.Record {
	if rec := c.cachedRecord(ctx, name); rec != nil {
		return rec
	}

	text, err := c.http.GetText(ctx, c.srcInfoURL+url.QueryEscape(name))
	if err != nil && !errors.Is(err, httputil.ErrNotFound) {
		c.logger.Warn("could not fetch .SRCINFO", "package", name, "err", err)
	}
	if err == nil && text != "" {
		target := name
		if realName != "" {
			target = realName
		}
		rec := srcinfo.Parse(text, target, nil)
		if len(rec) > 0 {
			c.storeRecord(ctx, name, rec)
		}
		return rec
	}

	if realName != "" {
		// Already inside the one-level fallback; don't recurse further.
		return nil
	}

	c.logger.Warn("no .SRCINFO found", "package", name)
	c.logger.Info("checking if package is based on another package", "package", name)

	infos := c.Info(ctx, name)
	if len(infos) == 0 {
		return nil
	}
	info := infos[0]
	if info.Name == "" || info.PackageBase == "" || info.Name == info.PackageBase {
		return nil
	}

	c.logger.Info("package is based on another package",
		"package", info.Name, "base", info.PackageBase)
	rec := c.srcInfo(ctx, info.PackageBase, info.Name)
	if len(rec) > 0 {
		c.storeRecord(ctx, name, rec)
	}
	return rec
}

// ExtractRequiredDeps returns the record's dependency set for this
// client's architecture.
func (c *Client) ExtractRequiredDeps(rec srcinfo.Record) []string {
	return srcinfo.RequiredDeps(rec, c.arch)
}

// RequiredDeps resolves name and returns its dependency set. Unlike
// [Client.SrcInfo], an unresolvable name is a hard failure here: the
// caller declared the package mandatory.
func (c *Client) RequiredDeps(ctx context.Context, name string) ([]string, error) {
	rec := c.SrcInfo(ctx, name)
	if len(rec) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
	}
	return c.ExtractRequiredDeps(rec), nil
}

// ClearCache drops all cached records. Safe to call concurrently with
// in-flight lookups; a racing lookup either sees a stale-but-valid record
// or refetches.
func (c *Client) ClearCache(ctx context.Context) error {
	return c.cache.Clear(ctx)
}

func (c *Client) cachedRecord(ctx context.Context, name string) srcinfo.Record {
	data, hit, err := c.cache.Get(ctx, name)
	if err != nil || !hit {
		return nil
	}
	var rec srcinfo.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		c.logger.Warn("dropping corrupt cache entry", "package", name, "err", err)
		_ = c.cache.Delete(ctx, name)
		return nil
	}
	return rec
}

func (c *Client) storeRecord(ctx context.Context, name string, rec srcinfo.Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, name, data, c.cacheTTL); err != nil {
		c.logger.Warn("could not cache record", "package", name, "err", err)
	}
}
