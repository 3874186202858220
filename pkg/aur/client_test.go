package aur

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/aurtools/aurinfo/pkg/cache"
)

const demoSrcInfo = `pkgbase = demo
	pkgver = 1.4.0
	pkgrel = 1
	depends = glibc
	makedepends = cmake
pkgname = demo
	pkgdesc = Demo package
`

const fooSrcInfo = `pkgbase = foo
	pkgver = 2.0.0
	depends = glibc
pkgname = foo
	pkgdesc = Foo core
pkgname = foo-git
	pkgdesc = Foo snapshot
	depends = git
`

// fakeAUR serves the .SRCINFO and RPC endpoints from in-memory fixtures
// and counts hits per endpoint.
type fakeAUR struct {
	srcInfos map[string]string // package base name to document
	rpcInfo  map[string]Package

	srcInfoHits int
	rpcHits     int
}

func (f *fakeAUR) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/cgit/aur.git/plain/.SRCINFO", func(w http.ResponseWriter, r *http.Request) {
		f.srcInfoHits++
		doc, ok := f.srcInfos[r.URL.Query().Get("h")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, doc)
	})
	mux.HandleFunc("/rpc/", func(w http.ResponseWriter, r *http.Request) {
		f.rpcHits++
		var results []Package
		if pkg, ok := f.rpcInfo[r.URL.Query().Get("arg[0]")]; ok {
			results = append(results, pkg)
		}
		fmt.Fprintf(w, `{"version":5,"type":"multiinfo","resultcount":%d,"results":`, len(results))
		if results == nil {
			io.WriteString(w, `[]}`)
			return
		}
		fmt.Fprintf(w, `[{"ID":%d,"Name":%q,"PackageBase":%q,"Version":%q}]}`,
			results[0].ID, results[0].Name, results[0].PackageBase, results[0].Version)
	})
	return mux
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return New(Options{
		BaseURL: baseURL,
		Cache:   cache.NewMemoryCache(16),
		Logger:  log.New(io.Discard),
	})
}

func TestSrcInfoDirect(t *testing.T) {
	fake := &fakeAUR{srcInfos: map[string]string{"demo": demoSrcInfo}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c := testClient(t, srv.URL)
	ctx := context.Background()

	rec := c.SrcInfo(ctx, "demo")
	if rec.Str("pkgver") != "1.4.0" {
		t.Fatalf("pkgver = %q, want 1.4.0", rec.Str("pkgver"))
	}
	if rec.Str("pkgdesc") != "Demo package" {
		t.Errorf("pkgdesc = %q", rec.Str("pkgdesc"))
	}

	// Second lookup must come from the cache.
	rec = c.SrcInfo(ctx, "demo")
	if rec.Str("pkgver") != "1.4.0" {
		t.Errorf("cached pkgver = %q", rec.Str("pkgver"))
	}
	if fake.srcInfoHits != 1 {
		t.Errorf("srcInfoHits = %d, want 1", fake.srcInfoHits)
	}
	if fake.rpcHits != 0 {
		t.Errorf("rpcHits = %d, want 0", fake.rpcHits)
	}
}

func TestSrcInfoFallbackToPackageBase(t *testing.T) {
	fake := &fakeAUR{
		srcInfos: map[string]string{"foo": fooSrcInfo},
		rpcInfo: map[string]Package{
			"foo-git": {ID: 7, Name: "foo-git", PackageBase: "foo", Version: "2.0.0"},
		},
	}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c := testClient(t, srv.URL)
	ctx := context.Background()

	rec := c.SrcInfo(ctx, "foo-git")
	if rec == nil {
		t.Fatal("fallback lookup returned no record")
	}
	if rec.Str("pkgname") != "foo-git" {
		t.Errorf("pkgname = %q, want foo-git", rec.Str("pkgname"))
	}
	if rec.Str("pkgdesc") != "Foo snapshot" {
		t.Errorf("record not filtered to queried sub-package: pkgdesc = %q", rec.Str("pkgdesc"))
	}
	if fake.srcInfoHits != 2 || fake.rpcHits != 1 {
		t.Errorf("hits = %d/%d, want 2 document fetches and 1 info lookup",
			fake.srcInfoHits, fake.rpcHits)
	}

	// The result is cached under the queried name.
	c.SrcInfo(ctx, "foo-git")
	if fake.srcInfoHits != 2 {
		t.Errorf("srcInfoHits after cached lookup = %d, want 2", fake.srcInfoHits)
	}
}

func TestSrcInfoFallbackStopsAfterOneHop(t *testing.T) {
	// The RPC claims a different base, but its document is missing too.
	// The lookup must give up instead of chaining further info queries.
	fake := &fakeAUR{
		rpcInfo: map[string]Package{
			"ghost": {ID: 1, Name: "ghost", PackageBase: "phantom"},
		},
	}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c := testClient(t, srv.URL)

	if rec := c.SrcInfo(context.Background(), "ghost"); rec != nil {
		t.Errorf("got record %v, want nil", rec)
	}
	if fake.rpcHits != 1 {
		t.Errorf("rpcHits = %d, want exactly 1", fake.rpcHits)
	}
	if fake.srcInfoHits != 2 {
		t.Errorf("srcInfoHits = %d, want 2", fake.srcInfoHits)
	}
}

func TestSrcInfoUnknownName(t *testing.T) {
	fake := &fakeAUR{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c := testClient(t, srv.URL)
	ctx := context.Background()

	if rec := c.SrcInfo(ctx, "no-such-package"); rec != nil {
		t.Errorf("got record %v, want nil", rec)
	}

	_, err := c.RequiredDeps(ctx, "no-such-package")
	if !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("RequiredDeps err = %v, want ErrPackageNotFound", err)
	}
}

func TestRequiredDeps(t *testing.T) {
	fake := &fakeAUR{srcInfos: map[string]string{"demo": demoSrcInfo}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c := testClient(t, srv.URL)

	deps, err := c.RequiredDeps(context.Background(), "demo")
	if err != nil {
		t.Fatalf("RequiredDeps: %v", err)
	}
	want := map[string]bool{"glibc": true, "cmake": true}
	if len(deps) != len(want) {
		t.Fatalf("deps = %v, want glibc and cmake", deps)
	}
	for _, d := range deps {
		if !want[d] {
			t.Errorf("unexpected dependency %q", d)
		}
	}
}

func TestClearCache(t *testing.T) {
	fake := &fakeAUR{srcInfos: map[string]string{"demo": demoSrcInfo}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c := testClient(t, srv.URL)
	ctx := context.Background()

	c.SrcInfo(ctx, "demo")
	if err := c.ClearCache(ctx); err != nil {
		t.Fatalf("ClearCache: %v", err)
	}
	c.SrcInfo(ctx, "demo")

	if fake.srcInfoHits != 2 {
		t.Errorf("srcInfoHits = %d, want refetch after clear", fake.srcInfoHits)
	}
}

func TestConcurrentLookupsRacingClear(t *testing.T) {
	// Lookups and cache clearing share only the cache; a racing reader
	// must see either a valid record or a miss-and-refetch, never a
	// corrupt one.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, demoSrcInfo)
	}))
	defer srv.Close()

	c := New(Options{
		BaseURL: srv.URL,
		Cache:   cache.NewMemoryCache(8),
		Logger:  log.New(io.Discard),
	})
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				rec := c.SrcInfo(ctx, "demo")
				if rec.Str("pkgver") != "1.4.0" {
					t.Errorf("corrupt record: %v", rec)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			if err := c.ClearCache(ctx); err != nil {
				t.Errorf("ClearCache: %v", err)
				return
			}
		}
	}()
	wg.Wait()
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("type") != "search" {
			t.Errorf("type = %q, want search", r.URL.Query().Get("type"))
		}
		if r.URL.Query().Get("arg") != "terminal emulator" {
			t.Errorf("arg = %q", r.URL.Query().Get("arg"))
		}
		io.WriteString(w, `{"version":5,"type":"search","resultcount":1,
			"results":[{"Name":"kitty-git","Version":"0.40.0","NumVotes":12}]}`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)

	results, err := c.Search(context.Background(), "terminal emulator")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "kitty-git" {
		t.Errorf("results = %v", results)
	}
}

func TestSearchRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"version":5,"type":"error","resultcount":0,"results":[],"error":"Query arg too small."}`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)

	if _, err := c.Search(context.Background(), "a"); err == nil {
		t.Error("want error for rejected query")
	}
}
