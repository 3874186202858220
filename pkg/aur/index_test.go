package aur

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/aurtools/aurinfo/pkg/cache"
)

func TestReadLocalIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.idx")
	content := "demo=demo\nfoo-git= foo-git\nmalformed line\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(Options{
		BaseURL:   "http://127.0.0.1:0",
		Cache:     cache.NewMemoryCache(16),
		Logger:    log.New(io.Discard),
		IndexFile: path,
	})

	index := c.ReadLocalIndex()
	want := map[string]string{"demo": "demo", "foo-git": "foo-git"}
	if !reflect.DeepEqual(index, want) {
		t.Errorf("index = %v, want %v", index, want)
	}
}

func TestReadLocalIndexMissingFile(t *testing.T) {
	c := New(Options{
		BaseURL:   "http://127.0.0.1:0",
		Cache:     cache.NewMemoryCache(16),
		Logger:    log.New(io.Discard),
		IndexFile: filepath.Join(t.TempDir(), "absent.idx"),
	})

	if index := c.ReadLocalIndex(); index != nil {
		t.Errorf("index = %v, want nil", index)
	}
}

func TestDownloadNamesGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	io.WriteString(zw, "# AUR package list\ndemo\nfoo-git\ndemo\n\nzlib-ng\n")
	zw.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/packages.gz" {
			http.NotFound(w, r)
			return
		}
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)

	names := c.DownloadNames(context.Background())
	want := []string{"demo", "foo-git", "zlib-ng"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestDownloadNamesPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "alpha\nbeta\n")
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)

	names := c.DownloadNames(context.Background())
	if !reflect.DeepEqual(names, []string{"alpha", "beta"}) {
		t.Errorf("names = %v", names)
	}
}

func TestIndexPrefersLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packages.idx")
	if err := os.WriteFile(path, []byte("demo=demo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var remoteHits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remoteHits++
		io.WriteString(w, "remote-only\n")
	}))
	defer srv.Close()

	c := New(Options{
		BaseURL:   srv.URL,
		Cache:     cache.NewMemoryCache(16),
		Logger:    log.New(io.Discard),
		IndexFile: path,
	})

	names := c.Index(context.Background())
	sort.Strings(names)
	if !reflect.DeepEqual(names, []string{"demo"}) {
		t.Errorf("names = %v, want local index contents", names)
	}
	if remoteHits != 0 {
		t.Errorf("remote index was fetched %d times despite local file", remoteHits)
	}
}

func TestIndexFallsBackToDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "remote-only\n")
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)

	names := c.Index(context.Background())
	if !reflect.DeepEqual(names, []string{"remote-only"}) {
		t.Errorf("names = %v", names)
	}
}
