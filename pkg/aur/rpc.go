package aur

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Package is one result entry of the AUR RPC v5 interface, shared by the
// info and search endpoints.
type Package struct {
	ID             int     `json:"ID"`
	Name           string  `json:"Name"`
	PackageBase    string  `json:"PackageBase"`
	Version        string  `json:"Version"`
	Description    string  `json:"Description"`
	URL            string  `json:"URL"`
	Maintainer     string  `json:"Maintainer"`
	NumVotes       int     `json:"NumVotes"`
	Popularity     float64 `json:"Popularity"`
	OutOfDate      *int64  `json:"OutOfDate"`
	FirstSubmitted int64   `json:"FirstSubmitted"`
	LastModified   int64   `json:"LastModified"`
}

type rpcResponse struct {
	Version     int       `json:"version"`
	Type        string    `json:"type"`
	ResultCount int       `json:"resultcount"`
	Results     []Package `json:"results"`
	Error       string    `json:"error,omitempty"`
}

// Info looks up packages by exact name through the RPC info endpoint.
// Any failure degrades to an empty result: info lookups back the fallback
// path, where absence is an expected outcome, not a fault.
func (c *Client) Info(ctx context.Context, names ...string) []Package {
	if len(names) == 0 {
		return nil
	}

	var resp rpcResponse
	u := c.rpcURL + "&type=info&" + namesQuery(names)
	if err := c.http.GetJSON(ctx, u, &resp); err != nil {
		c.logger.Warn("info lookup failed", "packages", strings.Join(names, ","), "err", err)
		return nil
	}
	if resp.Error != "" {
		c.logger.Warn("info lookup rejected", "err", resp.Error)
		return nil
	}
	return resp.Results
}

// Search queries the RPC search endpoint for packages matching term.
func (c *Client) Search(ctx context.Context, term string) ([]Package, error) {
	var resp rpcResponse
	u := c.rpcURL + "&type=search&arg=" + url.QueryEscape(term)
	if err := c.http.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("search rejected: %s", resp.Error)
	}
	return resp.Results, nil
}

// namesQuery builds the RPC multi-name argument list: arg[0]=a&arg[1]=b,
// each name percent-encoded.
func namesQuery(names []string) string {
	args := make([]string, len(names))
	for i, n := range names {
		args[i] = fmt.Sprintf("arg[%d]=%s", i, url.QueryEscape(n))
	}
	return strings.Join(args, "&")
}
