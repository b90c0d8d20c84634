// Package cinii looks up academic library holdings through the CiNii Books
// OpenSearch API.
package cinii

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"bookfinder/internal/platform/upstream"
)

const defaultBaseURL = "https://ci.nii.ac.jp/books/opensearch"

type Client struct {
	http    *upstream.Client
	appID   string
	baseURL string
}

func NewClient(httpClient *upstream.Client, appID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{http: httpClient, appID: appID, baseURL: strings.TrimRight(baseURL, "/")}
}

// Holdings is the holder listing for one bibliographic record.
type Holdings struct {
	NCID      string
	Libraries []string
	Total     int
}

type feed struct {
	XMLName      xml.Name `xml:"feed"`
	TotalResults *string  `xml:"totalResults"`
	Entries      []entry  `xml:"entry"`
}

type entry struct {
	Title string `xml:"title"`
	ID    string `xml:"id"`
}

// LookupNCID resolves isbn to a CiNii bibliographic id.
func (c *Client) LookupNCID(ctx context.Context, isbn string) (string, error) {
	params := url.Values{}
	params.Set("appid", c.appID)
	params.Set("isbn", isbn)

	var f feed
	if err := c.http.GetXML(ctx, c.baseURL+"/search", params, upstream.DefaultMaxBodyBytes, &f); err != nil {
		return "", err
	}
	if len(f.Entries) == 0 {
		return "", fmt.Errorf("cinii isbn %s: %w", isbn, upstream.ErrNotFound)
	}

	id := strings.TrimRight(strings.TrimSpace(f.Entries[0].ID), "/")
	ncid := path.Base(id)
	if id == "" || ncid == "." || ncid == "/" {
		return "", upstream.NewParseError("cinii", errors.New("entry without id"))
	}
	return ncid, nil
}

// Holders lists every academic library holding isbn.
func (c *Client) Holders(ctx context.Context, isbn string) (*Holdings, error) {
	ncid, err := c.LookupNCID(ctx, isbn)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("appid", c.appID)
	params.Set("ncid", ncid)

	var f feed
	if err := c.http.GetXML(ctx, c.baseURL+"/holder", params, upstream.DefaultMaxBodyBytes, &f); err != nil {
		return nil, err
	}
	if f.TotalResults == nil {
		return nil, upstream.NewParseError("cinii", errors.New("missing totalResults"))
	}
	total, err := strconv.Atoi(strings.TrimSpace(*f.TotalResults))
	if err != nil {
		return nil, upstream.NewParseError("cinii", err)
	}

	out := &Holdings{NCID: ncid, Total: total, Libraries: make([]string, 0, len(f.Entries))}
	for _, e := range f.Entries {
		name := strings.ReplaceAll(strings.TrimSpace(e.Title), " ", "")
		if name == "" {
			continue
		}
		out.Libraries = append(out.Libraries, name)
	}
	return out, nil
}
