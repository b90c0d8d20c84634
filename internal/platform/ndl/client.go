// Package ndl searches the National Diet Library catalog over SRU using the
// dcndl_simple record schema.
package ndl

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"bookfinder/internal/book"
	"bookfinder/internal/platform/upstream"
)

const (
	defaultBaseURL = "https://iss.ndl.go.jp/api/sru"
	thumbnailURL   = "https://iss.ndl.go.jp/thumbnail/"

	sortClause = `sortBy="issued_date/sort.descending"`
	isbnType   = "dcndl:ISBN"
)

type Client struct {
	http    *upstream.Client
	baseURL string
}

var _ book.Provider = (*Client)(nil)

func NewClient(httpClient *upstream.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{http: httpClient, baseURL: baseURL}
}

type sruResponse struct {
	XMLName         xml.Name `xml:"searchRetrieveResponse"`
	NumberOfRecords *string  `xml:"numberOfRecords"`
	Records         []record `xml:"records>record"`
}

type record struct {
	DC *dcRecord `xml:"recordData>dc"`
}

type dcRecord struct {
	Titles       []string     `xml:"title"`
	Abstracts    []string     `xml:"abstract"`
	Subjects     []string     `xml:"subject"`
	Creators     []string     `xml:"creator"`
	Publishers   []string     `xml:"publisher"`
	Issued       []string     `xml:"issued"`
	Identifiers  []identifier `xml:"identifier"`
	Languages    []string     `xml:"language"`
	Descriptions []string     `xml:"description"`
}

type identifier struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// Search runs a free text search, newest issues first.
func (c *Client) Search(ctx context.Context, query string, pageSize, page int) (book.Chunk, error) {
	cql := fmt.Sprintf(`mediatype=1 AND anywhere="%s" AND %s`, escape(query), sortClause)
	return c.search(ctx, cql, pageSize, page*pageSize+1)
}

// Get returns the newest record for isbn.
func (c *Client) Get(ctx context.Context, isbn string) (book.Book, error) {
	cql := fmt.Sprintf(`isbn="%s" AND %s`, escape(isbn), sortClause)
	chunk, err := c.search(ctx, cql, 1, 1)
	if err != nil {
		return book.Book{}, err
	}
	if len(chunk.Books) == 0 {
		return book.Book{}, fmt.Errorf("ndl isbn %s: %w", isbn, book.ErrNotFound)
	}
	return chunk.Books[0], nil
}

func (c *Client) search(ctx context.Context, cql string, maximumRecords, startRecord int) (book.Chunk, error) {
	params := url.Values{}
	params.Set("operation", "searchRetrieve")
	params.Set("query", cql)
	params.Set("maximumRecords", strconv.Itoa(maximumRecords))
	params.Set("startRecord", strconv.Itoa(startRecord))
	params.Set("recordPacking", "xml")
	params.Set("recordSchema", "dcndl_simple")

	body, err := c.http.Get(ctx, c.baseURL, params, upstream.DefaultMaxBodyBytes)
	if err != nil {
		return book.Chunk{}, err
	}
	return parseResponse(body)
}

func parseResponse(body []byte) (book.Chunk, error) {
	var resp sruResponse
	if err := upstream.DecodeXML("ndl", body, &resp); err != nil {
		return book.Chunk{}, err
	}
	if resp.NumberOfRecords == nil {
		return book.Chunk{}, upstream.NewParseError("ndl", errors.New("missing numberOfRecords"))
	}
	total, err := strconv.Atoi(strings.TrimSpace(*resp.NumberOfRecords))
	if err != nil {
		return book.Chunk{}, upstream.NewParseError("ndl", err)
	}

	chunk := book.Chunk{Books: make([]book.Book, 0, len(resp.Records)), TotalCount: total}
	for _, rec := range resp.Records {
		if rec.DC == nil {
			continue
		}
		if b, ok := rec.DC.toBook(); ok {
			chunk.Books = append(chunk.Books, b)
		}
	}
	return chunk, nil
}

func (d *dcRecord) toBook() (book.Book, bool) {
	title := first(d.Titles)
	if title == "" {
		return book.Book{}, false
	}

	b := book.New(title)
	b.Authors = appendNonEmpty(b.Authors, d.Creators)
	b.Publishers = appendNonEmpty(b.Publishers, d.Publishers)
	b.Descriptions = appendNonEmpty(b.Descriptions, d.Abstracts)
	b.Keywords = appendNonEmpty(b.Keywords, d.Subjects)
	b.Annotations = appendNonEmpty(b.Annotations, d.Descriptions)
	b.Issued = book.StringPtr(first(d.Issued))
	b.Language = book.StringPtr(first(d.Languages))

	for _, id := range d.Identifiers {
		if id.Type == isbnType && strings.TrimSpace(id.Value) != "" {
			isbn := strings.TrimSpace(id.Value)
			b.ISBN = &isbn
			b.ImageURL = book.StringPtr(thumbnailURL + isbn)
			break
		}
	}
	return b, true
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func first(values []string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func appendNonEmpty(dst, values []string) []string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			dst = append(dst, v)
		}
	}
	return dst
}
