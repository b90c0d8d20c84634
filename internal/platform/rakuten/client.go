// Package rakuten adapts the Rakuten Books book search API.
package rakuten

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"bookfinder/internal/book"
	"bookfinder/internal/platform/upstream"
)

const defaultBaseURL = "https://app.rakuten.co.jp/services/api/BooksBook/Search/20170404"

type Client struct {
	http          *upstream.Client
	applicationID string
	baseURL       string
}

var _ book.Provider = (*Client)(nil)

func NewClient(httpClient *upstream.Client, applicationID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{http: httpClient, applicationID: applicationID, baseURL: baseURL}
}

type searchResponse struct {
	Count *int          `json:"count"`
	Items []itemWrapper `json:"Items"`
}

type itemWrapper struct {
	Item *item `json:"Item"`
}

type item struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublisherName string `json:"publisherName"`
	SalesDate     string `json:"salesDate"`
	ItemCaption   string `json:"itemCaption"`
	ISBN          string `json:"isbn"`
	Size          string `json:"size"`
	SmallImageURL string `json:"smallImageUrl"`
}

// Search matches query against titles. Rakuten pages are 1-based.
func (c *Client) Search(ctx context.Context, query string, pageSize, page int) (book.Chunk, error) {
	params := c.params()
	params.Set("title", query)
	params.Set("hits", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page+1))
	return c.search(ctx, params)
}

func (c *Client) Get(ctx context.Context, isbn string) (book.Book, error) {
	params := c.params()
	params.Set("isbn", isbn)
	params.Set("hits", "1")

	chunk, err := c.search(ctx, params)
	if err != nil {
		return book.Book{}, err
	}
	if len(chunk.Books) == 0 {
		return book.Book{}, fmt.Errorf("rakuten isbn %s: %w", isbn, book.ErrNotFound)
	}
	return chunk.Books[0], nil
}

func (c *Client) params() url.Values {
	params := url.Values{}
	params.Set("applicationId", c.applicationID)
	return params
}

func (c *Client) search(ctx context.Context, params url.Values) (book.Chunk, error) {
	var resp searchResponse
	if err := c.http.GetJSON(ctx, c.baseURL, params, &resp); err != nil {
		return book.Chunk{}, err
	}
	if resp.Count == nil {
		return book.Chunk{}, upstream.NewParseError("rakuten", errors.New("missing count"))
	}

	chunk := book.Chunk{Books: make([]book.Book, 0, len(resp.Items)), TotalCount: *resp.Count}
	for _, w := range resp.Items {
		it := w.Item
		if it == nil || it.Title == "" {
			continue
		}

		b := book.New(it.Title)
		if it.Author != "" {
			b.Authors = append(b.Authors, it.Author)
		}
		if it.PublisherName != "" {
			b.Publishers = append(b.Publishers, it.PublisherName)
		}
		if it.ItemCaption != "" {
			b.Descriptions = append(b.Descriptions, it.ItemCaption)
		}
		if it.Size != "" {
			b.Annotations = append(b.Annotations, it.Size)
		}
		b.Issued = book.StringPtr(it.SalesDate)
		b.ISBN = book.StringPtr(it.ISBN)
		b.ImageURL = book.StringPtr(it.SmallImageURL)
		chunk.Books = append(chunk.Books, b)
	}
	return chunk, nil
}
