// Package googlebooks adapts the Google Books volumes API.
package googlebooks

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"bookfinder/internal/book"
	"bookfinder/internal/platform/upstream"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

type Client struct {
	http    *upstream.Client
	apiKey  string
	baseURL string
}

var _ book.Provider = (*Client)(nil)

func NewClient(httpClient *upstream.Client, apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{http: httpClient, apiKey: apiKey, baseURL: baseURL}
}

type volumesResponse struct {
	TotalItems *int     `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	VolumeInfo *volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string       `json:"title"`
	Subtitle            string       `json:"subtitle"`
	Authors             []string     `json:"authors"`
	Publisher           string       `json:"publisher"`
	PublishedDate       string       `json:"publishedDate"`
	Description         string       `json:"description"`
	Categories          []string     `json:"categories"`
	Language            string       `json:"language"`
	IndustryIdentifiers []identifier `json:"industryIdentifiers"`
	ImageLinks          *imageLinks  `json:"imageLinks"`
}

type identifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

func (c *Client) Search(ctx context.Context, query string, pageSize, page int) (book.Chunk, error) {
	return c.search(ctx, query, pageSize, page*pageSize)
}

func (c *Client) Get(ctx context.Context, isbn string) (book.Book, error) {
	chunk, err := c.search(ctx, "isbn:"+isbn, 1, 0)
	if err != nil {
		return book.Book{}, err
	}
	if len(chunk.Books) == 0 {
		return book.Book{}, fmt.Errorf("google isbn %s: %w", isbn, book.ErrNotFound)
	}
	return chunk.Books[0], nil
}

func (c *Client) search(ctx context.Context, q string, maxResults, startIndex int) (book.Chunk, error) {
	params := url.Values{}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	params.Set("q", q)
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("maxResults", strconv.Itoa(maxResults))

	var resp volumesResponse
	if err := c.http.GetJSON(ctx, c.baseURL, params, &resp); err != nil {
		return book.Chunk{}, err
	}
	return resp.toChunk()
}

func (r *volumesResponse) toChunk() (book.Chunk, error) {
	if r.TotalItems == nil {
		return book.Chunk{}, upstream.NewParseError("google", errors.New("missing totalItems"))
	}

	chunk := book.Chunk{Books: make([]book.Book, 0, len(r.Items)), TotalCount: *r.TotalItems}
	for _, item := range r.Items {
		info := item.VolumeInfo
		if info == nil || info.Title == "" {
			continue
		}

		b := book.New(info.Title)
		b.Authors = append(b.Authors, info.Authors...)
		if info.Publisher != "" {
			b.Publishers = append(b.Publishers, info.Publisher)
		}
		if info.Description != "" {
			b.Descriptions = append(b.Descriptions, info.Description)
		}
		if info.Subtitle != "" {
			b.Annotations = append(b.Annotations, info.Subtitle)
		}
		b.Keywords = append(b.Keywords, info.Categories...)
		b.Issued = book.StringPtr(info.PublishedDate)
		b.Language = book.StringPtr(info.Language)

		for _, id := range info.IndustryIdentifiers {
			if id.Type == "ISBN_13" {
				b.ISBN = book.StringPtr(id.Identifier)
				break
			}
		}
		if info.ImageLinks != nil {
			b.ImageURL = book.StringPtr(info.ImageLinks.SmallThumbnail)
		}
		chunk.Books = append(chunk.Books, b)
	}
	return chunk, nil
}
