package book

import (
	"errors"

	"bookfinder/internal/platform/upstream"
)

var (
	// ErrNotFound is returned when no provider record matches an isbn.
	ErrNotFound = upstream.ErrNotFound

	// ErrUnknownProvider is returned for a provider tag that is not registered.
	ErrUnknownProvider = errors.New("unknown book provider")

	// ErrPageOutOfRange is returned when a page's offset cannot be sent upstream.
	ErrPageOutOfRange = errors.New("page out of range")
)

// Book is bibliographic metadata normalized from one provider record.
type Book struct {
	Title        string   `json:"title"`
	Authors      []string `json:"authors"`
	Publishers   []string `json:"publishers"`
	Issued       *string  `json:"issued"`
	ISBN         *string  `json:"isbn"`
	Language     *string  `json:"language"`
	Descriptions []string `json:"descriptions"`
	Keywords     []string `json:"keywords"`
	Annotations  []string `json:"annotations"`
	ImageURL     *string  `json:"image_url"`
}

// Chunk is one page of search results.
type Chunk struct {
	Books      []Book `json:"books"`
	TotalCount int    `json:"total_count"`
}

// New returns a Book with every list field non-nil.
func New(title string) Book {
	return Book{
		Title:        title,
		Authors:      []string{},
		Publishers:   []string{},
		Descriptions: []string{},
		Keywords:     []string{},
		Annotations:  []string{},
	}
}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
