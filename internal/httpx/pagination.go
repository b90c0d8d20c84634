package httpx

import (
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage bounds the 0-based page index accepted from a query string.
	MaxPage = 100_000
)

// ParsePage reads the 0-based page and page_size query parameters.
// Missing values fall back to defaults; malformed ones are reported.
func ParsePage(r *http.Request) (pageSize, page int, details []ErrorDetail) {
	query := r.URL.Query()

	pageSize = DefaultPageSize
	if raw := query.Get("page_size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > MaxPageSize {
			details = append(details, ErrorDetail{Field: "page_size", Message: "page_size must be between 1 and 100"})
		} else {
			pageSize = v
		}
	}

	if raw := query.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > MaxPage {
			details = append(details, ErrorDetail{Field: "page", Message: "page must be between 0 and " + strconv.Itoa(MaxPage)})
		} else {
			page = v
		}
	}
	return pageSize, page, details
}

// PageWindow returns the [start, end) bounds of page within total items.
// The window is empty when page lies past the end, including pages whose
// offset would not fit in an int.
func PageWindow(total, pageSize, page int) (start, end int) {
	if total <= 0 || pageSize <= 0 || page < 0 {
		return 0, 0
	}
	if page > (total-1)/pageSize {
		return 0, 0
	}
	start = page * pageSize
	return start, min(start+pageSize, total)
}

// OffsetFits reports whether the first item of page can be addressed with
// a 32-bit offset, which is what upstream search APIs accept.
func OffsetFits(pageSize, page int) bool {
	if pageSize <= 0 || page < 0 {
		return false
	}
	return page <= (math.MaxInt32-1)/pageSize
}
