package http

import (
	"net/http"
	"strconv"

	"goblog/domain"
)

// Page is the bounded slice of an ordered post collection plus the metadata
// the renderer needs for previous/next controls.
type Page struct {
	Posts      []domain.Post
	Number     int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevNumber int
	NextNumber int
}

// pageNumber reads the requested page from the "page" query parameter.
// Anything that is not a positive number counts as page 1.
func pageNumber(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// clampPage resolves a requested page number against the collection size.
// It returns the effective page number and the total page count. An empty
// collection still has one (empty) page; a request beyond the last page is
// clamped to the last page.
func clampPage(requested, total, pageSize int) (number, totalPages int) {
	totalPages = (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	number = requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	return number, totalPages
}

// postPage builds the page context for one rendered page. It never loads the
// whole collection: count yields the collection size and fetch is called with
// a limit/offset window only.
func (s *Server) postPage(
	r *http.Request,
	count func() (int, error),
	fetch func(limit, offset int) ([]domain.Post, error),
) (*Page, error) {
	total, err := count()
	if err != nil {
		return nil, err
	}
	number, totalPages := clampPage(pageNumber(r), total, s.pageSize)
	posts, err := fetch(s.pageSize, (number-1)*s.pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{
		Posts:      posts,
		Number:     number,
		TotalPages: totalPages,
		HasPrev:    number > 1,
		HasNext:    number < totalPages,
		PrevNumber: number - 1,
		NextNumber: number + 1,
	}, nil
}
