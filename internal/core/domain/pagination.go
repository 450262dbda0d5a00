package domain

// Paginated wraps one page of results together with the page bookkeeping the
// clients need to render a pager.
type Paginated[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	PageSize         int   `json:"pageSize"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
	CurrentPage      int   `json:"currentPage"`
}

// NewPaginated assembles the page envelope. Pages are zero-based.
func NewPaginated[T any](content []T, page, size int, total int64) Paginated[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Paginated[T]{
		Content:          content,
		TotalElements:    total,
		PageSize:         size,
		TotalPages:       totalPages,
		NumberOfElements: len(content),
		CurrentPage:      page,
	}
}
