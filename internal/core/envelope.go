package core

// Envelope wraps every backend result. Message is nil when the backend
// omitted it or sent null.
type Envelope[T any] struct {
	Data    T       `json:"data"`
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
}

// MessageOr returns the message, or def when none was sent.
func (e *Envelope[T]) MessageOr(def string) string {
	if e == nil || e.Message == nil {
		return def
	}
	return *e.Message
}

// PaginatedData is one page of an ordered result set. PageNo is 1-based.
type PaginatedData[T any] struct {
	Data         []T `json:"data"`
	Total        int `json:"total"`
	PageNo       int `json:"page_no"`
	MaxPerPage   int `json:"max_per_page"`
	CurrentCount int `json:"current_count"`
}

func (p PaginatedData[T]) Validate() error {
	if p.PageNo < 1 || p.MaxPerPage < 1 {
		return ErrInvalidPage
	}
	if p.CurrentCount != len(p.Data) || p.CurrentCount > p.MaxPerPage {
		return ErrInvalidPage
	}
	for _, item := range p.Data {
		if v, ok := any(item).(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// HasPrev reports whether a previous page exists.
func (p PaginatedData[T]) HasPrev() bool {
	return p.PageNo > 1
}

// HasNext reports whether items exist past this page.
func (p PaginatedData[T]) HasNext() bool {
	return (p.PageNo-1)*p.MaxPerPage+p.CurrentCount < p.Total
}

// Pages returns the number of pages at the current page size.
func (p PaginatedData[T]) Pages() int {
	if p.MaxPerPage < 1 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.MaxPerPage - 1) / p.MaxPerPage
}
