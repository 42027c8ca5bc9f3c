package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"expenditure/internal/api"
	"expenditure/internal/core"
)

// period is a calendar month used for navigation between summaries.
type period struct {
	Year  int
	Month int
}

func (p period) Label() string {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Sprintf("%d/%d", p.Month, p.Year)
	}
	return fmt.Sprintf("%s %d", time.Month(p.Month), p.Year)
}

func (p period) Prev() period { return p.shift(-1) }
func (p period) Next() period { return p.shift(1) }

func (p period) shift(delta int) period {
	t := time.Date(p.Year, time.Month(p.Month)+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return period{Year: t.Year(), Month: int(t.Month())}
}

// panel is one independently loaded section of a page.
type panel[T any] struct {
	Data   T
	OK     bool
	Notice string
}

// settle turns a client result into a panel. Transport, status and decode
// errors as well as in-band rejections become a notice.
func settle[T any](env *core.Envelope[T], err error) panel[T] {
	var p panel[T]
	if err != nil {
		p.Notice = describeError(err)
		return p
	}
	if !env.Success {
		p.Notice = env.MessageOr("The request was rejected.")
		return p
	}
	p.Data = env.Data
	p.OK = true
	return p
}

// describeError maps client errors to text suitable for a page notice.
func describeError(err error) string {
	var statusErr *api.StatusError
	switch {
	case errors.Is(err, api.ErrInvalidArgument):
		return "Invalid request: " + invalidReason(err)
	case errors.Is(err, api.ErrTimeout):
		return "The server took too long to respond."
	case errors.Is(err, api.ErrTransport):
		return "Could not reach the server."
	case errors.As(err, &statusErr):
		if statusErr.Message != nil && *statusErr.Message != "" {
			return *statusErr.Message
		}
		return fmt.Sprintf("The server answered with status %d.", statusErr.StatusCode)
	case errors.Is(err, api.ErrDecode):
		return "The server sent an unexpected response."
	default:
		return "Something went wrong."
	}
}

func invalidReason(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "amount must be a positive number."
	case errors.Is(err, core.ErrInvalidType):
		return "type must be income or expense."
	case errors.Is(err, core.ErrEmptyCategory):
		return "category is required."
	default:
		return "check the period or page."
	}
}

// failureStatus picks the response code for a page whose main call failed.
func failureStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, api.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
