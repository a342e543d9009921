package domain

import (
	"fmt"
	"math"
	"strings"
)

type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case ASC:
		return ASC, nil
	case DESC:
		return DESC, nil
	default:
		return "", fmt.Errorf("invalid sort direction '%s'", s)
	}
}

// PageRequest selects one page of a listing. Page is zero-based.
type PageRequest struct {
	Page      int
	Size      int
	OrderBy   string
	Direction Direction
}

func NewPageRequest(page, size int, orderBy string, direction Direction) PageRequest {
	return PageRequest{Page: page, Size: size, OrderBy: orderBy, Direction: direction}
}

// Offset saturates at math.MaxInt instead of overflowing.
func (r PageRequest) Offset() int {
	if r.Page <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Page * r.Size
}

func (r PageRequest) Descending() bool {
	return r.Direction == DESC
}

// Page is the listing envelope returned to API clients.
type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Number:           req.Page,
		Size:             req.Size,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page >= totalPages-1,
		Empty:            len(content) == 0,
	}
}

// MapPage converts every element and keeps the page metadata.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	content := make([]R, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}
	return Page[R]{
		Content:          content,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		Number:           p.Number,
		Size:             p.Size,
		NumberOfElements: len(content),
		First:            p.First,
		Last:             p.Last,
		Empty:            len(content) == 0,
	}
}
