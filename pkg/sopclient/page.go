package sopclient

import (
	"encoding/json"
	"fmt"
)

// Page is the client-side collection shape. Every list call yields it, even
// when the backend sent a bare array.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// decodePage decodes either the pagination envelope or a bare array. A bare
// array of length N is wrapped as total=N, page=1, page_size=N (or pageSize
// when the caller supplied one). Absent total_pages defaults to 1.
func decodePage[T any](raw []byte, pageSize int) (*Page[T], error) {
	var envelope struct {
		Items      *[]T `json:"items"`
		Total      int  `json:"total"`
		Page       int  `json:"page"`
		PageSize   int  `json:"page_size"`
		TotalPages int  `json:"total_pages"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Items != nil {
		p := &Page[T]{
			Items:      *envelope.Items,
			Total:      envelope.Total,
			Page:       envelope.Page,
			PageSize:   envelope.PageSize,
			TotalPages: envelope.TotalPages,
		}
		if p.TotalPages == 0 {
			p.TotalPages = 1
		}
		return p, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	size := pageSize
	if size <= 0 {
		size = len(items)
	}
	return &Page[T]{
		Items:      items,
		Total:      len(items),
		Page:       1,
		PageSize:   size,
		TotalPages: 1,
	}, nil
}

// ListOptions are the shared pagination query parameters.
type ListOptions struct {
	Page     int
	PageSize int
}
