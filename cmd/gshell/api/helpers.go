package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// parseResponseData handles common response parsing logic.
func parseResponseData[T any](resp *Response) (*T, error) {
	if !resp.Success {
		return nil, fmt.Errorf(apiErrorFmt, resp.ErrorString())
	}
	if len(resp.Data) == 0 {
		return nil, ErrEmptyResponse
	}

	var result T
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

// parseResponseList parses a list response (for non-paginated endpoints).
func parseResponseList[T any](resp *Response) ([]T, error) {
	if !resp.Success {
		return nil, fmt.Errorf(apiErrorFmt, resp.ErrorString())
	}
	if len(resp.Data) == 0 {
		return nil, ErrEmptyResponse
	}

	var items []T
	if err := json.Unmarshal(resp.Data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return items, nil
}

// ListOptions provides pagination options for list operations
type ListOptions struct {
	Page  int
	Limit int
}

// WithDefaults returns a copy of ListOptions with safe defaults applied
// Page defaults to 1 if <= 0, Limit defaults to 50 if <= 0
func (o *ListOptions) WithDefaults() ListOptions {
	if o == nil {
		return ListOptions{Page: 1, Limit: defaultPageLimit}
	}
	result := *o
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.Limit <= 0 {
		result.Limit = defaultPageLimit
	}
	return result
}

// ListResult wraps a list of items with pagination metadata
type ListResult[T any] struct {
	Items      []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// listItems is a generic helper for fetching paginated lists
func listItems[T any](ctx context.Context, c *Client, basePath string, opts *ListOptions) (*ListResult[T], error) {
	normalized := opts.WithDefaults()
	path := fmt.Sprintf(paginationQueryFmt, basePath, normalized.Page, normalized.Limit)

	resp, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	paginated, err := parseResponseData[PaginatedResponse](resp)
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(paginated.Data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse items: %w", err)
	}
	return &ListResult[T]{
		Items:      items,
		Total:      paginated.TotalCount,
		Page:       paginated.Page,
		PageSize:   paginated.PageSize,
		TotalPages: paginated.TotalPages,
	}, nil
}
