package google

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrTransport wraps every failure of a list call. Nothing fetched before
	// the failure is returned.
	ErrTransport = errors.New("google: list request failed")

	// ErrNoContinuation is returned for a page that ends the listing without a sync token.
	ErrNoContinuation = errors.New("google: page carries neither a page token nor a sync token")
)

// Page is a single response of a list endpoint.
type Page[T any] struct {
	Items         []T
	NextPageToken string
	NextSyncToken string
}

// ListFunc fetches the page identified by pageToken, the first page when
// pageToken is empty.
type ListFunc[T any] func(ctx context.Context, pageToken string) (*Page[T], error)

// FetchAll calls list until a page carries a sync token and returns every item
// in the order received, together with that sync token. The sync token, not
// the lack of a page token, marks the last page of a full listing.
//
// Calls are not retried.
func FetchAll[T any](ctx context.Context, list ListFunc[T]) ([]T, string, error) {
	var (
		items     []T
		pageToken string
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		page, err := list(ctx, pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrTransport, err)
		}
		if page == nil {
			return nil, "", fmt.Errorf("%w: empty response", ErrTransport)
		}

		items = append(items, page.Items...)
		if page.NextSyncToken != "" {
			return items, page.NextSyncToken, nil
		}
		if page.NextPageToken == "" {
			return nil, "", ErrNoContinuation
		}
		pageToken = page.NextPageToken
	}
}
