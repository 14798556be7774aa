package exchange

import (
	"context"
	"fmt"
	"iter"

	"cbadv/pkg/core"
)

// Page is one server page of a cursor-paginated listing.
type Page[T any] struct {
	Items   []T
	HasNext bool
	Cursor  string
}

// ListFunc fetches the page that starts at cursor. The first page uses "".
type ListFunc[T any] func(ctx context.Context, cursor string) (*Page[T], error)

// FindFirst walks pages in server order and returns the first item accepted by match.
//
// Pages are fetched one at a time and the walk stops at the first match, so a
// match on page k costs exactly k requests. When the last page has been seen
// it returns a NotFound error; errors from list are returned unchanged.
func FindFirst[T any](ctx context.Context, list ListFunc[T], match func(*T) bool, opts ...Option) (*T, error) {
	o := ApplyOptions(opts...)

	cursor := ""
	for pages := 0; ; pages++ {
		if o.MaxPages > 0 && pages >= o.MaxPages {
			return nil, core.NewError(core.ErrorTypeNotFound, fmt.Sprintf("no match within %d pages", o.MaxPages))
		}
		if err := ctx.Err(); err != nil {
			return nil, core.WrapError(core.ErrorTypeUnknown, "lookup canceled", err)
		}

		page, err := list(ctx, cursor)
		if err != nil {
			return nil, err
		}
		for i := range page.Items {
			if match(&page.Items[i]) {
				return &page.Items[i], nil
			}
		}

		if !page.HasNext {
			return nil, core.NewError(core.ErrorTypeNotFound, "no matching ids")
		}
		if page.Cursor == "" || page.Cursor == cursor {
			return nil, core.NewError(core.ErrorTypeBadParse, "page cursor")
		}
		cursor = page.Cursor
	}
}

// All yields every item across pages in server order. Iteration stops after the
// first error, which is yielded with a nil item.
func All[T any](ctx context.Context, list ListFunc[T], opts ...Option) iter.Seq2[*T, error] {
	o := ApplyOptions(opts...)

	return func(yield func(*T, error) bool) {
		cursor := ""
		for pages := 0; o.MaxPages == 0 || pages < o.MaxPages; pages++ {
			if err := ctx.Err(); err != nil {
				yield(nil, core.WrapError(core.ErrorTypeUnknown, "listing canceled", err))
				return
			}

			page, err := list(ctx, cursor)
			if err != nil {
				yield(nil, err)
				return
			}
			for i := range page.Items {
				if !yield(&page.Items[i], nil) {
					return
				}
			}

			if !page.HasNext {
				return
			}
			if page.Cursor == "" || page.Cursor == cursor {
				yield(nil, core.NewError(core.ErrorTypeBadParse, "page cursor"))
				return
			}
			cursor = page.Cursor
		}
	}
}
