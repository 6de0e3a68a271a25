package stripe

import (
	"context"
	"errors"
	"iter"
	"slices"

	"github.com/broady/stripe/decode"
)

// ListParams are the cursor params shared by every list operation. Resource
// list params embed it first.
type ListParams struct {
	// Limit is the page size, 1 to 100. The server defaults to 10.
	Limit         *int64  `form:"limit,omitempty" validate:"omitempty,min=1,max=100"`
	EndingBefore  *string `form:"ending_before,omitempty" validate:"excluded_with=StartingAfter"`
	StartingAfter *string `form:"starting_after,omitempty"`
}

const (
	paramStartingAfter = "starting_after"
	paramEndingBefore  = "ending_before"
)

// ErrNoMorePages is returned by Iter.NextPage when the list is exhausted.
var ErrNoMorePages = errors.New("no more pages")

// Iter walks a list operation page by page. Pages are fetched lazily, one GET
// per page, in server order. An Iter is not restartable and must not be
// advanced from more than one goroutine.
//
// When the initial request sets ending_before the iter runs backward: each
// next page ends before the first item of the previous one, and items within
// a page are yielded in reverse so the whole sequence moves away from the
// starting cursor. Pages returned by NextPage keep server order; only All
// reverses them.
type Iter[T any] struct {
	client   *Client
	req      *Request
	elem     func(*T) decode.Visitor
	idOf     func(*T) string
	backward bool

	cursor string
	buf    []*T
	done   bool
	err    error
	pages  int
}

// NewIter returns an iterator for the list request req. elem decodes one
// item and idOf returns its identifier, which becomes the next cursor.
func NewIter[T any](c *Client, req *Request, elem func(*T) decode.Visitor, idOf func(*T) string) *Iter[T] {
	return &Iter[T]{
		client:   c,
		req:      req,
		elem:     elem,
		idOf:     idOf,
		backward: req.Params.Has(paramEndingBefore),
	}
}

// Failed returns an iterator whose first advance reports err. Builders use it
// when the list request cannot be built.
func Failed[T any](err error) *Iter[T] {
	return &Iter[T]{err: err}
}

// Pages returns the number of pages fetched so far.
func (it *Iter[T]) Pages() int { return it.pages }

// Err returns the error that ended iteration, if any.
func (it *Iter[T]) Err() error { return it.err }

// NextPage fetches the next page. It returns ErrNoMorePages once the list is
// exhausted. An error is sticky: every later call returns it again.
func (it *Iter[T]) NextPage(ctx context.Context) (*List[T], error) {
	if it.err != nil {
		return nil, it.err
	}
	if it.done {
		return nil, ErrNoMorePages
	}

	req := it.req
	if it.cursor != "" {
		req = it.req.Clone()
		if it.backward {
			req.Params.Set(paramEndingBefore, it.cursor)
		} else {
			req.Params.Set(paramStartingAfter, it.cursor)
		}
	}

	page := &List[T]{}
	if err := it.client.Do(ctx, req, ListVisitor(page, it.elem)); err != nil {
		it.err = err
		return nil, err
	}
	it.pages++

	if !page.HasMore || len(page.Data) == 0 {
		it.done = true
	} else if it.backward {
		it.cursor = it.idOf(page.Data[0])
	} else {
		it.cursor = it.idOf(page.Data[len(page.Data)-1])
	}
	return page, nil
}

// All yields every remaining item. Iteration stops at the first error, which
// is yielded with a nil item. Breaking out of the loop keeps the rest of the
// current page for a later call.
//
//	for acct, err := range it.All(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(acct.ID)
//	}
func (it *Iter[T]) All(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for {
			for len(it.buf) > 0 {
				item := it.buf[0]
				it.buf = it.buf[1:]
				if !yield(item, nil) {
					return
				}
			}
			page, err := it.NextPage(ctx)
			if errors.Is(err, ErrNoMorePages) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			it.buf = page.Data
			if it.backward {
				it.buf = slices.Clone(page.Data)
				slices.Reverse(it.buf)
			}
		}
	}
}

// Collect drains the iterator into a slice.
func (it *Iter[T]) Collect(ctx context.Context) ([]*T, error) {
	var items []*T
	for item, err := range it.All(ctx) {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}
