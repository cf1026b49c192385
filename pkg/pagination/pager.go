package pagination

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/saturnines/lakehouse-sdk/pkg/errors"
)

// State is where a Pager is in its lifecycle.
type State int

const (
	// StateFresh means no page has been requested yet.
	StateFresh State = iota
	// StateHasMore means the last page came back with a continuation cursor.
	StateHasMore
	// StateExhausted is terminal: the last page had no continuation cursor.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateHasMore:
		return "has_more"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Page is one server response to a listing call.
type Page[T any] struct {
	Items []T
	// Next is the continuation cursor. Empty means there is nothing after this page.
	Next string
	// Total is the collection size when the server reports it.
	Total *int64
}

// ListFunc fetches the page starting at cursor. An empty cursor asks for the first page.
type ListFunc[T any] func(ctx context.Context, cursor string) (*Page[T], error)

// PageHook is called after every successfully fetched page.
type PageHook func(name string, items int, hasMore bool)

// Option configures a Pager.
type Option func(*options)

type options struct {
	name   string
	logger *slog.Logger
	hooks  []PageHook
}

// WithName labels the pager in logs, hooks and errors. Usually the operation name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger page fetches are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPageHook registers a hook run after each fetched page.
func WithPageHook(hook PageHook) Option {
	return func(o *options) {
		if hook != nil {
			o.hooks = append(o.hooks, hook)
		}
	}
}

// Pager walks a server-paginated collection one page at a time.
//
// A Pager is single pass and not safe for concurrent use: every page depends on
// the cursor returned by the previous one, so callers must serialize access.
type Pager[T any] struct {
	list   ListFunc[T]
	opts   options
	cursor string
	state  State
	pages  int
	total  *int64
}

// New returns a fresh Pager that starts at the first page.
func New[T any](list ListFunc[T], opts ...Option) *Pager[T] {
	return NewFrom(list, "", opts...)
}

// NewFrom returns a fresh Pager whose first request uses start as the cursor.
func NewFrom[T any](list ListFunc[T], start string, opts ...Option) *Pager[T] {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pager[T]{
		list:   list,
		opts:   o,
		cursor: strings.TrimSpace(start),
		state:  StateFresh,
	}
}

// HasNext reports whether Next can return another page. It never does I/O.
func (p *Pager[T]) HasNext() bool {
	return p.state != StateExhausted
}

// State returns the current lifecycle state.
func (p *Pager[T]) State() State {
	return p.state
}

// Cursor returns the cursor the next request will use.
func (p *Pager[T]) Cursor() string {
	return p.cursor
}

// Pages returns how many pages were fetched successfully.
func (p *Pager[T]) Pages() int {
	return p.pages
}

// Total returns the collection size reported by the most recent page, if any.
func (p *Pager[T]) Total() *int64 {
	return p.total
}

// Next fetches the following page and returns its items.
//
// It fails with errors.ErrExhausted once the collection is exhausted. When the
// listing call fails the pager is left untouched, so calling Next again retries
// the same page with the same cursor.
func (p *Pager[T]) Next(ctx context.Context) ([]T, error) {
	if !p.HasNext() {
		return nil, errors.ErrExhausted
	}

	page, err := p.list(ctx, p.cursor)
	if err != nil {
		return nil, p.requestError(err)
	}
	if page == nil {
		page = &Page[T]{}
	}

	next := strings.TrimSpace(page.Next)
	// A server handing back the cursor it was just given would loop forever.
	if next != "" && next == p.cursor && p.state != StateFresh {
		return nil, errors.WrapError(
			fmt.Errorf("server returned cursor %q again", next),
			errors.ErrPagination,
			p.label(),
		)
	}

	p.pages++
	if page.Total != nil {
		p.total = page.Total
	}
	if next == "" {
		p.state = StateExhausted
	} else {
		p.state = StateHasMore
	}
	p.cursor = next

	p.opts.logger.Debug("fetched page",
		"pager", p.opts.name,
		"page", p.pages,
		"items", len(page.Items),
		"has_more", p.HasNext(),
	)
	for _, hook := range p.opts.hooks {
		hook(p.opts.name, len(page.Items), p.HasNext())
	}

	items := page.Items
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// All fetches every remaining page and returns the items in arrival order.
// It resumes from the current position. On failure the partial result is
// dropped and the pager stays on the page that failed.
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	all := []T{}
	for p.HasNext() {
		items, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}

// Items ranges over every remaining item. Iteration stops after the first
// error is yielded. Breaking out mid-page drops the rest of that page.
func (p *Pager[T]) Items(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for p.HasNext() {
			items, err := p.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

func (p *Pager[T]) label() string {
	if p.opts.name == "" {
		return "pager"
	}
	return p.opts.name
}

// requestError makes sure listing failures reach the caller as a RequestError.
func (p *Pager[T]) requestError(err error) error {
	var reqErr *errors.RequestError
	if errors.As(err, &reqErr) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.NewRequestError(p.label(), err)
}
