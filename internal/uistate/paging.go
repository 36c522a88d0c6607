package uistate

import (
	"context"
	"fmt"

	"github.com/muurk/uistate/internal/result"
)

// NextPhase is the phase of a paged list's next-page request.
type NextPhase int

const (
	NextNone NextPhase = iota
	NextAvailable
	NextPending
	NextError
)

func (p NextPhase) String() string {
	switch p {
	case NextNone:
		return "NoNext"
	case NextAvailable:
		return "HasNext"
	case NextPending:
		return "Loading"
	case NextError:
		return "Error"
	default:
		return fmt.Sprintf("NextPhase(%d)", int(p))
	}
}

// NextState is the next-page sub-state of a PagedList.
type NextState struct {
	Phase NextPhase
	Err   error
}

func NoNext() NextState      { return NextState{Phase: NextNone} }
func HasNext() NextState     { return NextState{Phase: NextAvailable} }
func NextLoading() NextState { return NextState{Phase: NextPending} }

// NextFailed returns the error sub-state. Retrying is allowed from it.
func NextFailed(err error) NextState {
	if err == nil {
		err = result.ErrUnknown
	}
	return NextState{Phase: NextError, Err: err}
}

func (n NextState) String() string {
	if n.Phase == NextError {
		return fmt.Sprintf("Error(%v)", n.Err)
	}
	return n.Phase.String()
}

// Page is one page of a cursor-paginated fetch.
type Page[T any] struct {
	Items   []T
	HasMore bool
}

// PagedList is the Success payload of a paginated load: the accumulated
// items plus the state of the next-page request.
type PagedList[T any] struct {
	Items []T
	Next  NextState
}

// NewPagedList builds a list from the first page.
func NewPagedList[T any](page Page[T]) PagedList[T] {
	return PagedList[T]{}.AppendPage(page)
}

// Last returns the final item, the cursor source for the next page.
func (p PagedList[T]) Last() (T, bool) {
	if len(p.Items) == 0 {
		var zero T
		return zero, false
	}
	return p.Items[len(p.Items)-1], true
}

// CanLoadNext reports whether a next-page request may start now.
func (p PagedList[T]) CanLoadNext() bool {
	if len(p.Items) == 0 {
		return false
	}
	return p.Next.Phase == NextAvailable || p.Next.Phase == NextError
}

// BeginNext moves the next-page state to Loading. Returns false, and p
// unchanged, if CanLoadNext does not hold.
func (p PagedList[T]) BeginNext() (PagedList[T], bool) {
	if !p.CanLoadNext() {
		return p, false
	}
	p.Next = NextLoading()
	return p, true
}

// AppendPage appends a fetched page. An empty page ends pagination even if
// the backend claims more, so a misbehaving cursor cannot spin forever.
func (p PagedList[T]) AppendPage(page Page[T]) PagedList[T] {
	items := make([]T, 0, len(p.Items)+len(page.Items))
	items = append(items, p.Items...)
	items = append(items, page.Items...)

	next := HasNext()
	if len(page.Items) == 0 || !page.HasMore {
		next = NoNext()
	}
	return PagedList[T]{Items: items, Next: next}
}

// FailNext records a failed next-page request. Items are kept.
func (p PagedList[T]) FailNext(err error) PagedList[T] {
	p.Next = NextFailed(err)
	return p
}

func (p PagedList[T]) String() string {
	return fmt.Sprintf("items=%d next=%s", len(p.Items), p.Next)
}

// NextSpec describes a paged list inside a controller's state S. C is the
// cursor type derived from the last item.
type NextSpec[S, T, C any] struct {
	Op string

	// Get returns the list, or false when its load state is not Success.
	Get    func(S) (PagedList[T], bool)
	Set    func(S, PagedList[T]) S
	Cursor func(last T) C
	Fetch  func(ctx context.Context, cursor C) result.Result[Page[T]]

	// OnError runs on the loop after a failed next-page request.
	OnError func(S, error) S
}

// LoadNext requests the page after the last loaded item. It is a no-op
// unless the list is loaded, non-empty and its next state is HasNext or
// Error. Returns whether a request was started.
//
// The completion appends to whatever items the list holds when it lands and
// is dropped if the list is no longer waiting on this request.
func LoadNext[S, T, C any](c *Controller[S], spec NextSpec[S, T, C]) bool {
	cur := c.State()
	list, ok := spec.Get(cur)
	if !ok {
		return false
	}
	last, ok := list.Last()
	if !ok {
		return false
	}
	next, ok := list.BeginNext()
	if !ok {
		return false
	}
	cursor := spec.Cursor(last)
	c.Set(spec.Set(cur, next))

	c.Launch(spec.Op, func(ctx context.Context) Reducer[S] {
		res := spec.Fetch(ctx, cursor)
		return func(s S) (S, bool) {
			list, ok := spec.Get(s)
			if !ok || list.Next.Phase != NextPending {
				return s, false
			}
			page, err := res.Get()
			if err != nil {
				s = spec.Set(s, list.FailNext(err))
				if spec.OnError != nil {
					s = spec.OnError(s, err)
				}
				return s, true
			}
			return spec.Set(s, list.AppendPage(page)), true
		}
	})
	return true
}
