package backend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

const (
	// DefaultDelay is the artificial latency of every mock call
	DefaultDelay = 1 * time.Second

	// DefaultListSize is the number of items FetchItems returns
	DefaultListSize = 20

	// DefaultPageSize is the size of a page that has more data after it
	DefaultPageSize = 20

	// DefaultLastPageSize is the size of the final, short page
	DefaultLastPageSize = 5

	// DefaultNickname is the nickname the mock starts with
	DefaultNickname = "Compose"
)

// MockOptions configures a Mock.
type MockOptions struct {
	// Delay is applied to every call before it resolves
	Delay time.Duration

	// ListSize is the number of items returned by Items
	ListSize int

	// PageSize is the size of a page followed by more data
	PageSize int

	// LastPageSize is the size of the final page
	LastPageSize int

	// Pages fixes the number of pages. Zero means each page is randomly
	// either full (more to come) or short (last page).
	Pages int

	// Fail lists operations that start out failing
	Fail map[Op]bool

	// Rand drives random paging. Nil uses a time-seeded source.
	Rand *rand.Rand
}

// DefaultMockOptions returns the sample app's behaviour: one second delay,
// every operation succeeding, random paging.
func DefaultMockOptions() MockOptions {
	return MockOptions{
		Delay:        DefaultDelay,
		ListSize:     DefaultListSize,
		PageSize:     DefaultPageSize,
		LastPageSize: DefaultLastPageSize,
	}
}

// DefaultSettings returns the settings a fresh mock starts with.
func DefaultSettings() []Setting {
	return []Setting{
		{ID: "1", Name: "Setting A", Checked: true},
		{ID: "2", Name: "Setting B", Checked: false},
		{ID: "3", Name: "Setting C", Checked: true},
	}
}

// Mock is an in-memory API with artificial latency and switchable failures.
type Mock struct {
	opts MockOptions

	mu       sync.Mutex
	fail     map[Op]bool
	settings []Setting
	nickname string
	notes    []string
	pageNum  int
	rng      *rand.Rand

	serial atomic.Int64
	calls  map[Op]*atomic.Int64
}

// NewMock creates a mock backend.
func NewMock(opts MockOptions) *Mock {
	if opts.ListSize <= 0 {
		opts.ListSize = DefaultListSize
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.LastPageSize < 0 {
		opts.LastPageSize = DefaultLastPageSize
	}

	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	m := &Mock{
		opts:     opts,
		fail:     make(map[Op]bool),
		settings: DefaultSettings(),
		nickname: DefaultNickname,
		rng:      rng,
		calls:    make(map[Op]*atomic.Int64),
	}
	for _, op := range AllOps() {
		m.calls[op] = atomic.NewInt64(0)
	}
	for op, failing := range opts.Fail {
		m.fail[op] = failing
	}
	return m
}

// SetFailing switches an operation between succeeding and failing.
func (m *Mock) SetFailing(op Op, failing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[op] = failing
}

// SetAllFailing switches every operation at once.
func (m *Mock) SetAllFailing(failing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range AllOps() {
		m.fail[op] = failing
	}
}

// Failing reports whether op is currently switched to fail.
func (m *Mock) Failing(op Op) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail[op]
}

// Calls returns how many times op has been invoked.
func (m *Mock) Calls(op Op) int64 {
	if c, ok := m.calls[op]; ok {
		return c.Load()
	}
	return 0
}

// Notes returns the notes stored so far.
func (m *Mock) Notes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.notes))
	copy(out, m.notes)
	return out
}

// begin counts the call, waits out the delay and reports a configured failure.
func (m *Mock) begin(ctx context.Context, op Op) error {
	m.calls[op].Inc()

	if m.opts.Delay > 0 {
		timer := time.NewTimer(m.opts.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	if m.Failing(op) {
		return ErrUnavailable
	}
	return nil
}

func (m *Mock) newItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		serial := m.serial.Inc()
		items[i] = Item{
			ID:   ItemID(uuid.NewString()),
			Name: fmt.Sprintf("Item %d", serial),
		}
	}
	return items
}

// Items implements API
func (m *Mock) Items(ctx context.Context) ([]Item, error) {
	if err := m.begin(ctx, OpFetchItems); err != nil {
		return nil, err
	}
	return m.newItems(m.opts.ListSize), nil
}

// ItemsAfter implements API
func (m *Mock) ItemsAfter(ctx context.Context, cursor ItemID) (Page, error) {
	if err := m.begin(ctx, pageOp(cursor)); err != nil {
		return Page{}, err
	}

	m.mu.Lock()
	if cursor == "" {
		m.pageNum = 0
	}
	m.pageNum++
	num := m.pageNum
	full := m.rng.IntN(2) == 0
	m.mu.Unlock()

	if m.opts.Pages > 0 {
		switch {
		case num < m.opts.Pages:
			full = true
		case num == m.opts.Pages:
			full = false
		default:
			return Page{Items: []Item{}, HasMore: false}, nil
		}
	}

	if full {
		return Page{Items: m.newItems(m.opts.PageSize), HasMore: true}, nil
	}
	return Page{Items: m.newItems(m.opts.LastPageSize), HasMore: false}, nil
}

// Order implements API
func (m *Mock) Order(ctx context.Context, id OrderID) (Order, error) {
	if err := m.begin(ctx, OpFetchOrder); err != nil {
		return Order{}, err
	}
	return Order{ID: id}, nil
}

// CancelOrder implements API
func (m *Mock) CancelOrder(ctx context.Context, id OrderID) error {
	return m.begin(ctx, OpCancelOrder)
}

// Settings implements API
func (m *Mock) Settings(ctx context.Context) ([]Setting, error) {
	if err := m.begin(ctx, OpFetchSettings); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Setting, len(m.settings))
	copy(out, m.settings)
	return out, nil
}

// UpdateSetting implements API. Unknown IDs are accepted and ignored.
func (m *Mock) UpdateSetting(ctx context.Context, id SettingID, checked bool) error {
	if err := m.begin(ctx, OpUpdateSetting); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.settings {
		if m.settings[i].ID == id {
			m.settings[i].Checked = checked
		}
	}
	return nil
}

// AddNote implements API
func (m *Mock) AddNote(ctx context.Context, text string) error {
	if err := m.begin(ctx, OpAddNote); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append(m.notes, text)
	return nil
}

// Nickname implements API
func (m *Mock) Nickname(ctx context.Context) (string, error) {
	if err := m.begin(ctx, OpFetchNickname); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nickname, nil
}

// UpdateNickname implements API
func (m *Mock) UpdateNickname(ctx context.Context, nickname string) error {
	if err := m.begin(ctx, OpUpdateNickname); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nickname = nickname
	return nil
}
