// Package store provides the two ledger.Store backends: an in-memory map
// for local single-node deployments and tests, and a GORM-backed relational
// store for the server deployment.
package store

import (
	"context"
	"sort"
	"sync"

	"papertrade/internal/ledger"
)

// userState is one user's portfolio held in memory.
type userState struct {
	mu        sync.Mutex
	cash      float64
	positions map[string]ledger.Position
	orders    []ledger.Order
}

// Memory is an in-memory ledger.Store. Each user's portfolio is guarded by
// its own mutex, so orders for one user serialize while different users
// proceed in parallel.
type Memory struct {
	mu    sync.Mutex
	users map[uint]*userState
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{users: make(map[uint]*userState)}
}

// user returns the state for userID, provisioning a fresh portfolio with
// the initial cash balance on first touch.
func (m *Memory) user(userID uint) *userState {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.users[userID]
	if !ok {
		st = &userState{
			cash:      ledger.InitialCash,
			positions: make(map[string]ledger.Position),
		}
		m.users[userID] = st
	}
	return st
}

// memTx stages mutations against a copy of the user's state, so a failed
// order leaves the live state untouched.
type memTx struct {
	cash      float64
	positions map[string]ledger.Position
	orders    []ledger.Order
}

func (t *memTx) Cash() float64     { return t.cash }
func (t *memTx) SetCash(c float64) { t.cash = c }

func (t *memTx) Position(symbol string) (ledger.Position, bool) {
	pos, ok := t.positions[symbol]
	return pos, ok
}

func (t *memTx) Positions() []ledger.Position {
	out := make([]ledger.Position, 0, len(t.positions))
	for _, pos := range t.positions {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

func (t *memTx) PutPosition(pos ledger.Position) { t.positions[pos.Symbol] = pos }
func (t *memTx) DeletePosition(symbol string)    { delete(t.positions, symbol) }
func (t *memTx) AppendOrder(o ledger.Order)      { t.orders = append(t.orders, o) }

// Update implements ledger.Store.
func (m *Memory) Update(ctx context.Context, userID uint, fn func(tx ledger.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	st := m.user(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	tx := &memTx{
		cash:      st.cash,
		positions: make(map[string]ledger.Position, len(st.positions)),
	}
	for sym, pos := range st.positions {
		tx.positions[sym] = pos
	}

	if err := fn(tx); err != nil {
		return err
	}

	st.cash = tx.cash
	st.positions = tx.positions
	st.orders = append(st.orders, tx.orders...)
	return nil
}

// Snapshot implements ledger.Store.
func (m *Memory) Snapshot(ctx context.Context, userID uint) (float64, []ledger.Position, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	st := m.user(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	positions := make([]ledger.Position, 0, len(st.positions))
	for _, pos := range st.positions {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Symbol < positions[j].Symbol })
	return st.cash, positions, nil
}

// Orders implements ledger.Store. Orders are returned newest first.
func (m *Memory) Orders(ctx context.Context, userID uint, limit, offset int) ([]ledger.Order, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	st := m.user(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	total := int64(len(st.orders))
	out := make([]ledger.Order, 0, limit)
	for i := len(st.orders) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, st.orders[i])
	}
	return out, total, nil
}

// Reset implements ledger.Store.
func (m *Memory) Reset(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	st := m.user(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.cash = ledger.InitialCash
	st.positions = make(map[string]ledger.Position)
	st.orders = nil
	return nil
}
