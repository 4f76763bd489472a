package ledger

import "context"

// Tx is a single-user unit of work. Mutations staged through a Tx become
// visible only if the function passed to Store.Update returns nil; an error
// discards every staged change. Readers never observe a half-applied order.
type Tx interface {
	// Cash returns the user's available (uninvested) cash.
	Cash() float64
	// SetCash stages a new available-cash balance.
	SetCash(cash float64)
	// Position returns the open position for symbol, if any.
	Position(symbol string) (Position, bool)
	// Positions returns all open positions, staged changes included.
	Positions() []Position
	// PutPosition stages a position create or update.
	PutPosition(pos Position)
	// DeletePosition stages removal of the position for symbol.
	DeletePosition(symbol string)
	// AppendOrder stages an entry in the order log.
	AppendOrder(o Order)
}

// Store persists one portfolio per user: available cash, open positions
// keyed by symbol, and the append-only order log. Implementations must
// serialize Update calls per user and lazily provision a portfolio with
// InitialCash the first time a user is touched.
type Store interface {
	// Update runs fn inside a per-user atomic unit of work.
	Update(ctx context.Context, userID uint, fn func(tx Tx) error) error

	// Snapshot returns the user's cash and open positions.
	Snapshot(ctx context.Context, userID uint) (cash float64, positions []Position, err error)

	// Orders returns up to limit orders, newest first, skipping offset,
	// along with the total number of orders for the user.
	Orders(ctx context.Context, userID uint, limit, offset int) ([]Order, int64, error)

	// Reset clears all positions and orders and restores cash to
	// InitialCash. Idempotent.
	Reset(ctx context.Context, userID uint) error
}
