package ledger

import (
	"context"
	"time"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/uuid"
)

// Ledger executes orders against a Store. All validation and arithmetic is
// done here; the Store only provides atomic, per-user persistence.
type Ledger struct {
	store Store
	now   func() time.Time
}

// New creates a Ledger over the given store.
func New(store Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// PlaceOrder validates and synchronously executes an order, atomically
// applying its effects to cash, the position for the symbol, and the order
// log. Validation failures are returned as AppErrors and leave the
// portfolio byte-for-byte unchanged; an order is never partially applied.
func (l *Ledger) PlaceOrder(ctx context.Context, userID uint, req OrderRequest) (*Confirmation, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	switch req.Type {
	case OrderTypeLimit:
		if req.Price <= 0 {
			return nil, apperrors.ErrInvalidLimitPrice
		}
	case OrderTypeMarket:
		// The caller resolves the market price before invoking the ledger.
		if req.Price <= 0 {
			return nil, apperrors.ErrQuoteUnavailable
		}
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "order type must be MARKET or LIMIT")
	}

	gross := float64(req.Quantity) * req.Price
	fee := Brokerage(gross)

	order := Order{
		ID:        uuid.New(),
		Symbol:    req.Symbol,
		Name:      req.Name,
		Side:      req.Side,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Status:    OrderStatusExecuted,
		Timestamp: l.now().UTC(),
		Brokerage: fee,
	}

	var fn func(tx Tx) error
	switch req.Side {
	case SideBuy:
		order.TotalAmount = gross + fee
		fn = func(tx Tx) error { return applyBuy(tx, req, gross, fee, order) }
	case SideSell:
		order.TotalAmount = gross - fee
		fn = func(tx Tx) error { return applySell(tx, req, gross, fee, order) }
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "order side must be BUY or SELL")
	}

	if err := l.store.Update(ctx, userID, fn); err != nil {
		return nil, err
	}

	return &Confirmation{
		OrderID:       order.ID,
		ExecutedPrice: req.Price,
		TotalAmount:   order.TotalAmount,
	}, nil
}

// applyBuy debits cash for gross + fee and folds the purchase into the
// position at a weighted-average cost basis.
func applyBuy(tx Tx, req OrderRequest, gross, fee float64, order Order) error {
	totalCost := gross + fee
	cash := tx.Cash()
	if totalCost > cash {
		return apperrors.ErrInsufficientFunds
	}

	if pos, ok := tx.Position(req.Symbol); ok {
		pos.Quantity += req.Quantity
		pos.InvestedValue += gross
		pos.AvgPrice = pos.InvestedValue / float64(pos.Quantity)
		pos.CurrentPrice = req.Price
		tx.PutPosition(pos)
	} else {
		tx.PutPosition(Position{
			Symbol:        req.Symbol,
			Name:          req.Name,
			Quantity:      req.Quantity,
			AvgPrice:      req.Price,
			InvestedValue: gross,
			CurrentPrice:  req.Price,
		})
	}

	tx.SetCash(cash - totalCost)
	tx.AppendOrder(order)
	return nil
}

// applySell credits cash with gross − fee and reduces the position's
// invested value proportionally, so the cost basis per remaining share is
// unchanged by the sale. Realized P&L stays implicit in the cash delta.
func applySell(tx Tx, req OrderRequest, gross, fee float64, order Order) error {
	pos, ok := tx.Position(req.Symbol)
	if !ok || pos.Quantity < req.Quantity {
		return apperrors.ErrInsufficientShares
	}

	proceeds := gross - fee
	newQuantity := pos.Quantity - req.Quantity

	if newQuantity == 0 {
		tx.DeletePosition(req.Symbol)
	} else {
		soldInvested := float64(req.Quantity) / float64(pos.Quantity) * pos.InvestedValue
		pos.Quantity = newQuantity
		pos.InvestedValue -= soldInvested
		pos.CurrentPrice = req.Price
		tx.PutPosition(pos)
	}

	tx.SetCash(tx.Cash() + proceeds)
	tx.AppendOrder(order)
	return nil
}

// Reset clears the user's positions and order history and restores the
// cash balance to InitialCash.
func (l *Ledger) Reset(ctx context.Context, userID uint) error {
	return l.store.Reset(ctx, userID)
}
