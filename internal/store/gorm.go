package store

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/ledger"
	"papertrade/internal/models"
)

// Gorm is a relational ledger.Store over GORM, usable with both the
// postgres and sqlite drivers. Every Update runs in a single database
// transaction, so a mid-sequence storage failure rolls the portfolio back
// to its pre-order state.
type Gorm struct {
	db *gorm.DB
}

// NewGorm creates a relational store over the given database handle.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// lockedPortfolio loads the user's portfolio row, provisioning it with the
// initial cash balance on first touch. On postgres the row is taken with
// SELECT ... FOR UPDATE, serializing concurrent orders for the same user;
// sqlite allows a single writer per database, which gives the same
// guarantee without the clause.
func lockedPortfolio(tx *gorm.DB, userID uint) (*models.Portfolio, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var portfolio models.Portfolio
	err := q.Where("user_id = ?", userID).First(&portfolio).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		portfolio = models.Portfolio{UserID: userID, AvailableCash: ledger.InitialCash}
		if err := tx.Create(&portfolio).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return &portfolio, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &portfolio, nil
}

// gormTx stages ledger mutations against rows loaded at the start of the
// transaction and flushes them on commit.
type gormTx struct {
	cash      float64
	rows      map[string]*models.Position // existing rows by symbol
	staged    map[string]ledger.Position  // current view, staged changes applied
	deleted   map[string]bool
	dirty     map[string]bool
	orders    []ledger.Order
	cashDirty bool
}

func (t *gormTx) Cash() float64 { return t.cash }

func (t *gormTx) SetCash(c float64) {
	t.cash = c
	t.cashDirty = true
}

func (t *gormTx) Position(symbol string) (ledger.Position, bool) {
	pos, ok := t.staged[symbol]
	return pos, ok
}

func (t *gormTx) Positions() []ledger.Position {
	out := make([]ledger.Position, 0, len(t.staged))
	for _, pos := range t.staged {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

func (t *gormTx) PutPosition(pos ledger.Position) {
	t.staged[pos.Symbol] = pos
	t.dirty[pos.Symbol] = true
	delete(t.deleted, pos.Symbol)
}

func (t *gormTx) DeletePosition(symbol string) {
	delete(t.staged, symbol)
	delete(t.dirty, symbol)
	t.deleted[symbol] = true
}

func (t *gormTx) AppendOrder(o ledger.Order) { t.orders = append(t.orders, o) }

// flush writes the staged mutations through the transaction handle.
func (t *gormTx) flush(tx *gorm.DB, userID uint, portfolio *models.Portfolio) error {
	for symbol := range t.dirty {
		pos := t.staged[symbol]
		if row, ok := t.rows[symbol]; ok {
			if err := tx.Model(row).Updates(map[string]interface{}{
				"quantity":       pos.Quantity,
				"avg_price":      pos.AvgPrice,
				"invested_value": pos.InvestedValue,
				"current_price":  pos.CurrentPrice,
			}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
			continue
		}
		row := positionRow(userID, pos)
		if err := tx.Create(row).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		t.rows[symbol] = row
	}

	for symbol := range t.deleted {
		row, ok := t.rows[symbol]
		if !ok {
			continue
		}
		if err := tx.Delete(row).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		delete(t.rows, symbol)
	}

	if t.cashDirty {
		if err := tx.Model(portfolio).Update("available_cash", t.cash).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
	}

	for _, o := range t.orders {
		if err := tx.Create(orderRow(userID, o)).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
	}
	return nil
}

// Update implements ledger.Store.
func (g *Gorm) Update(ctx context.Context, userID uint, fn func(tx ledger.Tx) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		portfolio, err := lockedPortfolio(tx, userID)
		if err != nil {
			return err
		}

		var rows []models.Position
		if err := tx.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		staged := &gormTx{
			cash:    portfolio.AvailableCash,
			rows:    make(map[string]*models.Position, len(rows)),
			staged:  make(map[string]ledger.Position, len(rows)),
			deleted: make(map[string]bool),
			dirty:   make(map[string]bool),
		}
		for i := range rows {
			staged.rows[rows[i].Symbol] = &rows[i]
			staged.staged[rows[i].Symbol] = positionState(&rows[i])
		}

		if err := fn(staged); err != nil {
			return err
		}
		return staged.flush(tx, userID, portfolio)
	})
}

// Snapshot implements ledger.Store.
func (g *Gorm) Snapshot(ctx context.Context, userID uint) (float64, []ledger.Position, error) {
	db := g.db.WithContext(ctx)

	var portfolio models.Portfolio
	err := db.Where("user_id = ?", userID).First(&portfolio).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		portfolio = models.Portfolio{UserID: userID, AvailableCash: ledger.InitialCash}
		if err := db.Create(&portfolio).Error; err != nil {
			return 0, nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
	} else if err != nil {
		return 0, nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var rows []models.Position
	if err := db.Where("user_id = ?", userID).Order("symbol").Find(&rows).Error; err != nil {
		return 0, nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	positions := make([]ledger.Position, 0, len(rows))
	for i := range rows {
		positions = append(positions, positionState(&rows[i]))
	}
	return portfolio.AvailableCash, positions, nil
}

// Orders implements ledger.Store.
func (g *Gorm) Orders(ctx context.Context, userID uint, limit, offset int) ([]ledger.Order, int64, error) {
	db := g.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var rows []models.Order
	if err := db.Where("user_id = ?", userID).
		Order("timestamp DESC").Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	orders := make([]ledger.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, orderState(&rows[i]))
	}
	return orders, total, nil
}

// Reset implements ledger.Store.
func (g *Gorm) Reset(ctx context.Context, userID uint) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		portfolio, err := lockedPortfolio(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Position{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Order{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if err := tx.Model(portfolio).Update("available_cash", float64(ledger.InitialCash)).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
}

func positionState(row *models.Position) ledger.Position {
	return ledger.Position{
		Symbol:        row.Symbol,
		Name:          row.Name,
		Quantity:      row.Quantity,
		AvgPrice:      row.AvgPrice,
		InvestedValue: row.InvestedValue,
		CurrentPrice:  row.CurrentPrice,
	}
}

func positionRow(userID uint, pos ledger.Position) *models.Position {
	return &models.Position{
		UserID:        userID,
		Symbol:        pos.Symbol,
		Name:          pos.Name,
		Quantity:      pos.Quantity,
		AvgPrice:      pos.AvgPrice,
		InvestedValue: pos.InvestedValue,
		CurrentPrice:  pos.CurrentPrice,
	}
}

func orderState(row *models.Order) ledger.Order {
	return ledger.Order{
		ID:          row.ID,
		Symbol:      row.Symbol,
		Name:        row.Name,
		Side:        ledger.Side(row.Side),
		Type:        ledger.OrderType(row.OrderType),
		Quantity:    row.Quantity,
		Price:       row.Price,
		Status:      ledger.OrderStatus(row.Status),
		Timestamp:   row.Timestamp,
		Brokerage:   row.Brokerage,
		TotalAmount: row.TotalAmount,
	}
}

func orderRow(userID uint, o ledger.Order) *models.Order {
	return &models.Order{
		ID:          o.ID,
		UserID:      userID,
		Symbol:      o.Symbol,
		Name:        o.Name,
		Side:        string(o.Side),
		OrderType:   string(o.Type),
		Quantity:    o.Quantity,
		Price:       o.Price,
		Status:      string(o.Status),
		Timestamp:   o.Timestamp,
		Brokerage:   o.Brokerage,
		TotalAmount: o.TotalAmount,
	}
}
