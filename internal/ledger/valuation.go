package ledger

import "context"

// PriceLookup resolves the current market price for a symbol. The second
// return is false when market data is unavailable for the symbol.
type PriceLookup func(symbol string) (float64, bool)

// PositionView is a position enriched with derived valuation fields.
type PositionView struct {
	Position
	CurrentValue float64 `json:"current_value"`
	PnL          float64 `json:"pnl"`
	PnLPercent   float64 `json:"pnl_percent"`
}

// PortfolioView is the aggregate portfolio as presented to the user. It is
// derived on demand from cash, positions, and a price lookup; it is never
// the source of truth.
type PortfolioView struct {
	TotalValue       float64        `json:"total_value"`
	InvestedAmount   float64        `json:"invested_amount"`
	AvailableCash    float64        `json:"available_cash"`
	TotalPnL         float64        `json:"total_pnl"`
	TotalPnLPercent  float64        `json:"total_pnl_percent"`
	TodaysPnL        float64        `json:"todays_pnl"`
	TodaysPnLPercent float64        `json:"todays_pnl_percent"`
	Positions        []PositionView `json:"positions"`
	Orders           []Order        `json:"orders"`
}

// Valuate derives the aggregate portfolio metrics from cash, open
// positions, and current prices. Positions whose symbol is absent from the
// lookup are valued at their last stored price. Pure: stored positions are
// not mutated (see Refresh for the explicit overwrite).
//
// TodaysPnL is a placeholder fixed at 10% of TotalPnL; no prior-day
// snapshot exists to compute a real daily change from.
func Valuate(cash float64, positions []Position, prices PriceLookup) PortfolioView {
	view := PortfolioView{
		AvailableCash: cash,
		Positions:     make([]PositionView, 0, len(positions)),
	}

	var totalCurrent float64
	for _, pos := range positions {
		price := pos.CurrentPrice
		if prices != nil {
			if p, ok := prices(pos.Symbol); ok {
				price = p
			}
		}

		pv := PositionView{Position: pos}
		pv.CurrentPrice = price
		pv.CurrentValue = float64(pos.Quantity) * price
		pv.PnL = pv.CurrentValue - pos.InvestedValue
		if pos.InvestedValue > 0 {
			pv.PnLPercent = pv.PnL / pos.InvestedValue * 100
		}

		view.InvestedAmount += pos.InvestedValue
		totalCurrent += pv.CurrentValue
		view.Positions = append(view.Positions, pv)
	}

	view.TotalValue = cash + totalCurrent
	view.TotalPnL = totalCurrent - view.InvestedAmount
	if view.InvestedAmount > 0 {
		view.TotalPnLPercent = view.TotalPnL / view.InvestedAmount * 100
	}
	view.TodaysPnL = view.TotalPnL * 0.1
	view.TodaysPnLPercent = view.TotalPnLPercent * 0.1

	return view
}

// Refresh overwrites each stored position's current price from the price
// lookup. Symbols absent from the lookup keep their last known price.
func (l *Ledger) Refresh(ctx context.Context, userID uint, prices PriceLookup) error {
	if prices == nil {
		return nil
	}
	return l.store.Update(ctx, userID, func(tx Tx) error {
		for _, pos := range tx.Positions() {
			if p, ok := prices(pos.Symbol); ok && p != pos.CurrentPrice {
				pos.CurrentPrice = p
				tx.PutPosition(pos)
			}
		}
		return nil
	})
}
