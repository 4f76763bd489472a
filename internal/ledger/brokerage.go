package ledger

// Brokerage fee schedule: a flat rate on the gross order amount with a
// floor, matching a discount broker's delivery pricing.
const (
	BrokerageRate = 0.0003
	MinBrokerage  = 20
)

// Brokerage returns the fee charged on an order with the given gross
// amount: max(grossAmount × BrokerageRate, MinBrokerage).
func Brokerage(grossAmount float64) float64 {
	fee := grossAmount * BrokerageRate
	if fee < MinBrokerage {
		return MinBrokerage
	}
	return fee
}
