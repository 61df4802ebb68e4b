package domain

import "errors"

// PaymentStatus is the settlement state of one commission week.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

var ErrNoShopSelected = errors.New("no shop selected")

// WeeklyCommission is one row of GET /shop_commissions/{shop_id}
// (the weekly_commissions shape).
type WeeklyCommission struct {
	WeekID          string        `json:"week_id"`
	Week            string        `json:"week"`
	TotalCommission float64       `json:"total_commission"`
	TotalPayment    float64       `json:"total_payment"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
}

// Paid reports whether the week has been settled.
func (w WeeklyCommission) Paid() bool {
	return w.PaymentStatus == PaymentPaid
}

// CommissionEntry is one value of the commissions map returned by the ledger
// shape of GET /shop_commissions/{shop_id}. The two shapes are kept apart
// until the backend contract names one of them authoritative.
type CommissionEntry struct {
	RoundID string  `json:"round_id"`
	Amount  float64 `json:"amount"`
}
