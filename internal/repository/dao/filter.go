package dao

import "time"

// RecordFilter narrows purchase/sale list queries. A nil UserIDs slice means
// no owner restriction (admin viewing all shops).
type RecordFilter struct {
	UserIDs     []uint
	From        *time.Time
	To          *time.Time
	PaymentType string // "", "all", "paid" or "borrow"
	Offset      int
	Limit       int
}

func (f RecordFilter) wantsPaymentType() bool {
	return f.PaymentType != "" && f.PaymentType != "all"
}
