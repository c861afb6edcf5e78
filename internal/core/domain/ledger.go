package domain

import "time"

// EntryKind tags the variants stored in the ledger.
type EntryKind string

const (
	KindBooking EntryKind = "booking"
	KindDeposit EntryKind = "deposit"
)

const (
	BookingStatusConfirmed = "confirmed"
	DepositMethodWU        = "Western Union"
)

// LedgerEntry is one record of the append-only ledger. Implemented by *Booking
// and *Deposit only.
type LedgerEntry interface {
	Kind() EntryKind
	// Sequence is the 1-based position assigned by the store on append.
	Sequence() int
	SetSequence(n int)
	// RevenueContribution is the amount this entry adds to owner revenue.
	RevenueContribution() float64
}

// Booking embeds a copy of the property as it was when booked.
type Booking struct {
	ID        int       `json:"id" bson:"id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Property  Property  `json:"property" bson:"property"`
	Nights    int       `json:"nights" bson:"nights"`
	Total     float64   `json:"total" bson:"total"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Status    string    `json:"status" bson:"status"`
}

func (b *Booking) Kind() EntryKind              { return KindBooking }
func (b *Booking) Sequence() int                { return b.ID }
func (b *Booking) SetSequence(n int)            { b.ID = n }
func (b *Booking) RevenueContribution() float64 { return b.Total }

// Deposit records a Western Union transfer converted to PKR and paid out.
type Deposit struct {
	Seq         int       `json:"seq" bson:"seq"`
	Method      string    `json:"method" bson:"method"`
	MTCN        string    `json:"mtcn" bson:"mtcn"`
	USD         float64   `json:"usd" bson:"usd"`
	PKR         float64   `json:"pkr" bson:"pkr"`
	Rate        float64   `json:"rate" bson:"rate"`
	RateSource  string    `json:"rate_source" bson:"rate_source"`
	IBAN        string    `json:"iban" bson:"iban"`
	AccountName string    `json:"account_name" bson:"account_name"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

func (d *Deposit) Kind() EntryKind              { return KindDeposit }
func (d *Deposit) Sequence() int                { return d.Seq }
func (d *Deposit) SetSequence(n int)            { d.Seq = n }
func (d *Deposit) RevenueContribution() float64 { return d.USD }
