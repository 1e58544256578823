package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	// Card is a credit card with a monthly spend target. FixedCost captures a
	// recurring charge that posts on its own and counts toward the target, so
	// the amount the user still has to spend is the effective target.
	Card struct {
		ID            string
		Name          string
		MonthlyTarget int64
		FixedCost     int64
		Active        bool
	}

	// Transaction is a single card payment. Date is canonical YYYY-MM-DD and
	// Month is its YYYY-MM prefix, stored denormalized in the sheet.
	Transaction struct {
		ID     string
		Date   string
		Month  string
		CardID string
		Amount int64
		Item   string
	}
)

var (
	ErrEmptyCardName  = errors.New("empty card name")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrNegativeTarget = errors.New("target must not be negative")
	ErrOutOfWindow    = errors.New("date outside the allowed months")
	ErrBadDate        = errors.New("unparsable date")
	ErrUnknownCard    = errors.New("unknown card name")
)

// NewID returns a fresh opaque identifier for cards and transactions.
func NewID() string {
	return uuid.NewString()
}

// EffectiveTarget is the spend still required after the fixed recurring cost,
// floored at zero.
func (c Card) EffectiveTarget() int64 {
	t := c.MonthlyTarget - c.FixedCost
	if t < 0 {
		return 0
	}
	return t
}

func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCardName
	}
	if c.MonthlyTarget < 0 || c.FixedCost < 0 {
		return ErrNegativeTarget
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if _, err := time.Parse("2006-01-02", t.Date); err != nil {
		return ErrBadDate
	}
	if t.Month != t.Date[:7] {
		return errors.New("month does not match date")
	}
	return nil
}

// ParseActive normalizes the heterogeneous truthy values the sheet has
// accumulated over time ("TRUE", "1", "yes", ...).
func ParseActive(v string) bool {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "TRUE", "1", "YES", "Y":
		return true
	}
	return false
}
