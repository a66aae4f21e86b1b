package shipment

import (
	"errors"
	"strings"
	"time"

	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrReasonIsRequired is returned when a fiscal action is created without a reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason")

	// ErrFiscalActionIsNotConstructed is returned when using an improperly
	// initialized FiscalAction.
	ErrFiscalActionIsNotConstructed = errors.New("FiscalAction must be created via NewFiscalAction constructor")
)

// FiscalAction is the canonical retention record: a customs or tax hold that
// blocks further movement of a shipment or of a single document until the
// fiscal matter is resolved. The same record type is attached at either
// level, so there is exactly one representation of a hold regardless of
// which entity is the unit of retention.
//
// Only the reason is mandatory. The amount tolerates both "." and ","
// decimal separators on input (see ParseAmount) and defaults to zero when
// unparseable.
//
// FiscalAction is an immutable value object; editing a hold means replacing
// the record on its owner.
type FiscalAction struct {
	// actionNumber is the fiscal authority's reference, when known
	actionNumber string
	// reason states why the hold was placed (mandatory)
	reason string
	// amount is the sum due to release the hold
	amount decimal.Decimal
	// paymentDate is when the amount was or will be paid
	paymentDate *time.Time
	// releaseDate is when the hold was or will be lifted
	releaseDate *time.Time
	// notes carries free-text remarks
	notes string

	guard guard.ConstructorGuard
}

// NewFiscalAction creates a retention record. The reason is mandatory; all
// other fields are optional.
func NewFiscalAction(
	actionNumber string,
	reason string,
	amount decimal.Decimal,
	paymentDate *time.Time,
	releaseDate *time.Time,
	notes string,
) (FiscalAction, error) {
	if strings.TrimSpace(reason) == "" {
		return FiscalAction{}, ErrReasonIsRequired
	}

	return FiscalAction{
		actionNumber: actionNumber,
		reason:       reason,
		amount:       amount,
		paymentDate:  paymentDate,
		releaseDate:  releaseDate,
		notes:        notes,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// ParseAmount converts user-entered text into a monetary amount, accepting
// either "." or "," as the decimal separator. Unparseable input yields zero
// rather than an error: an unreadable amount must never block capturing the
// hold itself.
func ParseAmount(raw string) decimal.Decimal {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if normalized == "" {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// Validate ensures the FiscalAction was created through NewFiscalAction.
func (f FiscalAction) Validate() error {
	return f.guard.Validate(ErrFiscalActionIsNotConstructed)
}

// ActionNumber returns the fiscal authority's reference, empty if unknown.
func (f FiscalAction) ActionNumber() string {
	return f.actionNumber
}

// Reason returns why the hold was placed.
func (f FiscalAction) Reason() string {
	return f.reason
}

// Amount returns the sum due to release the hold.
func (f FiscalAction) Amount() decimal.Decimal {
	return f.amount
}

// PaymentDate returns when the amount was or will be paid, nil if unset.
func (f FiscalAction) PaymentDate() *time.Time {
	return f.paymentDate
}

// ReleaseDate returns when the hold was or will be lifted, nil if unset.
func (f FiscalAction) ReleaseDate() *time.Time {
	return f.releaseDate
}

// Notes returns free-text remarks attached to the hold.
func (f FiscalAction) Notes() string {
	return f.notes
}
