package commands

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPartialCascade signals that a delivery cascade stopped before every
// selected document produced a ledger record.
var ErrPartialCascade = errors.New("delivery cascade completed partially")

// PartialCascadeError reports how far a delivery cascade progressed before a
// ledger write failed. Documents that produced a record keep their delivered
// state; the ones listed in FailedDocumentIDs remain untouched and can be
// retried.
type PartialCascadeError struct {
	RecordsCreated    int
	FailedDocumentIDs []string
	Cause             error
}

func NewPartialCascadeError(recordsCreated int, failedDocumentIDs []string, cause error) *PartialCascadeError {
	return &PartialCascadeError{
		RecordsCreated:    recordsCreated,
		FailedDocumentIDs: failedDocumentIDs,
		Cause:             cause,
	}
}

func (e *PartialCascadeError) Error() string {
	return fmt.Sprintf("%v: %d records created, failed documents: [%s] (cause: %v)",
		ErrPartialCascade, e.RecordsCreated, strings.Join(e.FailedDocumentIDs, ", "), e.Cause)
}

func (e *PartialCascadeError) Unwrap() error {
	return ErrPartialCascade
}
