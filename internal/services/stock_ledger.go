package services

import (
	"context"

	"pharmacore/internal/common"
	"pharmacore/internal/repositories"
)

// maxStockAdjustment bounds a single ledger adjustment so a repeated or
// malformed release cannot inflate inventory past any physical cap.
const maxStockAdjustment = 1_000_000

// StockLedger owns authoritative quantity-on-hand and its atomic
// adjustments. Build it over a transaction-scoped medicine repository to
// make adjustments part of an enclosing unit of work.
type StockLedger struct {
	medicines repositories.MedicineRepository
}

func NewStockLedger(medicines repositories.MedicineRepository) *StockLedger {
	return &StockLedger{medicines: medicines}
}

// Reserve decrements quantity-on-hand, failing with
// InsufficientStockError when the gate rejects or NotFoundError when the
// medicine does not exist. Callers must treat either as a hard stop for
// the enclosing transaction.
func (l *StockLedger) Reserve(ctx context.Context, medicineID int64, quantity int) error {
	if err := common.ValidatePositiveInteger(quantity, "quantity", maxStockAdjustment); err != nil {
		return err
	}
	return l.medicines.ReserveStock(ctx, medicineID, quantity)
}

// Release restores quantity-on-hand. It never fails on business bounds
// (restores run as compensation), only on bad input or a missing row.
func (l *StockLedger) Release(ctx context.Context, medicineID int64, quantity int) error {
	if err := common.ValidatePositiveInteger(quantity, "quantity", maxStockAdjustment); err != nil {
		return err
	}
	return l.medicines.ReleaseStock(ctx, medicineID, quantity)
}
