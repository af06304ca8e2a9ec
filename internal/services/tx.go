package services

import (
	"context"

	"pharmacore/pkg/database"
)

// TxRunner is the transaction boundary the workflows run on. Implemented
// by *database.DB; faked in tests.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx database.DBTX) error) error
}
