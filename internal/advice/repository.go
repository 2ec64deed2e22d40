package advice

import "context"

// Repository defines the advice-history contract.
// Service depends ONLY on this interface.
type Repository interface {
	Save(ctx context.Context, record *Record) error
	Recent(ctx context.Context, limit int) ([]*Record, error)
}
