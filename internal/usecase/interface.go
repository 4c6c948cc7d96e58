package usecase

import (
	"context"

	"dsa-reconciler/internal/schema"
	"dsa-reconciler/internal/tabular"
)

// TableRepository defines the interface for loading source datasets.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go TableRepository
type TableRepository interface {
	LoadDataset(ctx context.Context, ds schema.Dataset, path string) (*tabular.Table, error)
}
