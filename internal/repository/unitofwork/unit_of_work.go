package unitofwork

import (
	"context"

	"propdesk-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	AssociationRepository() contract.AssociationRepository
	TargetRepository() contract.TargetRepository
}
