package contract

import (
	"context"

	"propdesk-be/internal/entity"
)

type TargetRepository interface {
	Create(ctx context.Context, target *entity.Target) error
	Exists(ctx context.Context, organizationId string, kind entity.TargetKind, id string) (bool, error)
}
