package repository

import (
	"context"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// InvitationRepository define el puerto de persistencia para Invitation (DIP).
type InvitationRepository interface {
	Create(ctx context.Context, inv *entity.Invitation) error
	GetByToken(ctx context.Context, token string) (*entity.Invitation, error)
	GetPendingByEmail(ctx context.Context, companyID, email string) (*entity.Invitation, error)
	Update(ctx context.Context, inv *entity.Invitation) error
	ListPending(ctx context.Context, companyID string) ([]*entity.Invitation, error)
}
