package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo invitaciones en memoria.
type InvitationRepo struct{ view }

// NewInvitationRepository construye el repo sobre el almacén.
func NewInvitationRepository(s *Store) *InvitationRepo { return &InvitationRepo{view{s: s}} }

func (r *InvitationRepo) Create(_ context.Context, inv *entity.Invitation) error {
	defer r.write()()
	for _, x := range r.s.invitations {
		if x.Token == inv.Token {
			return domain.ErrDuplicate
		}
	}
	r.s.invitations[inv.ID] = *inv
	return nil
}

func (r *InvitationRepo) GetByToken(_ context.Context, token string) (*entity.Invitation, error) {
	defer r.read()()
	for _, x := range r.s.invitations {
		if x.Token == token {
			return &x, nil
		}
	}
	return nil, nil
}

func (r *InvitationRepo) GetPendingByEmail(_ context.Context, companyID, email string) (*entity.Invitation, error) {
	defer r.read()()
	var found *entity.Invitation
	for _, x := range r.s.invitations {
		if x.CompanyID != companyID || x.Email != email || x.Status != entity.InvitationStatusPending {
			continue
		}
		if found == nil || x.CreatedAt.After(found.CreatedAt) {
			found = &x
		}
	}
	return found, nil
}

func (r *InvitationRepo) Update(_ context.Context, inv *entity.Invitation) error {
	defer r.write()()
	cur, ok := r.s.invitations[inv.ID]
	if !ok || cur.CompanyID != inv.CompanyID {
		return domain.ErrNotFound
	}
	cur.Status = inv.Status
	cur.UpdatedAt = inv.UpdatedAt
	r.s.invitations[inv.ID] = cur
	return nil
}

func (r *InvitationRepo) ListPending(_ context.Context, companyID string) ([]*entity.Invitation, error) {
	defer r.read()()
	out := make([]*entity.Invitation, 0)
	for _, x := range r.s.invitations {
		if x.CompanyID == companyID && x.Status == entity.InvitationStatusPending {
			out = append(out, &x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
