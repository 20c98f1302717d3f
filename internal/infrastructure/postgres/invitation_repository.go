package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo implementación del puerto InvitationRepository sobre PostgreSQL.
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el adaptador de persistencia para invitaciones.
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

const invitationColumns = `id, company_id, email, invited_by, role, department, permissions, token, status, expires_at, created_at, updated_at`

func scanInvitation(s rowScanner) (*entity.Invitation, error) {
	var inv entity.Invitation
	var perms []byte
	if err := s.Scan(&inv.ID, &inv.CompanyID, &inv.Email, &inv.InvitedBy, &inv.Role, &inv.Department,
		&perms, &inv.Token, &inv.Status, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	p, err := decodePermissions(perms)
	if err != nil {
		return nil, err
	}
	inv.Permissions = p
	return &inv, nil
}

// Create persiste una invitación.
func (r *InvitationRepo) Create(ctx context.Context, inv *entity.Invitation) error {
	perms, err := encodePermissions(inv.Permissions)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		inv.ID, inv.CompanyID, inv.Email, inv.InvitedBy, inv.Role, inv.Department, perms, inv.Token,
		inv.Status, inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetByToken busca la invitación por token en cualquier empresa.
func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (*entity.Invitation, error) {
	inv, err := scanInvitation(r.q.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token = $1`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return inv, nil
}

// GetPendingByEmail la invitación pendiente más reciente para el email.
func (r *InvitationRepo) GetPendingByEmail(ctx context.Context, companyID, email string) (*entity.Invitation, error) {
	inv, err := scanInvitation(r.q.QueryRow(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE company_id = $1 AND email = $2 AND status = $3
		ORDER BY created_at DESC LIMIT 1`,
		companyID, email, entity.InvitationStatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending invitation: %w", err)
	}
	return inv, nil
}

// Update persiste el cambio de estado.
func (r *InvitationRepo) Update(ctx context.Context, inv *entity.Invitation) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE invitations SET status = $3, updated_at = $4 WHERE company_id = $1 AND id = $2`,
		inv.CompanyID, inv.ID, inv.Status, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListPending invitaciones pendientes, más recientes primero.
func (r *InvitationRepo) ListPending(ctx context.Context, companyID string) ([]*entity.Invitation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE company_id = $1 AND status = $2 ORDER BY created_at DESC`,
		companyID, entity.InvitationStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
