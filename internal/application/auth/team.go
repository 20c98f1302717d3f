package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

const invitationTokenBytes = 32

// TeamUseCase invitaciones y miembros de la empresa.
type TeamUseCase struct {
	userRepo   repository.UserRepository
	inviteRepo repository.InvitationRepository
	auth       *AuthUseCase
	log        zerolog.Logger
}

// NewTeamUseCase construye el caso de uso. auth emite el token al aceptar una invitación.
func NewTeamUseCase(
	userRepo repository.UserRepository,
	inviteRepo repository.InvitationRepository,
	auth *AuthUseCase,
	log zerolog.Logger,
) *TeamUseCase {
	return &TeamUseCase{
		userRepo:   userRepo,
		inviteRepo: inviteRepo,
		auth:       auth,
		log:        log.With().Str("component", "team").Logger(),
	}
}

// Invite crea una invitación válida por 7 días. Solo owner y admin pueden invitar.
// Rechaza emails ya registrados (ErrEmailAlreadyExists) o con invitación pendiente (ErrDuplicate).
func (uc *TeamUseCase) Invite(ctx context.Context, companyID, inviterID, inviterRole string, in dto.InviteRequest) (*dto.InvitationResponse, error) {
	if inviterRole != entity.RoleOwner && inviterRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Invalid("email", "email inválido")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if role == entity.RoleOwner || !entity.IsValidRole(role) {
		return nil, domain.Invalid("role", "debe ser admin, manager o employee")
	}
	department := in.Department
	if department == "" {
		department = entity.DepartmentGeneral
	}
	if !entity.IsValidDepartment(department) {
		return nil, domain.Invalid("department", "departamento inválido")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	pending, err := uc.inviteRepo.GetPendingByEmail(ctx, companyID, email)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if pending != nil && !pending.IsExpired(now) {
		return nil, domain.ErrDuplicate
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	perms := entity.DefaultPermissions(role, department)
	if in.Permissions != nil {
		perms = entity.Permissions{
			Tasks:   in.Permissions.Tasks,
			Stock:   in.Permissions.Stock,
			Finance: in.Permissions.Finance,
			HR:      in.Permissions.HR,
		}
	}
	inv := &entity.Invitation{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Email:       email,
		InvitedBy:   inviterID,
		Role:        role,
		Department:  department,
		Permissions: perms,
		Token:       token,
		Status:      entity.InvitationStatusPending,
		ExpiresAt:   now.Add(entity.InvitationTTL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.inviteRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("invitation_id", inv.ID).Str("role", role).Msg("invitación creada")
	resp := toInvitationResponse(inv)
	resp.Token = inv.Token
	return resp, nil
}

// AcceptInvite crea el usuario con el rol, departamento y permisos de la invitación.
// Token desconocido → ErrNotFound; ya usada → ErrConflict; vencida → ErrInvitationExpired
// (la invitación queda en estado expired).
func (uc *TeamUseCase) AcceptInvite(ctx context.Context, in dto.AcceptInviteRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.Token) == "" {
		return nil, domain.Invalid("token", "es requerido")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "es requerido")
	}
	inv, err := uc.inviteRepo.GetByToken(ctx, in.Token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	switch {
	case inv.Status == entity.InvitationStatusExpired:
		return nil, domain.ErrInvitationExpired
	case inv.Status != entity.InvitationStatusPending:
		return nil, domain.ErrConflict
	case inv.IsExpired(now):
		inv.Status = entity.InvitationStatusExpired
		inv.UpdatedAt = now
		if err := uc.inviteRepo.Update(ctx, inv); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvitationExpired
	}
	if err := validateCredentials(inv.Email, in.Password); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByEmail(ctx, inv.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    inv.CompanyID,
		Email:        inv.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         inv.Role,
		Department:   inv.Department,
		Permissions:  inv.Permissions,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	inv.Status = entity.InvitationStatusAccepted
	inv.UpdatedAt = now
	if err := uc.inviteRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", inv.CompanyID).Str("user_id", user.ID).Msg("invitación aceptada")
	return uc.auth.session(user)
}

// Members usuarios de la empresa.
func (uc *TeamUseCase) Members(ctx context.Context, companyID string) ([]dto.UserResponse, error) {
	list, err := uc.userRepo.ListByCompany(ctx, companyID, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// PendingInvitations invitaciones pendientes de la empresa (sin token).
func (uc *TeamUseCase) PendingInvitations(ctx context.Context, companyID string) ([]dto.InvitationResponse, error) {
	list, err := uc.inviteRepo.ListPending(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvitationResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInvitationResponse(inv))
	}
	return out, nil
}

func newToken() (string, error) {
	b := make([]byte, invitationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func toInvitationResponse(inv *entity.Invitation) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:          inv.ID,
		Email:       inv.Email,
		Role:        inv.Role,
		Department:  inv.Department,
		Permissions: toPermissionsDTO(inv.Permissions),
		Status:      inv.Status,
		InvitedBy:   inv.InvitedBy,
		ExpiresAt:   inv.ExpiresAt,
		CreatedAt:   inv.CreatedAt,
	}
}
