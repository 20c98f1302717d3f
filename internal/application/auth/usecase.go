package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
	"github.com/jhoicas/eventos-erp/pkg/jwt"
)

const minPasswordLen = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
	log         zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	jwtCfg JWTConfig,
	log zerolog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		jwtCfg:      jwtCfg,
		log:         log.With().Str("component", "auth").Logger(),
	}
}

// Register crea un usuario y devuelve su token.
//
// Con company_name (y sin company_id) crea la empresa y el usuario queda como owner.
// Con company_id el usuario entra a una empresa existente como employee: los roles
// superiores solo se otorgan por invitación.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if err := validateCredentials(email, in.Password); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "es requerido")
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

	now := time.Now()
	var companyID, role string
	switch {
	case in.CompanyID != "":
		company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrNotFound
		}
		companyID, role = company.ID, entity.RoleEmployee
	case strings.TrimSpace(in.CompanyName) != "":
		company := &entity.Company{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(in.CompanyName),
			Email:     email,
			Currency:  "BRL",
			Timezone:  "America/Sao_Paulo",
			Status:    entity.CompanyStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.companyRepo.Create(ctx, company); err != nil {
			return nil, err
		}
		companyID, role = company.ID, entity.RoleOwner
	default:
		return nil, domain.Invalid("company_name", "es requerido para crear la empresa")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Department:   department,
		Permissions:  entity.DefaultPermissions(role, department),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("company_id", companyID).Str("role", role).Msg("usuario registrado")
	return uc.session(user)
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Credenciales incorrectas → ErrUnauthorized; cuenta inactiva → ErrAccountDisabled.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrAccountDisabled
	}
	return uc.session(user)
}

// Profile usuario autenticado con su empresa.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProfileResponse{User: *ToUserResponse(user)}
	if company != nil {
		out.Company = &dto.CompanyResponse{
			ID:        company.ID,
			Name:      company.Name,
			Document:  company.Document,
			Address:   company.Address,
			Phone:     company.Phone,
			Email:     company.Email,
			Currency:  company.Currency,
			Timezone:  company.Timezone,
			Status:    company.Status,
			CreatedAt: company.CreatedAt,
			UpdatedAt: company.UpdatedAt,
		}
	}
	return out, nil
}

func (uc *AuthUseCase) session(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer,
		jwt.Identity{UserID: user.ID, CompanyID: user.CompanyID, Role: user.Role},
		time.Duration(uc.jwtCfg.ExpMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

func validateCredentials(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return domain.Invalid("email", "email inválido")
	}
	if len(password) < minPasswordLen {
		return domain.Invalid("password", "debe tener al menos 6 caracteres")
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ToUserResponse convierte la entidad en DTO (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Department:  u.Department,
		Permissions: toPermissionsDTO(u.Permissions),
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toPermissionsDTO(p entity.Permissions) dto.PermissionsDTO {
	return dto.PermissionsDTO{Tasks: p.Tasks, Stock: p.Stock, Finance: p.Finance, HR: p.HR}
}
