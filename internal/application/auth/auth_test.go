package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-erp/internal/application/auth"
	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/eventos-erp/pkg/jwt"
)

const testSecret = "auth-test-secret"

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	auth    *auth.AuthUseCase
	team    *auth.TeamUseCase
	users   *memory.UserRepo
	invites *memory.InvitationRepo
}

func newFixture() *fixture {
	s := memory.NewStore()
	users := memory.NewUserRepository(s)
	invites := memory.NewInvitationRepository(s)
	a := auth.NewAuthUseCase(users, memory.NewCompanyRepository(s),
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "eventos-erp-test"}, zerolog.Nop())
	return &fixture{
		auth:    a,
		team:    auth.NewTeamUseCase(users, invites, a, zerolog.Nop()),
		users:   users,
		invites: invites,
	}
}

func (f *fixture) registerOwner(t *testing.T) *dto.LoginResponse {
	t.Helper()
	resp, err := f.auth.Register(context.Background(), dto.RegisterRequest{
		Email: "Dueno@Eventos.com", Password: "secreto1", Name: "Dueño", CompanyName: "Eventos Sur",
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Register / Login / Profile
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaEmpresaYOwner(t *testing.T) {
	f := newFixture()
	resp := f.registerOwner(t)

	assert.Equal(t, entity.RoleOwner, resp.User.Role)
	assert.Equal(t, "dueno@eventos.com", resp.User.Email, "el email se normaliza")
	assert.True(t, resp.User.Permissions.HR && resp.User.Permissions.Finance && resp.User.Permissions.Stock)

	id, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id.UserID)
	assert.Equal(t, resp.User.CompanyID, id.CompanyID)
	assert.Equal(t, entity.RoleOwner, id.Role)
}

func TestRegister_EnEmpresaExistenteEntraComoEmployee(t *testing.T) {
	f := newFixture()
	owner := f.registerOwner(t)

	resp, err := f.auth.Register(context.Background(), dto.RegisterRequest{
		Email: "vendedor@eventos.com", Password: "secreto1", Name: "Vendedor",
		CompanyID: owner.User.CompanyID, Role: entity.RoleAdmin, Department: entity.DepartmentSales,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, resp.User.Role, "el rol pedido se ignora; solo se sube por invitación")
	assert.True(t, resp.User.Permissions.Finance)
	assert.False(t, resp.User.Permissions.HR)
}

func TestRegister_Errores(t *testing.T) {
	f := newFixture()
	f.registerOwner(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, dto.RegisterRequest{Email: "dueno@eventos.com", Password: "secreto1", Name: "x", CompanyName: "y"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = f.auth.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "123", Name: "x", CompanyName: "y"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "password corto")

	_, err = f.auth.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "secreto1", Name: "x", CompanyID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.auth.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "secreto1", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin empresa")
}

func TestLogin(t *testing.T) {
	f := newFixture()
	owner := f.registerOwner(t)
	ctx := context.Background()

	resp, err := f.auth.Login(ctx, dto.LoginRequest{Email: "DUENO@eventos.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "dueno@eventos.com", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "nadie@eventos.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	u, err := f.users.GetByID(ctx, owner.User.ID)
	require.NoError(t, err)
	u.Status = entity.UserStatusInactive
	require.NoError(t, f.users.Update(ctx, u))
	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "dueno@eventos.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

func TestProfile(t *testing.T) {
	f := newFixture()
	owner := f.registerOwner(t)

	p, err := f.auth.Profile(context.Background(), owner.User.ID)
	require.NoError(t, err)
	require.NotNil(t, p.Company)
	assert.Equal(t, "Eventos Sur", p.Company.Name)

	_, err = f.auth.Profile(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invitaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestInviteYAccept(t *testing.T) {
	f := newFixture()
	owner := f.registerOwner(t)
	ctx := context.Background()

	inv, err := f.team.Invite(ctx, owner.User.CompanyID, owner.User.ID, entity.RoleOwner, dto.InviteRequest{
		Email: "gerente@eventos.com", Role: entity.RoleManager, Department: entity.DepartmentStock,
	})
	require.NoError(t, err)
	require.Len(t, inv.Token, 64)
	assert.Equal(t, entity.InvitationStatusPending, inv.Status)

	_, err = f.team.Invite(ctx, owner.User.CompanyID, owner.User.ID, entity.RoleOwner, dto.InviteRequest{Email: "gerente@eventos.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "ya hay una invitación pendiente")

	pending, err := f.team.PendingInvitations(ctx, owner.User.CompanyID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Empty(t, pending[0].Token, "el listado no expone el token")

	session, err := f.team.AcceptInvite(ctx, dto.AcceptInviteRequest{Token: inv.Token, Name: "Gerente", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, session.User.Role)
	assert.Equal(t, owner.User.CompanyID, session.User.CompanyID)
	assert.True(t, session.User.Permissions.Stock)

	_, err = f.team.AcceptInvite(ctx, dto.AcceptInviteRequest{Token: inv.Token, Name: "Otra vez", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrConflict, "una invitación aceptada no se reutiliza")

	members, err := f.team.Members(ctx, owner.User.CompanyID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestInvite_Restricciones(t *testing.T) {
	f := newFixture()
	owner := f.registerOwner(t)
	ctx := context.Background()

	_, err := f.team.Invite(ctx, owner.User.CompanyID, "x", entity.RoleManager, dto.InviteRequest{Email: "a@b.com"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.team.Invite(ctx, owner.User.CompanyID, owner.User.ID, entity.RoleAdmin, dto.InviteRequest{Email: "a@b.com", Role: entity.RoleOwner})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no se invita a otro owner")

	_, err = f.team.Invite(ctx, owner.User.CompanyID, owner.User.ID, entity.RoleAdmin, dto.InviteRequest{Email: "dueno@eventos.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestAcceptInvite_Vencida(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	require.NoError(t, f.invites.Create(ctx, &entity.Invitation{
		ID: "inv-1", CompanyID: "c1", Email: "tarde@eventos.com", Role: entity.RoleEmployee,
		Department: entity.DepartmentGeneral, Token: "tok-vencido", Status: entity.InvitationStatusPending,
		ExpiresAt: past, CreatedAt: past.Add(-entity.InvitationTTL), UpdatedAt: past,
	}))

	_, err := f.team.AcceptInvite(ctx, dto.AcceptInviteRequest{Token: "tok-vencido", Name: "Tarde", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrInvitationExpired)

	inv, err := f.invites.GetByToken(ctx, "tok-vencido")
	require.NoError(t, err)
	assert.Equal(t, entity.InvitationStatusExpired, inv.Status, "la invitación queda marcada como vencida")

	_, err = f.team.AcceptInvite(ctx, dto.AcceptInviteRequest{Token: "desconocido", Name: "x", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
