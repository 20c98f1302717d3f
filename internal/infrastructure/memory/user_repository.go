package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. El email es único en todo el almacén.
type UserRepo struct{ view }

// NewUserRepository construye el repo sobre el almacén.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{view{s: s}} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	defer r.write()()
	if r.emailTaken(u.Email, u.ID) {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.read()()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.read()()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	defer r.write()()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) ListByCompany(_ context.Context, companyID string, activeOnly bool) ([]*entity.User, error) {
	defer r.read()()
	out := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if u.CompanyID != companyID || (activeOnly && !u.IsActive()) {
			continue
		}
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *UserRepo) emailTaken(email, exceptID string) bool {
	for id, u := range r.s.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}
