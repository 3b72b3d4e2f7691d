package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/repository"
	"github.com/shopkhata/shopkhata-api/internal/service"
)

type fakeUserRepo struct {
	byName   map[string]domain.User
	hasAdmin bool
	nextID   uint

	lastWorker *domain.Worker
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byName: map[string]domain.User{},
		nextID: 1,
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User, worker *domain.Worker) (domain.User, error) {
	if _, exists := r.byName[user.Name]; exists {
		return domain.User{}, repository.ErrUserNameExists
	}
	if user.Role == domain.RoleAdmin {
		if r.hasAdmin {
			return domain.User{}, repository.ErrAdminExists
		}
		r.hasAdmin = true
	}

	user.ID = r.nextID
	r.nextID++
	r.byName[user.Name] = user
	r.lastWorker = worker

	return user, nil
}

func (r *fakeUserRepo) FindByName(_ context.Context, name string) (domain.User, error) {
	user, ok := r.byName[name]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestSignup_LowercasesNameAndHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(repo)

	created, err := svc.Signup(context.Background(), domain.User{
		Name:     "  Ravi ",
		Password: "secret123",
		ShopID:   "shop-1",
	}, &domain.Worker{Position: "cashier"})
	require.NoError(t, err)

	assert.Equal(t, "ravi", created.Name)
	assert.Equal(t, domain.RoleWorker, created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))

	require.NotNil(t, repo.lastWorker)
	assert.Equal(t, "ravi", repo.lastWorker.Name)
	assert.False(t, repo.lastWorker.JoinDate.IsZero())
}

func TestSignup_DuplicateNameRejected(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Name: "ravi", Password: "secret123", ShopID: "shop-1"}, nil)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Name: "RAVI", Password: "secret123", ShopID: "shop-1"}, nil)
	require.ErrorIs(t, err, service.ErrUserNameExists)
}

func TestSignup_SecondAdminRejected(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Name: "boss", Password: "secret123", Role: domain.RoleAdmin, ShopID: "shop-1"}, nil)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Name: "boss2", Password: "secret123", Role: domain.RoleAdmin, ShopID: "shop-1"}, nil)
	require.ErrorIs(t, err, service.ErrAdminExists)
}

func TestLogin_CaseInsensitiveName(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Name: "Ravi", Password: "secret123", ShopID: "shop-1"}, nil)
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "RaVi", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ravi", user.Name)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Name: "ravi", Password: "secret123", ShopID: "shop-1"}, nil)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ravi", "wrong")
	require.ErrorIs(t, err, service.ErrWrongPassword)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := service.NewAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}
