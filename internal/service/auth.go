package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/repository"
)

var (
	ErrUserNameExists = repository.ErrUserNameExists
	ErrAdminExists    = repository.ErrAdminExists
	ErrWrongPassword  = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User, worker *domain.Worker) (domain.User, error)
	FindByName(ctx context.Context, name string) (domain.User, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Signup creates the account and, for workers, the employment profile.
// Names are stored lowercase so a login name compares case-insensitively.
func (s *AuthService) Signup(ctx context.Context, user domain.User, worker *domain.Worker) (domain.User, error) {
	user.Name = strings.ToLower(strings.TrimSpace(user.Name))
	if user.Role == "" {
		user.Role = domain.RoleWorker
	}

	hashedPassword, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = hashedPassword

	if worker != nil {
		worker.Name = user.Name
		if worker.JoinDate.IsZero() {
			worker.JoinDate = time.Now()
		}
	}

	created, err := s.repo.Create(ctx, user, worker)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, name, password string) (domain.User, error) {
	user, err := s.repo.FindByName(ctx, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByName -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
