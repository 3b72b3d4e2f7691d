package repository

import (
	"context"
	"fmt"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/repository/dao"
)

var (
	ErrUserNameExists = dao.ErrUserNameExists
	ErrUserNotFound   = dao.ErrUserNotFound
	ErrAdminExists    = dao.ErrAdminExists
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User, worker *dao.Worker) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByName(ctx context.Context, name string) (dao.User, error)
	FindWorkerIDsByShop(ctx context.Context, shopID string) ([]uint, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

// Create persists the user and, for workers, the linked employment profile.
func (r *UserRepository) Create(ctx context.Context, user domain.User, worker *domain.Worker) (domain.User, error) {
	var daoWorker *dao.Worker
	if worker != nil {
		daoWorker = &dao.Worker{
			Name:     worker.Name,
			Phone:    worker.Phone,
			Position: worker.Position,
			Salary:   worker.Salary,
			JoinDate: worker.JoinDate,
		}
	}

	created, err := r.dao.Insert(ctx, dao.User{
		Name:     user.Name,
		Password: user.Password,
		Role:     user.Role,
		ShopID:   user.ShopID,
	}, daoWorker)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (domain.User, error) {
	found, err := r.dao.FindByName(ctx, name)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) WorkerIDsByShop(ctx context.Context, shopID string) ([]uint, error) {
	ids, err := r.dao.FindWorkerIDsByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindWorkerIDsByShop -> %w", err)
	}

	return ids, nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Password:  u.Password,
		Role:      u.Role,
		ShopID:    u.ShopID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
