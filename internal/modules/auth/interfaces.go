package auth

import (
	"context"

	"hotelease/internal/domain"
)

// UserRepositoryInterface covers only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, phone string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
