package repository

import (
	"context"
	"strings"
	"time"

	"hotelease/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Email         string    `gorm:"column:email"`
	PasswordHash  *string   `gorm:"column:password_hash"`
	FirstName     string    `gorm:"column:first_name"`
	LastName      string    `gorm:"column:last_name"`
	Phone         *string   `gorm:"column:phone"`
	Role          string    `gorm:"column:role"`
	OAuthProvider *string   `gorm:"column:o_auth_provider"`
	OAuthID       *string   `gorm:"column:o_auth_id"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var hash, phone, provider, oauthID string
	if m.PasswordHash != nil {
		hash = *m.PasswordHash
	}
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.OAuthProvider != nil {
		provider = *m.OAuthProvider
	}
	if m.OAuthID != nil {
		oauthID = *m.OAuthID
	}

	return &domain.User{
		ID:            m.ID,
		Email:         m.Email,
		PasswordHash:  hash,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Phone:         phone,
		Role:          domain.UserRole(m.Role),
		OAuthProvider: provider,
		OAuthID:       oauthID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var hash, phone, provider, oauthID *string
	if u.PasswordHash != "" {
		v := u.PasswordHash
		hash = &v
	}
	if u.Phone != "" {
		v := u.Phone
		phone = &v
	}
	if u.OAuthProvider != "" {
		v := u.OAuthProvider
		provider = &v
	}
	if u.OAuthID != "" {
		v := u.OAuthID
		oauthID = &v
	}

	return userModel{
		ID:            u.ID,
		Email:         email,
		PasswordHash:  hash,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Phone:         phone,
		Role:          string(u.Role),
		OAuthProvider: provider,
		OAuthID:       oauthID,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// UpdateProfile applies a full parameterized update of the mutable profile
// fields; callers resolve the patch against the current row first.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName, phone string) error {
	var phonePtr *string
	if phone != "" {
		phonePtr = &phone
	}
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
		"phone":      phonePtr,
		"updated_at": time.Now(),
	}).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(map[string]any{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	}).Error
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&userModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []userModel
	tx := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	out := make([]domain.User, 0, len(models))
	for _, m := range models {
		u := toDomainUser(m)
		u.PasswordHash = ""
		out = append(out, *u)
	}
	return out, total, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).Count(&cnt)
	return cnt, tx.Error
}
