package repositories

import (
	"context"
	"errors"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/core/domain"

	"gorm.io/gorm"
)

// MemberRepository handles membership data access
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create creates a new member
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	err := r.db.WithContext(ctx).Create(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEmail
	}
	return err
}

// GetByID gets a member by ID
func (r *MemberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).First(&member, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// List lists members with pagination
func (r *MemberRepository) List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	r.db.WithContext(ctx).Model(&models.Member{}).Count(&total)

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&members).Error

	return members, total, err
}

// Update updates a member
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	err := r.db.WithContext(ctx).Save(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEmail
	}
	return err
}

// Delete deletes a member
func (r *MemberRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Member{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// AdjustDebt atomically changes a member's outstanding debt by delta,
// guarded so the balance never goes below zero.
func (r *MemberRepository) AdjustDebt(ctx context.Context, id uint, delta float64) (*models.Member, error) {
	res := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("id = ? AND outstanding_debt + ? >= 0", id, delta).
		Update("outstanding_debt", gorm.Expr("outstanding_debt + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrDebtWouldGoNegative
	}

	return r.GetByID(ctx, id)
}
