package services

import (
	"context"
	"strings"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/adapters/persistence/repositories"
	"libralend/internal/core/domain"

	"gorm.io/gorm"
)

// MemberService handles membership business logic
type MemberService struct {
	db         *gorm.DB
	memberRepo *repositories.MemberRepository
}

// NewMemberService creates a new member service
func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{
		db:         db,
		memberRepo: repositories.NewMemberRepository(db),
	}
}

// CreateMemberInput represents create member input
type CreateMemberInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Create creates a new member with zero outstanding debt
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*models.Member, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	if name == "" {
		return nil, domain.ErrMissingName
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrMissingEmail
	}

	member := &models.Member{
		Name:            name,
		Email:           email,
		OutstandingDebt: 0,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// GetByID gets a member by ID
func (s *MemberService) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

// UpdateMemberInput represents partial member update input
type UpdateMemberInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Update updates a member's name and email. Debt is owned by the lending
// engine and is not writable here.
func (s *MemberService) Update(ctx context.Context, id uint, input *UpdateMemberInput) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.ErrMissingName
		}
		member.Name = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, domain.ErrMissingEmail
		}
		member.Email = email
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// Delete deletes a member. Refused while any debt is outstanding,
// regardless of who requests the deletion, and refused while the member
// still holds borrowed books: the loaned copies could otherwise never
// come back to stock. Guards and delete run in one transaction.
func (s *MemberService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		memberRepo := repositories.NewMemberRepository(tx)

		member, err := memberRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if member.OutstandingDebt > 0 {
			return &domain.OutstandingDebtError{MemberID: id, Debt: member.OutstandingDebt}
		}

		active, err := repositories.NewTransactionRepository(tx).CountActiveByMember(ctx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return &domain.MemberActiveLoansError{MemberID: id, ActiveLoans: active}
		}

		return memberRepo.Delete(ctx, id)
	})
}

// MemberListOutput represents paginated member list output
type MemberListOutput struct {
	Members    []*models.Member `json:"members"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// List lists members
func (s *MemberService) List(ctx context.Context, page, limit int) (*MemberListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit
	members, total, err := s.memberRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &MemberListOutput{
		Members:    members,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
