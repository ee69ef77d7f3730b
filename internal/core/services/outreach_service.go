package services

import (
	"context"
	"errors"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/core/domain"

	"gorm.io/gorm"
)

// OutreachService registers campaigns, partners, educational resources
// and loan guarantors. All operations are single-row inserts.
type OutreachService struct {
	db *gorm.DB
}

// NewOutreachService creates a new outreach service
func NewOutreachService(db *gorm.DB) *OutreachService {
	return &OutreachService{db: db}
}

// RegisterCampaignInput represents a new campaign
type RegisterCampaignInput struct {
	Name         string     `json:"name" validate:"required,max=100"`
	Description  string     `json:"description,omitempty"`
	TargetAmount float64    `json:"target_amount,omitempty" validate:"omitempty,gte=0"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// RegisterCampaign inserts an active campaign
func (s *OutreachService) RegisterCampaign(ctx context.Context, input *RegisterCampaignInput) (*models.Campaign, error) {
	campaign := &models.Campaign{
		Name:         input.Name,
		Description:  input.Description,
		TargetAmount: input.TargetAmount,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       "active",
	}
	if err := s.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return nil, err
	}
	return campaign, nil
}

// ListCampaigns lists campaigns newest first
func (s *OutreachService) ListCampaigns(ctx context.Context) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&campaigns).Error
	return campaigns, err
}

// RegisterPartnerInput represents a new partner organization
type RegisterPartnerInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	PartnerType  string `json:"partner_type,omitempty" validate:"omitempty,max=50"`
	ContactEmail string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone,omitempty" validate:"omitempty,max=20"`
}

// RegisterPartner inserts an active partner
func (s *OutreachService) RegisterPartner(ctx context.Context, input *RegisterPartnerInput) (*models.Partner, error) {
	partner := &models.Partner{
		Name:         input.Name,
		PartnerType:  input.PartnerType,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Status:       "active",
	}
	if err := s.db.WithContext(ctx).Create(partner).Error; err != nil {
		return nil, err
	}
	return partner, nil
}

// RegisterResourceInput represents a new member education resource
type RegisterResourceInput struct {
	Title       string `json:"title" validate:"required,max=150"`
	Category    string `json:"category,omitempty" validate:"omitempty,max=50"`
	URL         string `json:"url,omitempty" validate:"omitempty,url"`
	Description string `json:"description,omitempty"`
}

// RegisterResource inserts a resource
func (s *OutreachService) RegisterResource(ctx context.Context, input *RegisterResourceInput) (*models.Resource, error) {
	resource := &models.Resource{
		Title:       input.Title,
		Category:    input.Category,
		URL:         input.URL,
		Description: input.Description,
	}
	if err := s.db.WithContext(ctx).Create(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

// RegisterGuarantorInput represents a member backing a loan
type RegisterGuarantorInput struct {
	LoanID            uint    `json:"loan_id" validate:"required"`
	GuarantorMemberID uint    `json:"guarantor_member_id" validate:"required"`
	GuaranteedAmount  float64 `json:"guaranteed_amount" validate:"required,gt=0"`
}

// RegisterGuarantor inserts an active guarantor record after checking
// the loan and backing member exist.
func (s *OutreachService) RegisterGuarantor(ctx context.Context, input *RegisterGuarantorInput) (*models.Guarantor, error) {
	var loan models.Loan
	if err := s.db.WithContext(ctx).First(&loan, input.LoanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	var member models.Member
	if err := s.db.WithContext(ctx).First(&member, input.GuarantorMemberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	guarantor := &models.Guarantor{
		LoanID:            loan.ID,
		GuarantorMemberID: member.ID,
		GuaranteedAmount:  input.GuaranteedAmount,
		Status:            "active",
	}
	if err := s.db.WithContext(ctx).Create(guarantor).Error; err != nil {
		return nil, err
	}
	return guarantor, nil
}
