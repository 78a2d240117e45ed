package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundraiser/internal/model"
)

// summaryColumns is the fixed listing projection; the full description stays out.
const summaryColumns = "id, title, creator_name, location, short_description, goal, raised, backers, days_left, organization_type, image, created_at"

// CampaignRepository defines campaign persistence operations.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *model.Campaign) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error)
	ListActive(ctx context.Context) ([]model.CampaignSummary, error)
	// AddDonation folds a donation into the campaign's running totals with a
	// single atomic UPDATE; daysLeft rides along because every write
	// recomputes it. Returns gorm.ErrRecordNotFound if no row matched.
	AddDonation(ctx context.Context, id uuid.UUID, amount decimal.Decimal, daysLeft int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new campaign repository.
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

// Create creates a new campaign.
func (r *campaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

// FindByID finds a campaign by ID.
func (r *campaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// ListActive lists all active campaigns projected to their summary shape.
func (r *campaignRepository) ListActive(ctx context.Context) ([]model.CampaignSummary, error) {
	var summaries []model.CampaignSummary
	if err := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Select(summaryColumns).
		Where("is_active = ?", true).
		Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// AddDonation increments raised and backers in place. The increments run on
// the database side so concurrent donations never lose updates.
func (r *campaignRepository) AddDonation(ctx context.Context, id uuid.UUID, amount decimal.Decimal, daysLeft int) error {
	res := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"raised":    gorm.Expr("raised + ?", amount),
			"backers":   gorm.Expr("backers + 1"),
			"days_left": daysLeft,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard-deletes a campaign. Irreversible; nothing cascades.
func (r *campaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Campaign{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
