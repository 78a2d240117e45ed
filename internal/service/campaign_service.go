package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundraiser/internal/cache"
	apperrors "fundraiser/internal/errors"
	"fundraiser/internal/model"
	"fundraiser/internal/repository"
)

const campaignCacheTTL = 5 * time.Minute

// CreateCampaignInput carries campaign creation fields as submitted. Goal and
// Duration arrive in their textual form representation and are coerced here;
// non-numeric input fails validation.
type CreateCampaignInput struct {
	Title            string
	Goal             string
	Duration         string
	Location         string
	ShortDescription string
	FullDescription  string
	CreatorName      string
	OrganizationType string
	Image            string
	CreatedBy        *uuid.UUID
}

// DonationResult reports a campaign's totals after a donation.
type DonationResult struct {
	Raised  decimal.Decimal `json:"raised"`
	Backers int             `json:"backers"`
}

// CampaignService handles the campaign lifecycle and donation accounting.
type CampaignService interface {
	CreateCampaign(ctx context.Context, input CreateCampaignInput) (*model.Campaign, error)
	ListCampaigns(ctx context.Context) ([]model.CampaignSummary, error)
	GetCampaign(ctx context.Context, id string) (*model.Campaign, error)
	Donate(ctx context.Context, id, amount string) (*DonationResult, error)
	DeleteCampaign(ctx context.Context, id string) (uuid.UUID, error)
}

type campaignService struct {
	repo  repository.CampaignRepository
	cache *cache.Client
}

// NewCampaignService builds a CampaignService with repository and cache.
func NewCampaignService(repo repository.CampaignRepository, cache *cache.Client) CampaignService {
	return &campaignService{repo: repo, cache: cache}
}

func (s *campaignService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("campaign:%s", id)
}

// CreateCampaign validates input, coerces the numeric fields and persists a
// fresh campaign with zeroed totals. DaysLeft starts at the duration.
func (s *campaignService) CreateCampaign(ctx context.Context, input CreateCampaignInput) (*model.Campaign, error) {
	campaign, err := buildCampaign(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return campaign, nil
}

func buildCampaign(input CreateCampaignInput) (*model.Campaign, error) {
	if input.Title == "" || input.Goal == "" || input.Duration == "" ||
		input.ShortDescription == "" || input.FullDescription == "" || input.CreatorName == "" {
		return nil, apperrors.NewValidationError("all required fields must be provided")
	}

	goal, err := decimal.NewFromString(input.Goal)
	if err != nil {
		return nil, apperrors.NewValidationError("goal must be a number")
	}
	if goal.LessThan(decimal.NewFromInt(1)) {
		return nil, apperrors.NewValidationError("goal must be at least 1")
	}

	duration, err := strconv.Atoi(input.Duration)
	if err != nil {
		return nil, apperrors.NewValidationError("duration must be a whole number of days")
	}
	if duration < model.MinDuration || duration > model.MaxDuration {
		return nil, apperrors.NewValidationError(fmt.Sprintf("duration must be between %d and %d days", model.MinDuration, model.MaxDuration))
	}

	if len([]rune(input.ShortDescription)) > model.MaxShortDescription {
		return nil, apperrors.NewValidationError(fmt.Sprintf("short description must be at most %d characters", model.MaxShortDescription))
	}

	orgType := model.OrgIndividual
	if input.OrganizationType != "" {
		if !model.ValidOrganizationType(input.OrganizationType) {
			return nil, apperrors.NewValidationError("invalid organization type")
		}
		orgType = model.OrganizationType(input.OrganizationType)
	}

	return &model.Campaign{
		Title:            input.Title,
		Goal:             goal,
		Duration:         duration,
		Location:         input.Location,
		ShortDescription: input.ShortDescription,
		FullDescription:  input.FullDescription,
		CreatorName:      input.CreatorName,
		OrganizationType: orgType,
		Image:            input.Image,
		CreatedBy:        input.CreatedBy,
		IsActive:         true,
		Raised:           decimal.Zero,
		Backers:          0,
	}, nil
}

// ListCampaigns returns summaries of active campaigns in storage order.
func (s *campaignService) ListCampaigns(ctx context.Context) ([]model.CampaignSummary, error) {
	return s.repo.ListActive(ctx)
}

// GetCampaign fetches a campaign by id, reading through the cache. Malformed
// ids fail before the store is consulted.
func (s *campaignService) GetCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	campaignID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrInvalidCampaignID
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(campaignID)); data != nil {
		var cached model.Campaign
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	campaign, err := s.repo.FindByID(ctx, campaignID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("find campaign: %w", err)
	}

	if payload, err := json.Marshal(campaign); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(campaignID), payload, campaignCacheTTL)
	}
	return campaign, nil
}

// Donate folds a donation into the campaign totals. The increment is atomic
// at the persistence layer, so concurrent donations commute; each call adds
// one anonymous backer regardless of who donated.
func (s *campaignService) Donate(ctx context.Context, id, amount string) (*DonationResult, error) {
	campaignID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrInvalidCampaignID
	}

	value, err := decimal.NewFromString(amount)
	if err != nil || value.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidAmount
	}

	campaign, err := s.repo.FindByID(ctx, campaignID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("find campaign: %w", err)
	}

	// Every write recomputes daysLeft, donations included.
	daysLeft := campaign.RemainingDays(time.Now())
	if err := s.repo.AddDonation(ctx, campaignID, value, daysLeft); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("add donation: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(campaignID))

	// The increment is already durable at this point. If the reload fails,
	// answer with the pre-read totals plus this donation instead of an error.
	updated, err := s.repo.FindByID(ctx, campaignID)
	if err != nil {
		return &DonationResult{Raised: campaign.Raised.Add(value), Backers: campaign.Backers + 1}, nil
	}
	return &DonationResult{Raised: updated.Raised, Backers: updated.Backers}, nil
}

// DeleteCampaign hard-deletes a campaign by id.
func (s *campaignService) DeleteCampaign(ctx context.Context, id string) (uuid.UUID, error) {
	campaignID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidCampaignID
	}

	if err := s.repo.Delete(ctx, campaignID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return uuid.Nil, apperrors.ErrCampaignNotFound
		}
		return uuid.Nil, fmt.Errorf("delete campaign: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(campaignID))
	return campaignID, nil
}
