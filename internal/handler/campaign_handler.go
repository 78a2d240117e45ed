package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fundraiser/internal/errors"
	"fundraiser/internal/service"
	"fundraiser/internal/storage"
)

// CampaignHandler handles campaign endpoints.
type CampaignHandler struct {
	campaignService service.CampaignService
	storage         storage.Storage
}

// NewCampaignHandler creates a new campaign handler.
func NewCampaignHandler(campaignService service.CampaignService, storage storage.Storage) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, storage: storage}
}

// DonationRequest represents a donation request body. Amount accepts either
// a JSON number or a numeric string.
type DonationRequest struct {
	Amount json.Number `json:"amount"`
}

// CreateCampaignResponse wraps the created campaign.
type CreateCampaignResponse struct {
	Message  string      `json:"message"`
	Campaign interface{} `json:"campaign"`
}

// DeleteCampaignResponse reports the deleted id.
type DeleteCampaignResponse struct {
	Message    string `json:"message"`
	CampaignID string `json:"campaignId"`
}

// Create godoc
// @Summary Create a fundraising campaign
// @Tags campaigns
// @Accept mpfd
// @Produce json
// @Param title formData string true "Campaign title"
// @Param goal formData number true "Funding goal"
// @Param duration formData int true "Duration in days (1-90)"
// @Param shortDescription formData string true "Short description (max 150 chars)"
// @Param fullDescription formData string true "Full description"
// @Param creatorName formData string true "Creator name"
// @Param location formData string false "Location"
// @Param organizationType formData string false "individual, nonprofit, business or community"
// @Param image formData file false "Campaign image"
// @Success 201 {object} CreateCampaignResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/campaigns [post]
func (h *CampaignHandler) Create(c echo.Context) error {
	input := service.CreateCampaignInput{
		Title:            c.FormValue("title"),
		Goal:             c.FormValue("goal"),
		Duration:         c.FormValue("duration"),
		Location:         c.FormValue("location"),
		ShortDescription: c.FormValue("shortDescription"),
		FullDescription:  c.FormValue("fullDescription"),
		CreatorName:      c.FormValue("creatorName"),
		OrganizationType: c.FormValue("organizationType"),
	}

	if createdBy := c.FormValue("createdBy"); createdBy != "" {
		accountID, err := uuid.Parse(createdBy)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid createdBy account id",
				Code:  "VALIDATION_ERROR",
			})
		}
		input.CreatedBy = &accountID
	}

	// The request is not accepted until the image is fully written.
	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: "failed to read uploaded image",
				Code:  "UPLOAD_FAILED",
			})
		}
		defer src.Close()

		path, err := h.storage.Save(c.Request().Context(), file.Filename, file.Header.Get("Content-Type"), src, file.Size)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: "failed to store uploaded image",
				Code:  "UPLOAD_FAILED",
			})
		}
		input.Image = path
	}

	campaign, err := h.campaignService.CreateCampaign(c.Request().Context(), input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, CreateCampaignResponse{
		Message:  "Campaign created successfully",
		Campaign: campaign,
	})
}

// List godoc
// @Summary List active campaigns
// @Tags campaigns
// @Produce json
// @Success 200 {array} model.CampaignSummary
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/campaigns [get]
func (h *CampaignHandler) List(c echo.Context) error {
	campaigns, err := h.campaignService.ListCampaigns(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, campaigns)
}

// Get godoc
// @Summary Get a campaign by id
// @Tags campaigns
// @Produce json
// @Param id path string true "Campaign id"
// @Success 200 {object} model.Campaign
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/campaigns/{id} [get]
func (h *CampaignHandler) Get(c echo.Context) error {
	campaign, err := h.campaignService.GetCampaign(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, campaign)
}

// Donate godoc
// @Summary Donate to a campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign id"
// @Param request body DonationRequest true "Donation amount"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/campaigns/{id}/donate [post]
func (h *CampaignHandler) Donate(c echo.Context) error {
	var req DonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	result, err := h.campaignService.Donate(c.Request().Context(), c.Param("id"), req.Amount.String())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Donation successful",
		"raised":  result.Raised,
		"backers": result.Backers,
	})
}

// Delete godoc
// @Summary Delete a campaign
// @Tags campaigns
// @Produce json
// @Param id path string true "Campaign id"
// @Success 200 {object} DeleteCampaignResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c echo.Context) error {
	id, err := h.campaignService.DeleteCampaign(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, DeleteCampaignResponse{
		Message:    "Campaign deleted successfully",
		CampaignID: id.String(),
	})
}
