package delivery

import (
	"errors"
	"net/http"

	"chorehub-backend/internal/household/usecase"

	"github.com/gin-gonic/gin"
)

// HouseholdHandler handles household and category HTTP requests
type HouseholdHandler struct {
	householdUsecase usecase.HouseholdUsecase
}

// NewHouseholdHandler creates a new HouseholdHandler
func NewHouseholdHandler(householdUsecase usecase.HouseholdUsecase) *HouseholdHandler {
	return &HouseholdHandler{
		householdUsecase: householdUsecase,
	}
}

// CreateHouseholdRequest represents the request body for creating a household
type CreateHouseholdRequest struct {
	Name      string `json:"name" binding:"required"`
	IsPrivate bool   `json:"is_private"`
}

// InviteRequest represents the request body for inviting a member
type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	HouseholdID string `json:"household_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Color       string `json:"color" binding:"required"`
}

// GetHouseholds returns all households the user belongs to
// GET /api/households
func (h *HouseholdHandler) GetHouseholds(c *gin.Context) {
	userID := c.GetString("userID")

	views, err := h.householdUsecase.ListForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// CreateHousehold creates a new household
// POST /api/households
func (h *HouseholdHandler) CreateHousehold(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	household, err := h.householdUsecase.Create(userID, req.Name, req.IsPrivate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, household)
}

// InviteMember invites a user to a household by email
// POST /api/households/:id/invite
func (h *HouseholdHandler) InviteMember(c *gin.Context) {
	userID := c.GetString("userID")
	householdID := c.Param("id")

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	household, err := h.householdUsecase.Invite(userID, householdID, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "invite sent", "household": household})
}

// GetPendingInvites returns the user's pending invitations
// GET /api/households/invites
func (h *HouseholdHandler) GetPendingInvites(c *gin.Context) {
	userID := c.GetString("userID")

	invites, err := h.householdUsecase.PendingInvites(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, invites)
}

// AcceptInvite accepts a pending invitation
// POST /api/households/:id/accept
func (h *HouseholdHandler) AcceptInvite(c *gin.Context) {
	userID := c.GetString("userID")
	householdID := c.Param("id")

	household, err := h.householdUsecase.Accept(userID, householdID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "invite accepted", "household": household})
}

// DeclineInvite declines a pending invitation
// POST /api/households/:id/decline
func (h *HouseholdHandler) DeclineInvite(c *gin.Context) {
	userID := c.GetString("userID")
	householdID := c.Param("id")

	if err := h.householdUsecase.Decline(userID, householdID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "invite declined"})
}

// RemoveMember removes a member from a household
// DELETE /api/households/:id/members/:userId
func (h *HouseholdHandler) RemoveMember(c *gin.Context) {
	actorID := c.GetString("userID")
	householdID := c.Param("id")
	memberID := c.Param("userId")

	if err := h.householdUsecase.RemoveMember(actorID, householdID, memberID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}

// GetCategories returns all categories of a household
// GET /api/categories?householdId=...
func (h *HouseholdHandler) GetCategories(c *gin.Context) {
	userID := c.GetString("userID")

	householdID := c.Query("householdId")
	if householdID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "householdId required"})
		return
	}

	categories, err := h.householdUsecase.ListCategories(userID, householdID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// CreateCategory creates a new category
// POST /api/categories
func (h *HouseholdHandler) CreateCategory(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.householdUsecase.CreateCategory(userID, req.HouseholdID, req.Name, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DeleteCategory deletes a category if no tasks reference it
// DELETE /api/categories/:id
func (h *HouseholdHandler) DeleteCategory(c *gin.Context) {
	userID := c.GetString("userID")
	categoryID := c.Param("id")

	if err := h.householdUsecase.DeleteCategory(userID, categoryID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// respondError maps usecase errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrHouseholdNotFound),
		errors.Is(err, usecase.ErrCategoryNotFound),
		errors.Is(err, usecase.ErrInviteNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrPrivateHousehold),
		errors.Is(err, usecase.ErrAlreadyMember),
		errors.Is(err, usecase.ErrAlreadyInvited),
		errors.Is(err, usecase.ErrCreatorRemoval),
		errors.Is(err, usecase.ErrCategoryInUse):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
