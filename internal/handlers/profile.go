package handlers

import (
	"net/http"

	"saferail/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest holds the only mutable profile fields.
type UpdateProfileRequest struct {
	Email       *string `json:"email" binding:"omitempty,email" example:"priya@example.com"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,in_phone" example:"+91 98765 43210"`
}

// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/profile [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	u, err := h.services.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		h.writeError(c, err, "profile_get_failed")
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Update profile
// @Description  Only email and phone_number can change; at least one is required.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateProfileRequest  true  "Fields to change"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]interface{}
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/profile [patch]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	u, err := h.services.UpdateProfile(c.Request.Context(), userID(c), service.ProfileUpdate{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.writeError(c, err, "profile_update_failed", "user_id", userID(c))
		return
	}
	c.JSON(http.StatusOK, u)
}
