package handlers

import (
	"net/http"

	"saferail/internal/models"

	"github.com/gin-gonic/gin"
)

// ContactRequest is the public contact form.
type ContactRequest struct {
	Name     string `json:"name" example:"Asha"`
	Email    string `json:"email" example:"asha@example.com"`
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// @Summary      Contact form
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      ContactRequest  true  "Message"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/contact [post]
func (h *Handler) submitContact(c *gin.Context) {
	var req ContactRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	id, err := h.services.SubmitContact(c.Request.Context(), models.ContactMessage{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Category: req.Category,
		Message:  req.Message,
	})
	if err != nil {
		h.writeError(c, err, "contact_submit_failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "status": "received"})
}
