package handlers

import (
	"net/http"

	"saferail/internal/repository"
	"saferail/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateFeedbackRequest is a station report from the portal form.
type CreateFeedbackRequest struct {
	Station  string `json:"station" example:"Dadar"`
	Category string `json:"category" example:"Poor Lighting"`
	Message  string `json:"message" example:"Platform 3 lights are out after 11 PM"`
}

// VoteRequest is an up or down vote.
type VoteRequest struct {
	Direction string `json:"direction" binding:"required" example:"down"`
}

// QuickFeedbackRequest is the public thumbs/alert/star reaction.
type QuickFeedbackRequest struct {
	Type    string  `json:"type" binding:"required" example:"thumbs_up"`
	Message *string `json:"message"`
}

// @Summary      Submit station feedback
// @Description  Emergency and Harassment reports get high priority and are flagged for police review.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      CreateFeedbackRequest  true  "Feedback"
// @Success      201   {object}  models.Feedback
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/v1/feedback [post]
// @Security     BearerAuth
func (h *Handler) createFeedback(c *gin.Context) {
	var req CreateFeedbackRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	f, err := h.services.CreateFeedback(c.Request.Context(), userID(c), service.FeedbackInput{
		Station:  req.Station,
		Category: req.Category,
		Message:  req.Message,
	})
	if err != nil {
		h.writeError(c, err, "feedback_create_failed", "user_id", userID(c))
		return
	}
	c.JSON(http.StatusCreated, f)
}

// @Summary      List feedback
// @Description  Active items, newest first.
// @Tags         feedback
// @Produce      json
// @Param        station   query     string  false  "Station name"
// @Param        priority  query     string  false  "Priority"  Enums(low,medium,high)
// @Success      200       {object}  map[string]interface{}  "count, items"
// @Router       /api/v1/feedback [get]
// @Security     BearerAuth
func (h *Handler) listFeedback(c *gin.Context) {
	items, err := h.services.ListFeedback(c.Request.Context(), repository.FeedbackFilter{
		Station:  c.Query("station"),
		Priority: c.Query("priority"),
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load feedback", "feedback_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// @Summary      Vote on feedback
// @Description  Five downvotes hide an item. Hidden items take no votes.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Feedback ID"
// @Param        body  body      VoteRequest  true  "Direction"
// @Success      200   {object}  models.Feedback
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/feedback/{id}/vote [post]
// @Security     BearerAuth
func (h *Handler) voteFeedback(c *gin.Context) {
	var req VoteRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	f, err := h.services.Vote(c.Request.Context(), c.Param("id"), req.Direction)
	if err != nil {
		h.writeError(c, err, "feedback_vote_failed", "feedback_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, f)
}

// @Summary      Feedback stats
// @Tags         feedback
// @Produce      json
// @Success      200  {object}  models.FeedbackStats
// @Router       /api/v1/feedback/stats [get]
// @Security     BearerAuth
func (h *Handler) feedbackStats(c *gin.Context) {
	st, err := h.services.FeedbackStats(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load stats", "feedback_stats_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Submit quick feedback
// @Tags         quick-feedback
// @Accept       json
// @Produce      json
// @Param        body  body      QuickFeedbackRequest  true  "Reaction"
// @Success      201   {object}  models.QuickFeedback
// @Failure      400   {object}  map[string]string
// @Router       /feedback [post]
func (h *Handler) submitQuick(c *gin.Context) {
	var req QuickFeedbackRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	f, err := h.services.SubmitQuick(c.Request.Context(), req.Type, req.Message)
	if err != nil {
		h.writeError(c, err, "quick_feedback_create_failed")
		return
	}
	c.JSON(http.StatusCreated, f)
}

// @Summary      List quick feedback
// @Tags         quick-feedback
// @Produce      json
// @Success      200  {array}  models.QuickFeedback
// @Router       /feedback [get]
func (h *Handler) listQuick(c *gin.Context) {
	items, err := h.services.ListQuick(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load feedback", "quick_feedback_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Get quick feedback
// @Tags         quick-feedback
// @Produce      json
// @Param        id   path      string  true  "Feedback ID"
// @Success      200  {object}  models.QuickFeedback
// @Failure      404  {object}  map[string]string
// @Router       /feedback/{id} [get]
func (h *Handler) getQuick(c *gin.Context) {
	f, err := h.services.GetQuick(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "quick_feedback_get_failed")
		return
	}
	c.JSON(http.StatusOK, f)
}

// @Summary      Delete quick feedback
// @Tags         quick-feedback
// @Param        id   path  string  true  "Feedback ID"
// @Success      204
// @Router       /feedback/{id} [delete]
func (h *Handler) deleteQuick(c *gin.Context) {
	if err := h.services.DeleteQuick(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "quick_feedback_delete_failed")
		return
	}
	c.Status(http.StatusNoContent)
}
