package handlers

import (
	"errors"
	"net/http"

	"saferail/internal/service"
	"saferail/internal/validation"
	"saferail/internal/verification"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errInvalidBodyPref = "invalid body: "
	errInternal        = "internal server error"
	errValidation      = "validation failed"
)

// statusByErr maps domain errors to HTTP codes; the error text is the message.
var statusByErr = []struct {
	err  error
	code int
}{
	{service.ErrNotFemale, http.StatusForbidden},
	{service.ErrTicketRequired, http.StatusForbidden},
	{service.ErrUserExists, http.StatusConflict},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrNothingToUpdate, http.StatusBadRequest},
	{service.ErrFeedbackNotFound, http.StatusNotFound},
	{service.ErrFeedbackHidden, http.StatusConflict},
	{service.ErrInvalidDirection, http.StatusBadRequest},
	{service.ErrInvalidQuickType, http.StatusBadRequest},
	{service.ErrQuickNotFound, http.StatusNotFound},
	{service.ErrUnknownTrain, http.StatusNotFound},
	{service.ErrStationNotFound, http.StatusNotFound},
	{service.ErrDatasetNotLoaded, http.StatusInternalServerError},
	{service.ErrContactNotFound, http.StatusNotFound},
	{service.ErrImageRequired, http.StatusBadRequest},
	{verification.ErrRejected, http.StatusBadRequest},
}

// aadhaarErrs are the format messages surfaced when verification rejects the shape.
var aadhaarErrs = []error{
	validation.ErrAadhaarRequired,
	validation.ErrAadhaarLength,
	validation.ErrAadhaarDigits,
	validation.ErrAadhaarInvalid,
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// writeError turns a service error into the JSON error envelope. Unknown
// errors are logged under logKey and reported as 500.
func (h *Handler) writeError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	var fe *validation.FieldsError
	if errors.As(err, &fe) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errValidation, "fields": fe.Fields})
		return
	}
	if errors.Is(err, verification.ErrInvalidFormat) {
		msg := err.Error()
		for _, e := range aadhaarErrs {
			if errors.Is(err, e) {
				msg = e.Error()
				break
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	for _, m := range statusByErr {
		if errors.Is(err, m.err) {
			if m.code >= http.StatusInternalServerError && h.log != nil {
				h.log.Errorw(logKey, append([]interface{}{"err", err}, kv...)...)
			}
			c.JSON(m.code, gin.H{"error": m.err.Error()})
			return
		}
	}
	h.logAndJSONError(c, http.StatusInternalServerError, errInternal, logKey, err, kv...)
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		if fields := bindingFields(err); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errValidation, "fields": fields})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
