package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"saferail/internal/service"

	"github.com/gin-gonic/gin"
)

const errImageTooLarge = "image too large"

// @Summary      Analyze compartment photo
// @Description  Stores the photo, counts people and raises an alert with the decision.
// @Tags         compartments
// @Accept       multipart/form-data
// @Produce      json
// @Param        image        formData  file    true   "Compartment photo"
// @Param        train        formData  string  false  "Train"
// @Param        compartment  formData  string  false  "Compartment"
// @Param        lat          formData  string  false  "Latitude"
// @Param        lon          formData  string  false  "Longitude"
// @Success      200  {object}  service.AnalyzeResult
// @Failure      400  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Router       /api/v1/compartments/analyze [post]
// @Security     BearerAuth
func (h *Handler) analyzeCompartment(c *gin.Context) {
	if c.Request.ContentLength > h.opts.MaxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": errImageTooLarge})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUpload)

	fh, err := c.FormFile("image")
	if err != nil {
		// bodies without a Content-Length are cut off while parsing
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": errImageTooLarge})
			return
		}
		h.writeError(c, service.ErrImageRequired, "compartment_analyze_failed")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "compartment_open_failed", err)
		return
	}
	defer f.Close()

	username := ""
	if u, err := h.services.GetProfile(c.Request.Context(), userID(c)); err == nil {
		username = u.Username
	}

	res, err := h.services.Analyze(c.Request.Context(), service.CompartmentUpload{
		Image:       f,
		Filename:    fh.Filename,
		Train:       c.PostForm("train"),
		Compartment: c.PostForm("compartment"),
		Lat:         c.PostForm("lat"),
		Lon:         c.PostForm("lon"),
		Username:    username,
	})
	if err != nil {
		h.writeError(c, err, "compartment_analyze_failed")
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Recent alerts
// @Tags         compartments
// @Produce      json
// @Param        limit  query     int  false  "Max items (default 50, max 500)"
// @Success      200    {object}  map[string]interface{}  "count, alerts"
// @Router       /api/v1/alerts [get]
// @Security     BearerAuth
func (h *Handler) listAlerts(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit'"})
			return
		}
		limit = v
	}
	alerts, err := h.services.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load alerts", "alerts_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(alerts), "alerts": alerts})
}
