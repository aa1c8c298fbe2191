package handlers

import (
	"bytes"
	"net/http"
	"time"

	"saferail/internal/report"

	"github.com/gin-gonic/gin"
)

// @Summary      Weekly safety report
// @Description  XLSX workbook for the current week (Monday 00:00 until now).
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/reports/weekly [get]
// @Security     BearerAuth
func (h *Handler) weeklyReport(c *gin.Context) {
	var buf bytes.Buffer
	name, err := h.services.WriteWeekly(c.Request.Context(), &buf, time.Now())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to build report", "report_build_failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, report.ContentType, buf.Bytes())
}
