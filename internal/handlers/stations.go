package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// @Summary      Station safety index
// @Tags         stations
// @Produce      json
// @Success      200  {array}  models.Station
// @Router       /api/v1/stations/index [get]
// @Security     BearerAuth
func (h *Handler) stationIndex(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Index())
}

// @Summary      Safest stations
// @Tags         stations
// @Produce      json
// @Success      200  {array}  models.Station
// @Router       /api/v1/stations/rankings [get]
// @Security     BearerAuth
func (h *Handler) stationRankings(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Rankings())
}

// @Summary      Trains
// @Tags         stations
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/v1/trains [get]
// @Security     BearerAuth
func (h *Handler) listTrains(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Trains())
}

// @Summary      Crowd forecast for a train
// @Tags         stations
// @Produce      json
// @Param        train  path      string  true  "Train name"  example(Virar Local)
// @Success      200    {object}  map[string]interface{}  "train, stations"
// @Failure      404    {object}  map[string]string
// @Router       /api/v1/trains/{train}/forecast [get]
// @Security     BearerAuth
func (h *Handler) trainForecast(c *gin.Context) {
	train := c.Param("train")
	stations, err := h.services.Forecast(train)
	if err != nil {
		h.writeError(c, err, "train_forecast_failed", "train", train)
		return
	}
	c.JSON(http.StatusOK, gin.H{"train": train, "stations": stations})
}

// @Summary      Dataset station names
// @Description  Sorted unique names; q narrows by case-insensitive prefix.
// @Tags         station-analysis
// @Produce      json
// @Param        q    query     string  false  "Name prefix"
// @Success      200  {array}   string
// @Failure      500  {object}  map[string]string
// @Router       /api/stations [get]
func (h *Handler) stationNames(c *gin.Context) {
	names, err := h.services.StationNames(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.writeError(c, err, "station_names_failed")
		return
	}
	c.JSON(http.StatusOK, names)
}

// @Summary      Hourly analysis of one station
// @Tags         station-analysis
// @Produce      json
// @Param        name  query     string  true  "Station name"
// @Success      200   {array}   models.StationReading
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/station_analysis [get]
func (h *Handler) stationAnalysis(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Station name is required"})
		return
	}
	readings, err := h.services.Analysis(c.Request.Context(), name)
	if err != nil {
		h.writeError(c, err, "station_analysis_failed", "station", name)
		return
	}
	c.JSON(http.StatusOK, readings)
}
