package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"estimmo/server/internal/estimator"
	"estimmo/server/internal/models"
	"estimmo/server/internal/source"
)

type Handler struct {
	estimator *estimator.Estimator
	logger    *logrus.Logger
}

type EstimateRequest struct {
	MunicipalityCode string  `json:"municipality_code" binding:"required"`
	SurfaceArea      float64 `json:"surface_area" binding:"required"`
	Standing         string  `json:"standing" binding:"required"`
}

func NewHandler(est *estimator.Estimator, logger *logrus.Logger) *Handler {
	return &Handler{estimator: est, logger: logger}
}

// Estimate runs the estimation pipeline for the submitted property.
func (h *Handler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse estimate request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	standing, err := models.ParseStanding(req.Standing)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown standing, expected to_renovate, standard or high_end"})
		return
	}

	result, err := h.estimator.Estimate(c.Request.Context(), estimator.Request{
		MunicipalityCode: req.MunicipalityCode,
		SurfaceArea:      req.SurfaceArea,
		Standing:         standing,
	})
	if err != nil {
		h.renderPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMarket returns the transaction time series and market statistics of a
// municipality, without computing an estimate.
func (h *Handler) GetMarket(c *gin.Context) {
	code := c.Param("code")

	dataset, stats, err := h.estimator.MarketView(c.Request.Context(), code)
	if err != nil {
		h.renderPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"municipality_code": dataset.MunicipalityCode,
		"provenance":        dataset.Provenance,
		"sample_size":       dataset.Size(),
		"market_stats":      stats,
		"time_series":       dataset.TimeSeries(),
	})
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// renderPipelineError maps the typed pipeline outcomes onto HTTP responses.
// Nothing the pipeline returns is a server fault: transport failures are
// already absorbed by the synthetic fallback.
func (h *Handler) renderPipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, source.ErrInvalidMunicipality):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid municipality code, expected an INSEE commune code"})
	case errors.Is(err, estimator.ErrInvalidArea):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Surface area must be positive"})
	case errors.Is(err, estimator.ErrInvalidStanding):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown standing, expected to_renovate, standard or high_end"})
	case errors.Is(err, estimator.ErrInsufficientData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Not enough transactions to estimate this municipality",
			"code":  "insufficient_data",
		})
	default:
		h.logger.WithError(err).Error("Estimation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Estimation failed"})
	}
}
