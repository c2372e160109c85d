package api

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/FurmanCenter/nyc-hotels/internal/database"
	"github.com/FurmanCenter/nyc-hotels/internal/models"
)

type Handler struct {
	db     *database.Database
	logger *logrus.Logger
}

func NewHandler(db *database.Database, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:     db,
		logger: logger,
	}
}

// GetHotels returns the canonical set, optionally filtered by borough and
// the eligible/union flags.
func (h *Handler) GetHotels(c *gin.Context) {
	borough := 0
	if raw := c.Query("borough"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "borough must be 1-5"})
			return
		}
		borough = n
	}

	hotels, err := h.db.GetCanonicalHotels(borough)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get canonical hotels")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get hotels"})
		return
	}

	if c.Query("eligible") == "true" {
		hotels = filterHotels(hotels, func(h models.CanonicalHotel) bool { return h.Eligible })
	}
	if c.Query("union") == "true" {
		hotels = filterHotels(hotels, func(h models.CanonicalHotel) bool { return h.IsUnion })
	}

	c.JSON(http.StatusOK, hotels)
}

// GetStats returns summary statistics for the whole canonical set.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.db.GetHotelStats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get hotel stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetBoroughStats returns summary statistics for one borough.
func (h *Handler) GetBoroughStats(c *gin.Context) {
	borough, err := strconv.Atoi(c.Param("borough"))
	if err != nil || borough < 1 || borough > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "borough must be 1-5"})
		return
	}

	stats, err := h.db.GetBoroughStats(borough)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get borough stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get borough stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func filterHotels(hotels []models.CanonicalHotel, keep func(models.CanonicalHotel) bool) []models.CanonicalHotel {
	out := make([]models.CanonicalHotel, 0, len(hotels))
	for _, h := range hotels {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}
