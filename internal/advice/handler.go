package advice

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bechobazaar/geminiai/internal/listing"
	"github.com/bechobazaar/geminiai/internal/llm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

//
// --------------------------------------------------
// POST /advice
// --------------------------------------------------
//

func (h *Handler) Advise() gin.HandlerFunc {
	return func(c *gin.Context) {

		var raw map[string]any
		if err := c.ShouldBindJSON(&raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
			return
		}

		// Middleware-provided tier wins over the body field.
		planTier, _ := raw["plan"].(string)
		if tier, exists := c.Get("planTier"); exists {
			planTier = tier.(string)
		}

		resp, err := h.service.ProduceAdvice(c.Request.Context(), raw, planTier)
		if err != nil {
			status, message := classify(err)
			c.JSON(status, gin.H{"ok": false, "error": message})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

//
// --------------------------------------------------
// GET /advice/history?limit=N
// --------------------------------------------------
//

func (h *Handler) History() gin.HandlerFunc {
	return func(c *gin.Context) {

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		records, err := h.service.Recent(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "records": records})
	}
}

// classify maps the pipeline error taxonomy onto HTTP statuses.
func classify(err error) (int, string) {
	var verr *listing.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Error()
	}

	if llm.IsQuotaExceeded(err) {
		return http.StatusTooManyRequests, "generation quota exceeded, try again later"
	}

	var ue *llm.UpstreamError
	if errors.As(err, &ue) {
		return http.StatusBadGateway, ue.Error()
	}

	if IsParseError(err) {
		return http.StatusUnprocessableEntity, "could not produce advice from model reply"
	}

	return http.StatusInternalServerError, err.Error()
}
