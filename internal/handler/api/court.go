package api

import (
	"net/http"

	reqdto "court-reservations/internal/handler/dto/request"
	resdto "court-reservations/internal/handler/dto/response"
	"court-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CourtHandler struct {
	q queries.CourtQueries
}

func NewCourtHandler(q queries.CourtQueries) *CourtHandler {
	return &CourtHandler{q: q}
}

// @Summary List locations
// @Tags courts
// @Produce json
// @Success 200 {array} resdto.LocationResponse
// @Router /api/locations [get]
func (h *CourtHandler) ListLocations(c *gin.Context) {
	views, err := h.q.ListLocations(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	body, err := resdto.FromLocationViews(views)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary List courts
// @Description List all courts, optionally at a single location
// @Tags courts
// @Produce json
// @Param location_id query string false "Location ID"
// @Success 200 {array} resdto.CourtResponse
// @Failure 400 {object} httperr.Response
// @Router /api/courts [get]
func (h *CourtHandler) ListCourts(c *gin.Context) {
	var query reqdto.ListCourtsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	views, err := h.q.ListCourts(c.Request.Context(), query.LocationUUID())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	body, err := resdto.FromCourtViews(views)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}
