package api

import (
	"net/http"

	"court-reservations/internal/domain/reservation"
	reqdto "court-reservations/internal/handler/dto/request"
	resdto "court-reservations/internal/handler/dto/response"
	"court-reservations/internal/handler/middleware"
	"court-reservations/internal/usecase/commands"
	"court-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Book a court for a time slot on a date
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Create reservation request"
// @Success 201 {object} resdto.CreateReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	in, err := req.ToInput(userID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), in)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	id := result.ReservationID.String()
	c.Header("Location", "/api/reservations/"+id)
	c.JSON(http.StatusCreated, resdto.CreateReservationResponse{ID: id})
}

// @Summary List my reservations
// @Description List the caller's reservations by scope (upcoming, past, cancelled)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param scope query string false "upcoming (default), past or cancelled"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	scope, err := queries.ParseScope(query.Scope)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	views, err := h.q.ListByUser(c.Request.Context(), userID, scope)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	body, err := resdto.FromReservationViews(views)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	role, _ := middleware.GetUserRole(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	body, err := resdto.FromReservationView(view)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Cancel reservation
// @Description Cancel a confirmed reservation; same-day cancellations close before the cutoff
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.CancelReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	role, _ := middleware.GetUserRole(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}

	if err := h.cmds.Cancel(c.Request.Context(), id, userID, role); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CancelReservationResponse{
		ID:     id.String(),
		Status: reservation.StatusCancelled.String(),
	})
}
