package api

import (
	"net/http"

	"telescope-scheduler/internal/domain/appointment"
	resdto "telescope-scheduler/internal/handler/dto/response"
	"telescope-scheduler/internal/handler/httperr"
	"telescope-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	appointments queries.AppointmentQueries
	users        queries.UserQueries
}

func NewUserHandler(appointments queries.AppointmentQueries, users queries.UserQueries) *UserHandler {
	return &UserHandler{appointments: appointments, users: users}
}

// @Summary Future appointments of a user
// @Description Non-canceled appointments ending after now. Others' private bookings are hidden.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Param order query string false "asc or desc"
// @Success 200 {object} resdto.AppointmentListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /users/{id}/appointments/future [get]
func (h *UserHandler) FutureAppointments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, appointment.TagUserID)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}
	items, next, err := h.appointments.FutureByUser(c.Request.Context(), actor, userID, page)
	if err != nil {
		httperr.AbortWithCoreError(c, err)
		return
	}
	renderList(c, items, next)
}

// @Summary Past appointments of a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Param order query string false "asc or desc"
// @Success 200 {object} resdto.AppointmentListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /users/{id}/appointments/past [get]
func (h *UserHandler) PastAppointments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, appointment.TagUserID)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}
	items, next, err := h.appointments.PastByUser(c.Request.Context(), actor, userID, page)
	if err != nil {
		httperr.AbortWithCoreError(c, err)
		return
	}
	renderList(c, items, next)
}

// @Summary Available observing time
// @Description Remaining allotment of the user's category of service. Owner or admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.AvailableTimeResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{id}/available-time [get]
func (h *UserHandler) AvailableTime(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, appointment.TagUserID)
	if !ok {
		return
	}
	if !actor.CanManage(userID) {
		forbid(c, "Insufficient permissions")
		return
	}
	view, err := h.users.AvailableTime(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailableTime(view))
}
