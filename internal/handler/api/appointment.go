package api

import (
	"context"
	"net/http"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	reqdto "telescope-scheduler/internal/handler/dto/request"
	resdto "telescope-scheduler/internal/handler/dto/response"
	"telescope-scheduler/internal/handler/httperr"
	"telescope-scheduler/internal/usecase/commands"
	"telescope-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	cmds commands.AppointmentCommands
	q    queries.AppointmentQueries
}

func NewAppointmentHandler(cmds commands.AppointmentCommands, q queries.AppointmentQueries) *AppointmentHandler {
	return &AppointmentHandler{cmds: cmds, q: q}
}

// @Summary Create appointment
// @Description Book a telescope window directly. The appointment is SCHEDULED on success.
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAppointmentRequest true "Create appointment request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	h.book(c, h.cmds.Create, true)
}

// @Summary Request appointment
// @Description Submit a booking for admin approval. The appointment is REQUESTED on success.
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAppointmentRequest true "Create appointment request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /appointments/requests [post]
func (h *AppointmentHandler) Request(c *gin.Context) {
	h.book(c, h.cmds.Request, false)
}

type bookFunc func(ctx context.Context, actor user.Actor, req commands.CreateAppointmentRequest) (uuid.UUID, error)

func (h *AppointmentHandler) book(c *gin.Context, fn bookFunc, immediate bool) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.OwnerID(actor.UserID) != actor.UserID && !actor.IsAdmin() {
		forbid(c, "Only admins can book on behalf of another user")
		return
	}
	if immediate && !req.Public() && !actor.Role.AtLeast(user.RoleResearcher) {
		forbid(c, "Private appointments require the researcher role")
		return
	}

	id, err := fn(c.Request.Context(), actor, req.ToCommand(actor.UserID))
	if err != nil {
		httperr.AbortWithCoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id.String()})
}

// @Summary Get appointment
// @Description Private appointments are visible to their owner and admins only
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, appointment.TagID)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), optionalActor(c), id)
	if err != nil {
		httperr.AbortWithCoreError(c, err)
		return
	}
	res, err := resdto.FromAppointmentView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Search appointments
// @Description Every query parameter other than limit, after and order is a search criterion.
// @Description Keys joined with '+' match when any of the fields matches.
// @Tags appointments
// @Produce json
// @Param userFullName query string false "Owner full name (contains)"
// @Param userFirstName query string false "Owner first name (contains)"
// @Param userLastName query string false "Owner last name (contains)"
// @Param telescopeId query string false "Telescope ID"
// @Param startAfter query string false "RFC3339 or YYYY-MM-DD"
// @Param endBefore query string false "RFC3339 or YYYY-MM-DD"
// @Param status query string false "Appointment status"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Param order query string false "asc or desc"
// @Success 200 {object} resdto.AppointmentListResponse
// @Failure 400 {object} httperr.Response
// @Router /appointments/search [get]
func (h *AppointmentHandler) Search(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	criteria, err := searchCriteria(c.Request.URL.RawQuery)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid search query",
			map[appointment.ErrorTag][]string{appointment.TagSearch: {"Malformed query string"}})
		return
	}
	items, next, err := h.q.Search(c.Request.Context(), optionalActor(c), criteria, page)
	if err != nil {
		httperr.AbortWithCoreError(c, err)
		return
	}
	renderList(c, items, next)
}

// @Summary Completed public appointments
// @Tags appointments
// @Produce json
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Param order query string false "asc or desc"
// @Success 200 {object} resdto.AppointmentListResponse
// @Failure 400 {object} httperr.Response
// @Router /appointments/completed/public [get]
func (h *AppointmentHandler) CompletedPublic(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	items, next, err := h.q.CompletedPublic(c.Request.Context(), page)
	if err != nil {
		httperr.AbortWithCoreError(c, err)
		return
	}
	renderList(c, items, next)
}

// @Summary Pending requests
// @Description Appointments waiting for admin approval
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Param order query string false "asc or desc"
// @Success 200 {object} resdto.AppointmentListResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /appointments/requests [get]
func (h *AppointmentHandler) Requested(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	items, next, err := h.q.Requested(c.Request.Context(), page)
	if err != nil {
		httperr.AbortWithCoreError(c, err)
		return
	}
	renderList(c, items, next)
}

type transitionCmd func(ctx context.Context, actor user.Actor, id uuid.UUID) error

func (h *AppointmentHandler) transition(c *gin.Context, fn transitionCmd) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, appointment.TagID)
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), actor, id); err != nil {
		httperr.AbortWithCoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Approve request
// @Description Schedules a REQUESTED appointment after re-checking conflicts
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments/{id}/approve [post]
func (h *AppointmentHandler) Approve(c *gin.Context) { h.transition(c, h.cmds.Approve) }

// @Summary Deny request
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id}/deny [post]
func (h *AppointmentHandler) Deny(c *gin.Context) { h.transition(c, h.cmds.Deny) }

// @Summary Start observation
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id}/start [post]
func (h *AppointmentHandler) Start(c *gin.Context) { h.transition(c, h.cmds.Start) }

// @Summary Finish observation
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id}/finish [post]
func (h *AppointmentHandler) Finish(c *gin.Context) { h.transition(c, h.cmds.Finish) }

// @Summary Cancel appointment
// @Description Owner or admin only
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *gin.Context) { h.transition(c, h.cmds.Cancel) }

// @Summary Make appointment public
// @Description Owner or admin only. The appointment must be SCHEDULED.
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id}/public [post]
func (h *AppointmentHandler) MakePublic(c *gin.Context) { h.transition(c, h.cmds.MakePublic) }
