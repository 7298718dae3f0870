package api

import (
	"net/http"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	reqdto "telescope-scheduler/internal/handler/dto/request"
	"telescope-scheduler/internal/handler/httperr"
	"telescope-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TelescopeHandler struct {
	q queries.AppointmentQueries
}

func NewTelescopeHandler(q queries.AppointmentQueries) *TelescopeHandler {
	return &TelescopeHandler{q: q}
}

// @Summary Telescope appointments
// @Description Lists the telescope's appointments. With start and end, only non-canceled
// @Description appointments overlapping [start, end) are returned.
// @Tags telescopes
// @Produce json
// @Param id path string true "Telescope ID"
// @Param start query string false "RFC3339 window start"
// @Param end query string false "RFC3339 window end"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Param order query string false "asc or desc"
// @Success 200 {object} resdto.AppointmentListResponse
// @Failure 400 {object} httperr.Response
// @Router /telescopes/{id}/appointments [get]
func (h *TelescopeHandler) Appointments(c *gin.Context) {
	telescopeID, ok := parseIDParam(c, appointment.TagTelescopeID)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}
	var window reqdto.DateRangeQuery
	if err := c.ShouldBindQuery(&window); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	actor := optionalActor(c)
	ctx := c.Request.Context()

	if window.Start == nil && window.End == nil {
		items, next, err := h.q.ByTelescope(ctx, actor, telescopeID, page)
		if err != nil {
			httperr.AbortWithCoreError(c, err)
			return
		}
		renderList(c, items, next)
		return
	}

	var errs appointment.Errors
	start := parseWindowBound(window.Start, appointment.TagStartTime, &errs)
	end := parseWindowBound(window.End, appointment.TagEndTime, &errs)
	if !errs.IsEmpty() {
		httperr.AbortWithCoreError(c, errs.Err())
		return
	}

	items, next, err := h.q.BetweenDates(ctx, actor, telescopeID, start, end, page)
	if err != nil {
		httperr.AbortWithCoreError(c, err)
		return
	}
	renderList(c, items, next)
}

func parseWindowBound(v *string, tag appointment.ErrorTag, errs *appointment.Errors) time.Time {
	if v == nil || *v == "" {
		errs.Add(tag, "Both start and end are required for a date window")
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		errs.Add(tag, "Expected an RFC3339 timestamp")
		return time.Time{}
	}
	return t.UTC()
}
