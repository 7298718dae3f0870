package api

import (
	"net/http"

	"telescope-scheduler/internal/domain/appointment"
	reqdto "telescope-scheduler/internal/handler/dto/request"
	resdto "telescope-scheduler/internal/handler/dto/response"
	"telescope-scheduler/internal/handler/httperr"
	"telescope-scheduler/internal/pkg/errs"
	"telescope-scheduler/internal/usecase/commands"
	"telescope-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	membership commands.MembershipCommands
	logs       queries.LogQueries
}

func NewAdminHandler(membership commands.MembershipCommands, logs queries.LogQueries) *AdminHandler {
	return &AdminHandler{membership: membership, logs: logs}
}

// @Summary Approve category of service
// @Description Grants the user a category of service and writes its time cap.
// @Description Without an override the category default applies.
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body reqdto.ApproveCategoryRequest true "Category approval"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/users/{id}/category [post]
func (h *AdminHandler) ApproveCategory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, appointment.TagUserID)
	if !ok {
		return
	}
	var req reqdto.ApproveCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.membership.ApproveCategory(c.Request.Context(), actor, userID, req.ToCommand())
	if errs.Is(err, commands.ErrInvalidCategory) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid category of service",
			map[appointment.ErrorTag][]string{appointment.TagCategoryOfService: {err.Error()}})
		return
	}
	if err != nil {
		httperr.AbortWithCoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Audit log
// @Description Newest entries first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.LogListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/logs [get]
func (h *AdminHandler) Logs(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	items, next, err := h.logs.List(c.Request.Context(), page.Cursor, page.Limit)
	if err != nil {
		httperr.AbortWithCoreError(c, err)
		return
	}
	res, err := resdto.FromLogList(items, next)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
