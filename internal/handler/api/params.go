package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	reqdto "telescope-scheduler/internal/handler/dto/request"
	resdto "telescope-scheduler/internal/handler/dto/response"
	"telescope-scheduler/internal/handler/httperr"
	"telescope-scheduler/internal/handler/middleware"
	"telescope-scheduler/internal/handler/validation"
	"telescope-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errUnauthenticated = errors.New("no authenticated actor")
	errForbidden       = errors.New("actor may not perform this operation")
)

// pageKeys are consumed by paging and never treated as search criteria.
var pageKeys = map[string]bool{"limit": true, "after": true, "order": true}

func requireActor(c *gin.Context) (user.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return user.Actor{}, false
	}
	return actor, true
}

// optionalActor returns the anonymous actor when the route allows it.
func optionalActor(c *gin.Context) user.Actor {
	actor, _ := middleware.GetActor(c)
	return actor
}

func forbid(c *gin.Context, msg string) {
	httperr.AbortWithError(c, http.StatusForbidden, errForbidden, msg, nil)
}

func parseIDParam(c *gin.Context, tag appointment.ErrorTag) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id",
			map[appointment.ErrorTag][]string{tag: {"Malformed id"}})
		return uuid.Nil, false
	}
	return id, true
}

func bindPage(c *gin.Context) (queries.PageRequest, bool) {
	var q reqdto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid page parameters",
			map[appointment.ErrorTag][]string{appointment.TagPageParams: {err.Error()}})
		return queries.PageRequest{}, false
	}
	return q.ToPageRequest(), true
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var detail any
		if d := validation.Details(err); d != nil {
			detail = d
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", detail)
		return false
	}
	return true
}

// searchCriteria reads key=value pairs in the order they appear in the raw
// query. A '+' in a key decodes to a space, which the search parser treats
// as an OR between fields.
func searchCriteria(rawQuery string) ([]queries.SearchCriterion, error) {
	var out []queries.SearchCriterion
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, err
		}
		if pageKeys[key] {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, err
		}
		out = append(out, queries.SearchCriterion{Key: key, Value: value})
	}
	return out, nil
}

func renderList(c *gin.Context, items []*queries.AppointmentView, next *queries.Cursor) {
	res, err := resdto.FromAppointmentList(items, next)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
