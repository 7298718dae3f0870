package httperr

import (
	"net/http"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusFor maps collected validation errors onto an HTTP status: a lone ID
// is a missing record, any OVERLAP is a conflict, everything else is the
// caller's fault.
func StatusFor(verr *appointment.ValidationError) int {
	switch {
	case verr.IsNotFound():
		return http.StatusNotFound
	case verr.Errors.Has(appointment.TagOverlap):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// AbortWithCoreError renders an error returned by a command or query.
func AbortWithCoreError(c *gin.Context, err error) {
	if verr, ok := appointment.AsValidation(err); ok {
		status := StatusFor(verr)
		AbortWithError(c, status, err, messageFor(status), verr.Errors.Map())
		return
	}
	if errs.Is(err, errs.ErrUserNotFound) {
		AbortWithError(c, http.StatusNotFound, err, "User not found",
			map[appointment.ErrorTag][]string{appointment.TagUserID: {"User not found"}})
		return
	}
	AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func messageFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return "Not found"
	case http.StatusConflict:
		return "Appointment conflicts with an existing booking"
	default:
		return "Validation failed"
	}
}
