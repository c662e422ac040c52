package handler

import (
	"errors"
	"net/http"

	"github.com/campusly/college-management/internal/middleware"
	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/response"
	"github.com/campusly/college-management/internal/service"
	"github.com/campusly/college-management/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// writeError maps a service error onto the HTTP response. Unknown errors are
// logged and reported as 500.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrTeacherNotFound),
		errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c)
	case errors.Is(err, service.ErrBranchInvalid):
		response.Fail(c, http.StatusBadRequest, response.ErrBranchInvalid)
	case errors.Is(err, service.ErrStudentExists),
		errors.Is(err, service.ErrTeacherExists),
		errors.Is(err, service.ErrDepartmentExists):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrDepartmentBusy):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrResourceBusy)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	default:
		log.Error().Err(err).
			Str("request_id", c.GetString(response.ContextKeyRequestID)).
			Str("route", c.FullPath()).
			Msg("request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// principal returns the caller or writes 401 and returns false.
func principal(c *gin.Context) (model.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
	}
	return p, ok
}

// bindPage reads ?page=&size=. Malformed numbers are rejected; range
// clamping is left to the services.
func bindPage(c *gin.Context) (model.PageQuery, bool) {
	var q model.PageQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidID, fields)
		return q, false
	}
	return q, true
}
