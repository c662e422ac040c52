package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusly/college-management/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWriteErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err       error
		status    int
		emptyBody bool
	}{
		{service.ErrStudentNotFound, http.StatusNotFound, true},
		{service.ErrTeacherNotFound, http.StatusNotFound, true},
		{fmt.Errorf("lookup: %w", service.ErrDepartmentNotFound), http.StatusNotFound, true},
		{service.ErrBranchInvalid, http.StatusBadRequest, false},
		{service.ErrDepartmentExists, http.StatusConflict, false},
		{service.ErrStudentExists, http.StatusConflict, false},
		{service.ErrDepartmentBusy, http.StatusServiceUnavailable, false},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, false},
		{errors.New("connection reset"), http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			writeError(c, zerolog.Nop(), tt.err)
			c.Writer.WriteHeaderNow()

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.emptyBody, w.Body.Len() == 0)
		})
	}
}
