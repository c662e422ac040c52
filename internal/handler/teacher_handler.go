package handler

import (
	"net/http"
	"strconv"

	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/response"
	"github.com/campusly/college-management/internal/service"
	"github.com/campusly/college-management/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TeacherHandler handles the teacher endpoints.
type TeacherHandler struct {
	teacherService *service.TeacherService
	log            zerolog.Logger
}

// NewTeacherHandler creates a new TeacherHandler.
func NewTeacherHandler(teacherService *service.TeacherService, log zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		teacherService: teacherService,
		log:            log.With().Str("component", "teacher_handler").Logger(),
	}
}

// Create godoc
// POST /cm/t/create
func (h *TeacherHandler) Create(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	var req model.CreateTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	teacher, err := h.teacherService.Save(c.Request.Context(), actor, &model.Teacher{
		TeacherID:    req.TeacherID,
		Name:         req.Name,
		Age:          req.Age,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, teacher)
}

// GetAll godoc
// GET /cm/get/t/get-all
func (h *TeacherHandler) GetAll(c *gin.Context) {
	teachers, err := h.teacherService.GetAll(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, teachers)
}

// GetByID godoc
// GET /cm/get/t/:teacherId
func (h *TeacherHandler) GetByID(c *gin.Context) {
	teacher, err := h.teacherService.GetByID(c.Request.Context(), c.Param("teacherId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, teacher)
}

// GetByAge godoc
// GET /cm/get/age?age=40
func (h *TeacherHandler) GetByAge(c *gin.Context) {
	age, err := strconv.Atoi(c.Query("age"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	teachers, err := h.teacherService.GetByAge(c.Request.Context(), age)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, teachers)
}

// GetPage godoc
// GET /cm/get/t/page?page=0&size=10
func (h *TeacherHandler) GetPage(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	teachers, err := h.teacherService.GetPage(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, teachers)
}

// Update godoc
// PUT /cm/t/update/:teacherId
func (h *TeacherHandler) Update(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	var req model.UpdateTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	teacher, err := h.teacherService.Update(c.Request.Context(), actor, c.Param("teacherId"), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, teacher)
}

// Delete godoc
// DELETE /cm/t/delete/:teacherId
func (h *TeacherHandler) Delete(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	if err := h.teacherService.Delete(c.Request.Context(), actor, c.Param("teacherId")); err != nil {
		writeError(c, h.log, err)
		return
	}
	response.NoContent(c)
}
