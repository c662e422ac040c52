package handler

import (
	"net/http"

	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/response"
	"github.com/campusly/college-management/internal/service"
	"github.com/campusly/college-management/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DepartmentHandler handles the department endpoints.
type DepartmentHandler struct {
	departmentService *service.DepartmentService
	log               zerolog.Logger
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(departmentService *service.DepartmentService, log zerolog.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		departmentService: departmentService,
		log:               log.With().Str("component", "department_handler").Logger(),
	}
}

// Create godoc
// POST /cm/d/create
func (h *DepartmentHandler) Create(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	var req model.CreateDepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	department, err := h.departmentService.Save(c.Request.Context(), actor, &model.Department{
		DepartmentID:    req.DepartmentID,
		DepartmentName:  req.DepartmentName,
		ShortCode:       req.ShortCode,
		AvailableOnline: req.AvailableOnline,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, department)
}

// GetAll godoc
// GET /cm/get/d/get-all
func (h *DepartmentHandler) GetAll(c *gin.Context) {
	departments, err := h.departmentService.GetAll(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, departments)
}

// GetByID godoc
// GET /cm/d/:departmentId
func (h *DepartmentHandler) GetByID(c *gin.Context) {
	department, err := h.departmentService.GetByID(c.Request.Context(), c.Param("departmentId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, department)
}

// GetStudents godoc
// GET /cm/d/:departmentId/students
func (h *DepartmentHandler) GetStudents(c *gin.Context) {
	students, err := h.departmentService.GetAllStudentsUnderDepartment(c.Request.Context(), c.Param("departmentId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, students)
}

// GetTeachers godoc
// GET /cm/d/:departmentId/teachers
func (h *DepartmentHandler) GetTeachers(c *gin.Context) {
	teachers, err := h.departmentService.GetAllTeachersUnderDepartment(c.Request.Context(), c.Param("departmentId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, teachers)
}

// GetPage godoc
// GET /cm/d/page?page=0&size=10
func (h *DepartmentHandler) GetPage(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	departments, err := h.departmentService.GetPage(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, departments)
}

// SortByName godoc
// GET /cm/get/d/sort/:departmentName
func (h *DepartmentHandler) SortByName(c *gin.Context) {
	departments, err := h.departmentService.SortByName(c.Request.Context(), c.Param("departmentName"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, departments)
}

// Update godoc
// PUT /cm/d/update/:departmentId
func (h *DepartmentHandler) Update(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	var req model.UpdateDepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	department, err := h.departmentService.Update(c.Request.Context(), actor, c.Param("departmentId"), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, department)
}

// Delete godoc
// DELETE /cm/d/delete/:departmentId
func (h *DepartmentHandler) Delete(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	if err := h.departmentService.Delete(c.Request.Context(), actor, c.Param("departmentId")); err != nil {
		writeError(c, h.log, err)
		return
	}
	response.NoContent(c)
}
