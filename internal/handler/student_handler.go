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

// StudentHandler handles the student endpoints.
type StudentHandler struct {
	studentService *service.StudentService
	log            zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		log:            log.With().Str("component", "student_handler").Logger(),
	}
}

// Create godoc
// POST /cm/s/create
func (h *StudentHandler) Create(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Save(c.Request.Context(), actor, &model.Student{
		StudentID:    req.StudentID,
		RollNumber:   req.RollNumber,
		Name:         req.Name,
		Age:          req.Age,
		Branch:       req.Branch,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, student)
}

// GetAll godoc
// GET /cm/get/s/get-all
func (h *StudentHandler) GetAll(c *gin.Context) {
	students, err := h.studentService.GetAll(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, students)
}

// GetByID godoc
// GET /cm/get/s/:studentId
func (h *StudentHandler) GetByID(c *gin.Context) {
	student, err := h.studentService.GetByID(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, student)
}

// GetByAge godoc
// GET /cm/get/s/age/:age
func (h *StudentHandler) GetByAge(c *gin.Context) {
	age, err := strconv.Atoi(c.Param("age"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	students, err := h.studentService.GetByAge(c.Request.Context(), age)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, students)
}

// GetPage godoc
// GET /cm/get/s/page?page=0&size=10
func (h *StudentHandler) GetPage(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	students, err := h.studentService.GetPage(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, students)
}

// Update godoc
// PUT /cm/s/update/:studentId
func (h *StudentHandler) Update(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), actor, c.Param("studentId"), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, student)
}

// Delete godoc
// DELETE /cm/s/delete/:studentId
func (h *StudentHandler) Delete(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), actor, c.Param("studentId")); err != nil {
		writeError(c, h.log, err)
		return
	}
	response.NoContent(c)
}
