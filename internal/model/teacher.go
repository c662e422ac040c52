package model

import "time"

// Teacher is a member of a department's teaching staff.
type Teacher struct {
	ID           int       `json:"id"`
	TeacherID    string    `json:"teacherId"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	DepartmentID string    `json:"departmentId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateTeacherRequest is the payload for creating a teacher.
type CreateTeacherRequest struct {
	TeacherID    string `json:"teacherId" binding:"required,max=50,key"`
	Name         string `json:"name" binding:"required,max=100"`
	Age          int    `json:"age" binding:"min=0,max=150"`
	DepartmentID string `json:"departmentId" binding:"required,max=50"`
}

// UpdateTeacherRequest carries the fields an update may overwrite.
type UpdateTeacherRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Age          int    `json:"age" binding:"min=0,max=150"`
	DepartmentID string `json:"departmentId" binding:"required,max=50"`
}
