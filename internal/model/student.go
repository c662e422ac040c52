package model

import "time"

// Student is a student enrolled in a department.
type Student struct {
	ID           int       `json:"id"`
	StudentID    string    `json:"studentId"`
	RollNumber   string    `json:"rollNumber"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Branch       Branch    `json:"branch"`
	DepartmentID string    `json:"departmentId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateStudentRequest is the payload for creating a student.
// Branch validity is checked by the service so it maps to BRANCH_INVALID.
type CreateStudentRequest struct {
	StudentID    string `json:"studentId" binding:"required,max=50,key"`
	RollNumber   string `json:"rollNumber" binding:"max=50"`
	Name         string `json:"name" binding:"required,max=100"`
	Age          int    `json:"age" binding:"min=0,max=150"`
	Branch       Branch `json:"branch" binding:"required"`
	DepartmentID string `json:"departmentId" binding:"required,max=50"`
}

// UpdateStudentRequest carries the fields an update may overwrite.
type UpdateStudentRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Age          int    `json:"age" binding:"min=0,max=150"`
	DepartmentID string `json:"departmentId" binding:"required,max=50"`
}
