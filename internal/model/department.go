package model

import "time"

// Department is an academic department. DepartmentID is the business key;
// ID is the generated row id.
type Department struct {
	ID              int       `json:"id"`
	DepartmentID    string    `json:"departmentId"`
	DepartmentName  string    `json:"departmentName"`
	ShortCode       string    `json:"shortCode"`
	AvailableOnline bool      `json:"availableOnline"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DepartmentDetail is a department with its members, derived from the
// department_id column of each member row. Empty collections encode as [].
type DepartmentDetail struct {
	Department
	Students []Student `json:"students"`
	Teachers []Teacher `json:"teachers"`
}

// CreateDepartmentRequest is the payload for creating a department.
type CreateDepartmentRequest struct {
	DepartmentID    string `json:"departmentId" binding:"required,max=50,key"`
	DepartmentName  string `json:"departmentName" binding:"required,max=100"`
	ShortCode       string `json:"shortCode" binding:"max=20"`
	AvailableOnline bool   `json:"availableOnline"`
}

// UpdateDepartmentRequest is the payload for updating a department.
// The business key comes from the path and cannot be changed.
type UpdateDepartmentRequest struct {
	DepartmentName  string `json:"departmentName" binding:"required,max=100"`
	ShortCode       string `json:"shortCode" binding:"max=20"`
	AvailableOnline bool   `json:"availableOnline"`
}
