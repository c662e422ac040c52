package service

import "errors"

// Domain errors returned by the services. Handlers map them to status codes.
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrDepartmentNotFound = errors.New("department not found")

	ErrBranchInvalid = errors.New("branch is not a recognized value")

	ErrStudentExists    = errors.New("student with this id already exists")
	ErrTeacherExists    = errors.New("teacher with this id already exists")
	ErrDepartmentExists = errors.New("department with this id already exists")

	// ErrDepartmentBusy is returned when a department's membership lock
	// could not be acquired in time.
	ErrDepartmentBusy = errors.New("department is being modified, try again")
)
