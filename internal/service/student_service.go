package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/repository"
	"github.com/rs/zerolog"
)

// StudentService handles student business logic.
type StudentService struct {
	studentRepo repository.StudentRepository
	relations   *DepartmentRelations
	audit       Auditor
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(
	studentRepo repository.StudentRepository,
	relations *DepartmentRelations,
	audit Auditor,
	log zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		relations:   relations,
		audit:       audit,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// Save creates a student and attaches it to its department. The department
// is resolved before the branch is checked.
func (s *StudentService) Save(ctx context.Context, actor model.Principal, student *model.Student) (*model.Student, error) {
	err := s.relations.Attach(ctx, student.DepartmentID, func(ctx context.Context) error {
		if !student.Branch.Valid() {
			return ErrBranchInvalid
		}
		if err := s.studentRepo.Create(ctx, student); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrStudentExists
			}
			return fmt.Errorf("create student: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, model.AuditCreate, model.AuditStudent, student.StudentID)
	s.log.Info().
		Str("student_id", student.StudentID).
		Str("department_id", student.DepartmentID).
		Str("actor", actor.Username).
		Msg("student created")
	return student, nil
}

// GetAll returns every student.
func (s *StudentService) GetAll(ctx context.Context) ([]model.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// GetByID returns a student by business key.
func (s *StudentService) GetByID(ctx context.Context, studentID string) (*model.Student, error) {
	student, err := s.studentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return student, nil
}

// GetByAge returns the students whose age equals age exactly.
func (s *StudentService) GetByAge(ctx context.Context, age int) ([]model.Student, error) {
	return s.studentRepo.GetByAge(ctx, age)
}

// GetPage returns one 0-indexed page of students ordered by row id.
func (s *StudentService) GetPage(ctx context.Context, page, size int) ([]model.Student, error) {
	limit, offset := pageBounds(page, size)
	return s.studentRepo.ListPage(ctx, limit, offset)
}

// Update overwrites name, age and department of an existing student.
// The new department is not checked for existence.
func (s *StudentService) Update(ctx context.Context, actor model.Principal, studentID string, patch model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	previous := student.DepartmentID
	student.Name = patch.Name
	student.Age = patch.Age
	student.DepartmentID = patch.DepartmentID

	write := func(ctx context.Context) error {
		if err := s.studentRepo.Update(ctx, student); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("update student: %w", err)
		}
		return nil
	}

	if previous == student.DepartmentID {
		err = write(ctx)
	} else {
		err = s.relations.Move(ctx, previous, student.DepartmentID, write)
	}
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, model.AuditUpdate, model.AuditStudent, studentID)
	s.log.Info().Str("student_id", studentID).Str("actor", actor.Username).Msg("student updated")
	return student, nil
}

// Delete detaches a student from its department and removes it.
func (s *StudentService) Delete(ctx context.Context, actor model.Principal, studentID string) error {
	student, err := s.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	err = s.relations.Detach(ctx, student.DepartmentID, func(ctx context.Context) error {
		if err := s.studentRepo.Delete(ctx, studentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("delete student: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditDelete, model.AuditStudent, studentID)
	s.log.Info().Str("student_id", studentID).Str("actor", actor.Username).Msg("student deleted")
	return nil
}
