package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/repository"
	"github.com/rs/zerolog"
)

// TeacherService handles teacher business logic. Teachers follow the same
// department membership rules as students but carry no branch.
type TeacherService struct {
	teacherRepo repository.TeacherRepository
	relations   *DepartmentRelations
	audit       Auditor
	log         zerolog.Logger
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(
	teacherRepo repository.TeacherRepository,
	relations *DepartmentRelations,
	audit Auditor,
	log zerolog.Logger,
) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		relations:   relations,
		audit:       audit,
		log:         log.With().Str("component", "teacher_service").Logger(),
	}
}

// Save creates a teacher and attaches it to its department.
func (s *TeacherService) Save(ctx context.Context, actor model.Principal, teacher *model.Teacher) (*model.Teacher, error) {
	err := s.relations.Attach(ctx, teacher.DepartmentID, func(ctx context.Context) error {
		if err := s.teacherRepo.Create(ctx, teacher); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrTeacherExists
			}
			return fmt.Errorf("create teacher: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, model.AuditCreate, model.AuditTeacher, teacher.TeacherID)
	s.log.Info().
		Str("teacher_id", teacher.TeacherID).
		Str("department_id", teacher.DepartmentID).
		Str("actor", actor.Username).
		Msg("teacher created")
	return teacher, nil
}

// GetAll returns every teacher.
func (s *TeacherService) GetAll(ctx context.Context) ([]model.Teacher, error) {
	return s.teacherRepo.GetAll(ctx)
}

// GetByID returns a teacher by business key.
func (s *TeacherService) GetByID(ctx context.Context, teacherID string) (*model.Teacher, error) {
	teacher, err := s.teacherRepo.GetByTeacherID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	return teacher, nil
}

// GetByAge returns the teachers whose age equals age exactly.
func (s *TeacherService) GetByAge(ctx context.Context, age int) ([]model.Teacher, error) {
	return s.teacherRepo.GetByAge(ctx, age)
}

// GetPage returns one 0-indexed page of teachers ordered by row id.
func (s *TeacherService) GetPage(ctx context.Context, page, size int) ([]model.Teacher, error) {
	limit, offset := pageBounds(page, size)
	return s.teacherRepo.ListPage(ctx, limit, offset)
}

// Update overwrites name, age and department of an existing teacher.
// The new department is not checked for existence.
func (s *TeacherService) Update(ctx context.Context, actor model.Principal, teacherID string, patch model.UpdateTeacherRequest) (*model.Teacher, error) {
	teacher, err := s.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	previous := teacher.DepartmentID
	teacher.Name = patch.Name
	teacher.Age = patch.Age
	teacher.DepartmentID = patch.DepartmentID

	write := func(ctx context.Context) error {
		if err := s.teacherRepo.Update(ctx, teacher); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTeacherNotFound
			}
			return fmt.Errorf("update teacher: %w", err)
		}
		return nil
	}

	if previous == teacher.DepartmentID {
		err = write(ctx)
	} else {
		err = s.relations.Move(ctx, previous, teacher.DepartmentID, write)
	}
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, model.AuditUpdate, model.AuditTeacher, teacherID)
	s.log.Info().Str("teacher_id", teacherID).Str("actor", actor.Username).Msg("teacher updated")
	return teacher, nil
}

// Delete detaches a teacher from its department and removes it.
func (s *TeacherService) Delete(ctx context.Context, actor model.Principal, teacherID string) error {
	teacher, err := s.GetByID(ctx, teacherID)
	if err != nil {
		return err
	}

	err = s.relations.Detach(ctx, teacher.DepartmentID, func(ctx context.Context) error {
		if err := s.teacherRepo.Delete(ctx, teacherID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTeacherNotFound
			}
			return fmt.Errorf("delete teacher: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditDelete, model.AuditTeacher, teacherID)
	s.log.Info().Str("teacher_id", teacherID).Str("actor", actor.Username).Msg("teacher deleted")
	return nil
}
