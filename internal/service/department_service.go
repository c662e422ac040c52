package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/repository"
	"github.com/rs/zerolog"
)

// DepartmentService handles department business logic.
type DepartmentService struct {
	departmentRepo repository.DepartmentRepository
	relations      *DepartmentRelations
	audit          Auditor
	log            zerolog.Logger
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(
	departmentRepo repository.DepartmentRepository,
	relations *DepartmentRelations,
	audit Auditor,
	log zerolog.Logger,
) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		relations:      relations,
		audit:          audit,
		log:            log.With().Str("component", "department_service").Logger(),
	}
}

// Save creates a department. Uniqueness of the business key is left to the
// database index.
func (s *DepartmentService) Save(ctx context.Context, actor model.Principal, department *model.Department) (*model.Department, error) {
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDepartmentExists
		}
		return nil, fmt.Errorf("create department: %w", err)
	}

	s.audit.Record(ctx, actor, model.AuditCreate, model.AuditDepartment, department.DepartmentID)
	s.log.Info().Str("department_id", department.DepartmentID).Str("actor", actor.Username).Msg("department created")
	return department, nil
}

// GetAll returns every department without members.
func (s *DepartmentService) GetAll(ctx context.Context) ([]model.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}

// GetByID returns a department together with its students and teachers.
func (s *DepartmentService) GetByID(ctx context.Context, departmentID string) (*model.DepartmentDetail, error) {
	department, err := s.get(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	detail := &model.DepartmentDetail{Department: *department}
	if detail.Students, err = s.relations.Students(ctx, departmentID); err != nil {
		return nil, err
	}
	if detail.Teachers, err = s.relations.Teachers(ctx, departmentID); err != nil {
		return nil, err
	}
	if detail.Students == nil {
		detail.Students = []model.Student{}
	}
	if detail.Teachers == nil {
		detail.Teachers = []model.Teacher{}
	}
	return detail, nil
}

// GetPage returns one 0-indexed page of departments ordered by row id.
func (s *DepartmentService) GetPage(ctx context.Context, page, size int) ([]model.Department, error) {
	limit, offset := pageBounds(page, size)
	return s.departmentRepo.ListPage(ctx, limit, offset)
}

// SortByName returns every department ordered by name ascending. field is
// accepted for route compatibility and not used.
func (s *DepartmentService) SortByName(ctx context.Context, field string) ([]model.Department, error) {
	_ = field
	return s.departmentRepo.ListSortedByName(ctx)
}

// GetAllStudentsUnderDepartment returns the students of a department.
func (s *DepartmentService) GetAllStudentsUnderDepartment(ctx context.Context, departmentID string) ([]model.Student, error) {
	return s.relations.Students(ctx, departmentID)
}

// GetAllTeachersUnderDepartment returns the teachers of a department.
func (s *DepartmentService) GetAllTeachersUnderDepartment(ctx context.Context, departmentID string) ([]model.Teacher, error) {
	return s.relations.Teachers(ctx, departmentID)
}

// Update overwrites name, short code and online availability.
func (s *DepartmentService) Update(ctx context.Context, actor model.Principal, departmentID string, patch model.UpdateDepartmentRequest) (*model.Department, error) {
	department, err := s.get(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	department.DepartmentName = patch.DepartmentName
	department.ShortCode = patch.ShortCode
	department.AvailableOnline = patch.AvailableOnline

	if err := s.departmentRepo.Update(ctx, department); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("update department: %w", err)
	}

	s.audit.Record(ctx, actor, model.AuditUpdate, model.AuditDepartment, departmentID)
	s.log.Info().Str("department_id", departmentID).Str("actor", actor.Username).Msg("department updated")
	return department, nil
}

// Delete removes a department under its lock. Members keep their
// department_id.
func (s *DepartmentService) Delete(ctx context.Context, actor model.Principal, departmentID string) error {
	err := s.relations.Remove(ctx, departmentID, func(ctx context.Context) error {
		if err := s.departmentRepo.Delete(ctx, departmentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrDepartmentNotFound
			}
			return fmt.Errorf("delete department: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, actor, model.AuditDelete, model.AuditDepartment, departmentID)
	s.log.Info().Str("department_id", departmentID).Str("actor", actor.Username).Msg("department deleted")
	return nil
}

func (s *DepartmentService) get(ctx context.Context, departmentID string) (*model.Department, error) {
	department, err := s.departmentRepo.GetByDepartmentID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return department, nil
}
