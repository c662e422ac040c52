package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/campusly/college-management/internal/config"
	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/repository"
	"github.com/rs/zerolog"
)

// DepartmentRelations is the only path through which a department gains or
// loses members. Membership itself lives in the member's department_id column;
// this type serializes changes per department and persists the department
// side of every change.
type DepartmentRelations struct {
	departmentRepo repository.DepartmentRepository
	studentRepo    repository.StudentRepository
	teacherRepo    repository.TeacherRepository
	locker         Locker
	log            zerolog.Logger
}

// NewDepartmentRelations creates a new DepartmentRelations.
func NewDepartmentRelations(
	departmentRepo repository.DepartmentRepository,
	studentRepo repository.StudentRepository,
	teacherRepo repository.TeacherRepository,
	locker Locker,
	log zerolog.Logger,
) *DepartmentRelations {
	return &DepartmentRelations{
		departmentRepo: departmentRepo,
		studentRepo:    studentRepo,
		teacherRepo:    teacherRepo,
		locker:         locker,
		log:            log.With().Str("component", "department_relations").Logger(),
	}
}

// Attach runs write, which must link a member to departmentID, while holding
// the department's lock. The department must exist.
func (m *DepartmentRelations) Attach(ctx context.Context, departmentID string, write func(context.Context) error) error {
	release, err := m.lock(ctx, departmentID)
	if err != nil {
		return err
	}
	defer release()

	if err := m.requireDepartment(ctx, departmentID); err != nil {
		return err
	}
	if err := write(ctx); err != nil {
		return err
	}
	return m.touch(ctx, departmentID, false)
}

// Detach persists the department first and then runs write, which must
// remove the member. The department must exist.
func (m *DepartmentRelations) Detach(ctx context.Context, departmentID string, write func(context.Context) error) error {
	release, err := m.lock(ctx, departmentID)
	if err != nil {
		return err
	}
	defer release()

	if err := m.requireDepartment(ctx, departmentID); err != nil {
		return err
	}
	if err := m.touch(ctx, departmentID, false); err != nil {
		return err
	}
	return write(ctx)
}

// Move runs write, which must relink a member from one department to
// another, while holding both locks. Neither department has to exist; the
// ones that do are persisted.
func (m *DepartmentRelations) Move(ctx context.Context, from, to string, write func(context.Context) error) error {
	keys := []string{from, to}
	if from == to {
		keys = keys[:1]
	}
	sort.Strings(keys)

	for _, key := range keys {
		release, err := m.lock(ctx, key)
		if err != nil {
			return err
		}
		defer release()
	}

	if err := write(ctx); err != nil {
		return err
	}
	for _, key := range keys {
		if err := m.touch(ctx, key, true); err != nil {
			return err
		}
	}

	m.log.Debug().Str("from", from).Str("to", to).Msg("member moved")
	return nil
}

// Remove runs write, which must delete the department itself, while holding
// its lock so no membership change is in flight. Members are left untouched.
func (m *DepartmentRelations) Remove(ctx context.Context, departmentID string, write func(context.Context) error) error {
	release, err := m.lock(ctx, departmentID)
	if err != nil {
		return err
	}
	defer release()

	return write(ctx)
}

// Students returns the students of a department.
func (m *DepartmentRelations) Students(ctx context.Context, departmentID string) ([]model.Student, error) {
	if err := m.requireDepartment(ctx, departmentID); err != nil {
		return nil, err
	}
	return m.studentRepo.ListByDepartment(ctx, departmentID)
}

// Teachers returns the teachers of a department.
func (m *DepartmentRelations) Teachers(ctx context.Context, departmentID string) ([]model.Teacher, error) {
	if err := m.requireDepartment(ctx, departmentID); err != nil {
		return nil, err
	}
	return m.teacherRepo.ListByDepartment(ctx, departmentID)
}

func (m *DepartmentRelations) lock(ctx context.Context, departmentID string) (func(), error) {
	release, err := m.locker.Acquire(ctx, config.CacheKey.DepartmentLockKey(departmentID))
	if err != nil {
		if errors.Is(err, ErrDepartmentBusy) {
			m.log.Warn().Str("department_id", departmentID).Msg("department lock wait exceeded")
			return nil, err
		}
		return nil, fmt.Errorf("lock department %s: %w", departmentID, err)
	}
	return release, nil
}

func (m *DepartmentRelations) requireDepartment(ctx context.Context, departmentID string) error {
	if _, err := m.departmentRepo.GetByDepartmentID(ctx, departmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDepartmentNotFound
		}
		return fmt.Errorf("get department %s: %w", departmentID, err)
	}
	return nil
}

func (m *DepartmentRelations) touch(ctx context.Context, departmentID string, allowMissing bool) error {
	err := m.departmentRepo.Touch(ctx, departmentID)
	if errors.Is(err, repository.ErrNotFound) {
		if allowMissing {
			return nil
		}
		return ErrDepartmentNotFound
	}
	if err != nil {
		return fmt.Errorf("touch department %s: %w", departmentID, err)
	}
	return nil
}
