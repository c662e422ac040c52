package repository

import (
	"context"

	"github.com/campusly/college-management/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StudentRepository handles student data access.
type StudentRepository interface {
	GetAll(ctx context.Context) ([]model.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*model.Student, error)
	GetByAge(ctx context.Context, age int) ([]model.Student, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.Student, error)
	ListPage(ctx context.Context, limit, offset int) ([]model.Student, error)
	Create(ctx context.Context, s *model.Student) error
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, studentID string) error
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

const studentColumns = `id, student_id, roll_number, name, age, branch, department_id, created_at, updated_at`

func scanStudent(row pgx.Row, s *model.Student) error {
	return row.Scan(&s.ID, &s.StudentID, &s.RollNumber, &s.Name, &s.Age, &s.Branch, &s.DepartmentID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *studentRepository) list(ctx context.Context, query string, args ...any) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]model.Student, 0)
	for rows.Next() {
		var s model.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetAll retrieves every student in row order.
func (r *studentRepository) GetAll(ctx context.Context) ([]model.Student, error) {
	return r.list(ctx, `SELECT `+studentColumns+` FROM students ORDER BY id`)
}

// GetByStudentID retrieves a student by business key.
func (r *studentRepository) GetByStudentID(ctx context.Context, studentID string) (*model.Student, error) {
	s := &model.Student{}
	err := scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_id = $1`, studentID), s)
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

// GetByAge retrieves students whose age matches exactly.
func (r *studentRepository) GetByAge(ctx context.Context, age int) ([]model.Student, error) {
	return r.list(ctx, `SELECT `+studentColumns+` FROM students WHERE age = $1 ORDER BY id`, age)
}

// ListByDepartment retrieves the members of a department.
func (r *studentRepository) ListByDepartment(ctx context.Context, departmentID string) ([]model.Student, error) {
	return r.list(ctx, `SELECT `+studentColumns+` FROM students WHERE department_id = $1 ORDER BY id`, departmentID)
}

// ListPage retrieves one page of students in row order.
func (r *studentRepository) ListPage(ctx context.Context, limit, offset int) ([]model.Student, error) {
	query, args, err := pageQuery("students", studentColumns, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, query, args...)
}

// Create inserts a new student.
func (r *studentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (student_id, roll_number, name, age, branch, department_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		s.StudentID, s.RollNumber, s.Name, s.Age, s.Branch, s.DepartmentID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return translate(err)
}

// Update overwrites the mutable fields of a student.
func (r *studentRepository) Update(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE students SET name = $1, age = $2, department_id = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE student_id = $4
		 RETURNING updated_at`,
		s.Name, s.Age, s.DepartmentID, s.StudentID,
	).Scan(&s.UpdatedAt)
	return translate(err)
}

// Delete removes a student by business key.
func (r *studentRepository) Delete(ctx context.Context, studentID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE student_id = $1`, studentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
