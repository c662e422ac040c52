package repository

import (
	"context"

	"github.com/campusly/college-management/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TeacherRepository handles teacher data access.
type TeacherRepository interface {
	GetAll(ctx context.Context) ([]model.Teacher, error)
	GetByTeacherID(ctx context.Context, teacherID string) (*model.Teacher, error)
	GetByAge(ctx context.Context, age int) ([]model.Teacher, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.Teacher, error)
	ListPage(ctx context.Context, limit, offset int) ([]model.Teacher, error)
	Create(ctx context.Context, t *model.Teacher) error
	Update(ctx context.Context, t *model.Teacher) error
	Delete(ctx context.Context, teacherID string) error
}

type teacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(pool *pgxpool.Pool) TeacherRepository {
	return &teacherRepository{pool: pool}
}

const teacherColumns = `id, teacher_id, name, age, department_id, created_at, updated_at`

func scanTeacher(row pgx.Row, t *model.Teacher) error {
	return row.Scan(&t.ID, &t.TeacherID, &t.Name, &t.Age, &t.DepartmentID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *teacherRepository) list(ctx context.Context, query string, args ...any) ([]model.Teacher, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := make([]model.Teacher, 0)
	for rows.Next() {
		var t model.Teacher
		if err := scanTeacher(rows, &t); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func (r *teacherRepository) GetAll(ctx context.Context) ([]model.Teacher, error) {
	return r.list(ctx, `SELECT `+teacherColumns+` FROM teachers ORDER BY id`)
}

func (r *teacherRepository) GetByTeacherID(ctx context.Context, teacherID string) (*model.Teacher, error) {
	t := &model.Teacher{}
	err := scanTeacher(r.pool.QueryRow(ctx,
		`SELECT `+teacherColumns+` FROM teachers WHERE teacher_id = $1`, teacherID), t)
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *teacherRepository) GetByAge(ctx context.Context, age int) ([]model.Teacher, error) {
	return r.list(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE age = $1 ORDER BY id`, age)
}

func (r *teacherRepository) ListByDepartment(ctx context.Context, departmentID string) ([]model.Teacher, error) {
	return r.list(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE department_id = $1 ORDER BY id`, departmentID)
}

func (r *teacherRepository) ListPage(ctx context.Context, limit, offset int) ([]model.Teacher, error) {
	query, args, err := pageQuery("teachers", teacherColumns, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, query, args...)
}

func (r *teacherRepository) Create(ctx context.Context, t *model.Teacher) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO teachers (teacher_id, name, age, department_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		t.TeacherID, t.Name, t.Age, t.DepartmentID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return translate(err)
}

func (r *teacherRepository) Update(ctx context.Context, t *model.Teacher) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE teachers SET name = $1, age = $2, department_id = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE teacher_id = $4
		 RETURNING updated_at`,
		t.Name, t.Age, t.DepartmentID, t.TeacherID,
	).Scan(&t.UpdatedAt)
	return translate(err)
}

func (r *teacherRepository) Delete(ctx context.Context, teacherID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teachers WHERE teacher_id = $1`, teacherID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
