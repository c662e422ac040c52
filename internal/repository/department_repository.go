package repository

import (
	"context"

	"github.com/campusly/college-management/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DepartmentRepository interface {
	GetAll(ctx context.Context) ([]model.Department, error)
	GetByDepartmentID(ctx context.Context, departmentID string) (*model.Department, error)
	ListPage(ctx context.Context, limit, offset int) ([]model.Department, error)
	ListSortedByName(ctx context.Context) ([]model.Department, error)
	Create(ctx context.Context, d *model.Department) error
	Update(ctx context.Context, d *model.Department) error
	// Touch bumps updated_at; it persists a membership change on the department side.
	Touch(ctx context.Context, departmentID string) error
	Delete(ctx context.Context, departmentID string) error
}

type departmentRepository struct {
	db *pgxpool.Pool
}

func NewDepartmentRepository(db *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{db: db}
}

const departmentColumns = `id, department_id, department_name, short_code, available_online, created_at, updated_at`

func scanDepartment(row pgx.Row, d *model.Department) error {
	return row.Scan(&d.ID, &d.DepartmentID, &d.DepartmentName, &d.ShortCode, &d.AvailableOnline, &d.CreatedAt, &d.UpdatedAt)
}

func (r *departmentRepository) list(ctx context.Context, query string, args ...any) ([]model.Department, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]model.Department, 0)
	for rows.Next() {
		var d model.Department
		if err := scanDepartment(rows, &d); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *departmentRepository) GetAll(ctx context.Context) ([]model.Department, error) {
	return r.list(ctx, `SELECT `+departmentColumns+` FROM departments ORDER BY id`)
}

func (r *departmentRepository) GetByDepartmentID(ctx context.Context, departmentID string) (*model.Department, error) {
	d := &model.Department{}
	err := scanDepartment(r.db.QueryRow(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE department_id = $1`, departmentID), d)
	if err != nil {
		return nil, translate(err)
	}
	return d, nil
}

func (r *departmentRepository) ListPage(ctx context.Context, limit, offset int) ([]model.Department, error) {
	query, args, err := pageQuery("departments", departmentColumns, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, query, args...)
}

func (r *departmentRepository) ListSortedByName(ctx context.Context) ([]model.Department, error) {
	return r.list(ctx, `SELECT `+departmentColumns+` FROM departments ORDER BY department_name ASC, id ASC`)
}

func (r *departmentRepository) Create(ctx context.Context, d *model.Department) error {
	query := `
		INSERT INTO departments (department_id, department_name, short_code, available_online)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, d.DepartmentID, d.DepartmentName, d.ShortCode, d.AvailableOnline).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	return translate(err)
}

func (r *departmentRepository) Update(ctx context.Context, d *model.Department) error {
	query := `
		UPDATE departments
		SET department_name = $1, short_code = $2, available_online = $3, updated_at = CURRENT_TIMESTAMP
		WHERE department_id = $4
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, d.DepartmentName, d.ShortCode, d.AvailableOnline, d.DepartmentID).
		Scan(&d.UpdatedAt)
	return translate(err)
}

func (r *departmentRepository) Touch(ctx context.Context, departmentID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE departments SET updated_at = CURRENT_TIMESTAMP WHERE department_id = $1`, departmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, departmentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE department_id = $1`, departmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
