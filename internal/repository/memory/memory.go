// Package memory provides in-process implementations of the repository
// interfaces. They back unit tests and local tooling that should not need
// PostgreSQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/repository"
)

// counter tracks generated ids and successful writes.
type counter struct {
	nextID int
	writes int
}

func (c *counter) id() int {
	c.nextID++
	return c.nextID
}

func page[T any](items []T, limit, offset int) []T {
	out := make([]T, 0)
	if offset >= len(items) {
		return out
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return append(out, items[offset:end]...)
}

// DepartmentStore is an in-memory repository.DepartmentRepository.
type DepartmentStore struct {
	mu    sync.Mutex
	c     counter
	items []model.Department
}

// NewDepartmentStore creates an empty DepartmentStore.
func NewDepartmentStore() *DepartmentStore {
	return &DepartmentStore{}
}

// Writes reports how many creates, updates, touches and deletes succeeded.
func (s *DepartmentStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.writes
}

func (s *DepartmentStore) index(departmentID string) int {
	for i := range s.items {
		if s.items[i].DepartmentID == departmentID {
			return i
		}
	}
	return -1
}

func (s *DepartmentStore) GetAll(ctx context.Context) ([]model.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]model.Department, 0, len(s.items)), s.items...), nil
}

func (s *DepartmentStore) GetByDepartmentID(ctx context.Context, departmentID string) (*model.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(departmentID)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	d := s.items[i]
	return &d, nil
}

func (s *DepartmentStore) ListPage(ctx context.Context, limit, offset int) ([]model.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return page(s.items, limit, offset), nil
}

func (s *DepartmentStore) ListSortedByName(ctx context.Context) ([]model.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append(make([]model.Department, 0, len(s.items)), s.items...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.Compare(out[i].DepartmentName, out[j].DepartmentName) < 0
	})
	return out, nil
}

func (s *DepartmentStore) Create(ctx context.Context, d *model.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(d.DepartmentID) >= 0 {
		return repository.ErrDuplicateKey
	}
	now := time.Now()
	d.ID = s.c.id()
	d.CreatedAt, d.UpdatedAt = now, now
	s.items = append(s.items, *d)
	s.c.writes++
	return nil
}

func (s *DepartmentStore) Update(ctx context.Context, d *model.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(d.DepartmentID)
	if i < 0 {
		return repository.ErrNotFound
	}
	d.UpdatedAt = time.Now()
	s.items[i].DepartmentName = d.DepartmentName
	s.items[i].ShortCode = d.ShortCode
	s.items[i].AvailableOnline = d.AvailableOnline
	s.items[i].UpdatedAt = d.UpdatedAt
	s.c.writes++
	return nil
}

func (s *DepartmentStore) Touch(ctx context.Context, departmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(departmentID)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.items[i].UpdatedAt = time.Now()
	s.c.writes++
	return nil
}

func (s *DepartmentStore) Delete(ctx context.Context, departmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(departmentID)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.c.writes++
	return nil
}

// StudentStore is an in-memory repository.StudentRepository.
type StudentStore struct {
	mu    sync.Mutex
	c     counter
	items []model.Student
}

// NewStudentStore creates an empty StudentStore.
func NewStudentStore() *StudentStore {
	return &StudentStore{}
}

// Writes reports how many creates, updates and deletes succeeded.
func (s *StudentStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.writes
}

func (s *StudentStore) index(studentID string) int {
	for i := range s.items {
		if s.items[i].StudentID == studentID {
			return i
		}
	}
	return -1
}

func (s *StudentStore) filter(keep func(model.Student) bool) []model.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Student, 0)
	for _, st := range s.items {
		if keep(st) {
			out = append(out, st)
		}
	}
	return out
}

func (s *StudentStore) GetAll(ctx context.Context) ([]model.Student, error) {
	return s.filter(func(model.Student) bool { return true }), nil
}

func (s *StudentStore) GetByStudentID(ctx context.Context, studentID string) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(studentID)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	st := s.items[i]
	return &st, nil
}

func (s *StudentStore) GetByAge(ctx context.Context, age int) ([]model.Student, error) {
	return s.filter(func(st model.Student) bool { return st.Age == age }), nil
}

func (s *StudentStore) ListByDepartment(ctx context.Context, departmentID string) ([]model.Student, error) {
	return s.filter(func(st model.Student) bool { return st.DepartmentID == departmentID }), nil
}

func (s *StudentStore) ListPage(ctx context.Context, limit, offset int) ([]model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return page(s.items, limit, offset), nil
}

func (s *StudentStore) Create(ctx context.Context, st *model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(st.StudentID) >= 0 {
		return repository.ErrDuplicateKey
	}
	now := time.Now()
	st.ID = s.c.id()
	st.CreatedAt, st.UpdatedAt = now, now
	s.items = append(s.items, *st)
	s.c.writes++
	return nil
}

func (s *StudentStore) Update(ctx context.Context, st *model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(st.StudentID)
	if i < 0 {
		return repository.ErrNotFound
	}
	st.UpdatedAt = time.Now()
	s.items[i].Name = st.Name
	s.items[i].Age = st.Age
	s.items[i].DepartmentID = st.DepartmentID
	s.items[i].UpdatedAt = st.UpdatedAt
	s.c.writes++
	return nil
}

func (s *StudentStore) Delete(ctx context.Context, studentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(studentID)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.c.writes++
	return nil
}

// TeacherStore is an in-memory repository.TeacherRepository.
type TeacherStore struct {
	mu    sync.Mutex
	c     counter
	items []model.Teacher
}

// NewTeacherStore creates an empty TeacherStore.
func NewTeacherStore() *TeacherStore {
	return &TeacherStore{}
}

// Writes reports how many creates, updates and deletes succeeded.
func (s *TeacherStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.writes
}

func (s *TeacherStore) index(teacherID string) int {
	for i := range s.items {
		if s.items[i].TeacherID == teacherID {
			return i
		}
	}
	return -1
}

func (s *TeacherStore) filter(keep func(model.Teacher) bool) []model.Teacher {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Teacher, 0)
	for _, t := range s.items {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TeacherStore) GetAll(ctx context.Context) ([]model.Teacher, error) {
	return s.filter(func(model.Teacher) bool { return true }), nil
}

func (s *TeacherStore) GetByTeacherID(ctx context.Context, teacherID string) (*model.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(teacherID)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	t := s.items[i]
	return &t, nil
}

func (s *TeacherStore) GetByAge(ctx context.Context, age int) ([]model.Teacher, error) {
	return s.filter(func(t model.Teacher) bool { return t.Age == age }), nil
}

func (s *TeacherStore) ListByDepartment(ctx context.Context, departmentID string) ([]model.Teacher, error) {
	return s.filter(func(t model.Teacher) bool { return t.DepartmentID == departmentID }), nil
}

func (s *TeacherStore) ListPage(ctx context.Context, limit, offset int) ([]model.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return page(s.items, limit, offset), nil
}

func (s *TeacherStore) Create(ctx context.Context, t *model.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(t.TeacherID) >= 0 {
		return repository.ErrDuplicateKey
	}
	now := time.Now()
	t.ID = s.c.id()
	t.CreatedAt, t.UpdatedAt = now, now
	s.items = append(s.items, *t)
	s.c.writes++
	return nil
}

func (s *TeacherStore) Update(ctx context.Context, t *model.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(t.TeacherID)
	if i < 0 {
		return repository.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	s.items[i].Name = t.Name
	s.items[i].Age = t.Age
	s.items[i].DepartmentID = t.DepartmentID
	s.items[i].UpdatedAt = t.UpdatedAt
	s.c.writes++
	return nil
}

func (s *TeacherStore) Delete(ctx context.Context, teacherID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(teacherID)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.c.writes++
	return nil
}

// UserStore is an in-memory repository.UserRepository.
type UserStore struct {
	mu    sync.Mutex
	c     counter
	users map[string]model.User
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]model.User)}
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Username]; ok {
		return repository.ErrDuplicateKey
	}
	now := time.Now()
	u.ID = s.c.id()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.Username] = *u
	s.c.writes++
	return nil
}

var (
	_ repository.DepartmentRepository = (*DepartmentStore)(nil)
	_ repository.StudentRepository    = (*StudentStore)(nil)
	_ repository.TeacherRepository    = (*TeacherStore)(nil)
	_ repository.UserRepository       = (*UserStore)(nil)
)
