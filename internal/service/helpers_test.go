package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/repository/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var admin = model.Principal{Username: "admin", Roles: []model.Role{model.RoleAdmin}}

type recordedAudit struct {
	Actor  string
	Action model.AuditAction
	Entity model.AuditEntity
	Key    string
}

type recordingAuditor struct {
	mu      sync.Mutex
	entries []recordedAudit
}

func (a *recordingAuditor) Record(_ context.Context, actor model.Principal, action model.AuditAction, entity model.AuditEntity, key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, recordedAudit{actor.Username, action, entity, key})
}

func (a *recordingAuditor) Entries() []recordedAudit {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]recordedAudit(nil), a.entries...)
}

type fixture struct {
	departments *memory.DepartmentStore
	students    *memory.StudentStore
	teachers    *memory.TeacherStore
	audit       *recordingAuditor

	relations         *DepartmentRelations
	studentService    *StudentService
	teacherService    *TeacherService
	departmentService *DepartmentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		departments: memory.NewDepartmentStore(),
		students:    memory.NewStudentStore(),
		teachers:    memory.NewTeacherStore(),
		audit:       &recordingAuditor{},
	}
	log := zerolog.Nop()
	f.relations = NewDepartmentRelations(f.departments, f.students, f.teachers, NewLocalLocker(time.Second), log)
	f.studentService = NewStudentService(f.students, f.relations, f.audit, log)
	f.teacherService = NewTeacherService(f.teachers, f.relations, f.audit, log)
	f.departmentService = NewDepartmentService(f.departments, f.relations, f.audit, log)
	return f
}

func (f *fixture) department(t *testing.T, id, name string) *model.Department {
	t.Helper()
	d, err := f.departmentService.Save(context.Background(), admin, &model.Department{
		DepartmentID:   id,
		DepartmentName: name,
		ShortCode:      name,
	})
	require.NoError(t, err)
	return d
}

func (f *fixture) student(t *testing.T, id, departmentID string, age int) *model.Student {
	t.Helper()
	s, err := f.studentService.Save(context.Background(), admin, &model.Student{
		StudentID:    id,
		RollNumber:   "S" + id,
		Name:         "Student " + id,
		Age:          age,
		Branch:       model.BranchCSE,
		DepartmentID: departmentID,
	})
	require.NoError(t, err)
	return s
}

func studentIDs(students []model.Student) []string {
	ids := make([]string, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.StudentID)
	}
	return ids
}
