package memory

import (
	"context"
	"testing"

	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentStore_PageBeyondEndIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewStudentStore()
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, s.Create(ctx, &model.Student{StudentID: id, DepartmentID: "D"}))
	}

	got, err := s.ListPage(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.ListPage(ctx, 2, 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStudentStore_DuplicateKey(t *testing.T) {
	ctx := context.Background()
	s := NewStudentStore()
	require.NoError(t, s.Create(ctx, &model.Student{StudentID: "1"}))
	assert.ErrorIs(t, s.Create(ctx, &model.Student{StudentID: "1"}), repository.ErrDuplicateKey)
	assert.Equal(t, 1, s.Writes())
}

func TestDepartmentStore_TouchMissing(t *testing.T) {
	s := NewDepartmentStore()
	assert.ErrorIs(t, s.Touch(context.Background(), "nope"), repository.ErrNotFound)
	assert.Zero(t, s.Writes())
}

func TestDepartmentStore_SortedByName(t *testing.T) {
	ctx := context.Background()
	s := NewDepartmentStore()
	require.NoError(t, s.Create(ctx, &model.Department{DepartmentID: "2", DepartmentName: "ECE"}))
	require.NoError(t, s.Create(ctx, &model.Department{DepartmentID: "1", DepartmentName: "CSE"}))

	got, err := s.ListSortedByName(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "CSE", got[0].DepartmentName)
	assert.Equal(t, "ECE", got[1].DepartmentName)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ECE", all[0].DepartmentName, "default order is insertion")
}
