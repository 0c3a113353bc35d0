package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRepo_CreateGetList(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := NewStore(database)
	ctx := context.Background()

	a := testutil.NewTestTask("", "Kickoff", testutil.AsTemplateTask())
	b := testutil.NewTestTask("", "Fieldwork", testutil.AsTemplateTask(), testutil.WithPreviousTask(a.Name))
	require.NoError(t, store.Tasks.Create(ctx, a))
	require.NoError(t, store.Tasks.Create(ctx, b))

	now := time.Now().UTC()
	tmpl := &domain.ProjectTemplate{
		Name: "Audit",
		Tasks: []domain.ProjectTemplateTask{
			{Task: a.Name, Subject: a.Subject},
			{Task: b.Name, Subject: b.Subject},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Templates.Create(ctx, tmpl))
	assert.ErrorIs(t, store.Templates.Create(ctx, tmpl), domain.ErrConflict)

	fetched, err := store.Templates.Get(ctx, "Audit")
	require.NoError(t, err)
	require.Len(t, fetched.Tasks, 2)
	assert.Equal(t, domain.ProjectTemplateTask{Idx: 1, Task: a.Name, Subject: "Kickoff"}, fetched.Tasks[0])
	assert.Equal(t, 2, fetched.Tasks[1].Idx)

	list, err := store.Templates.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Tasks, 2)

	ok, err := store.Templates.Exists(ctx, "Audit")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = store.Templates.Get(ctx, "Missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateRepo_Create_UnknownTaskRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(database)
	now := time.Now().UTC()

	err := repo.Create(context.Background(), &domain.ProjectTemplate{
		Name:      "Broken",
		Tasks:     []domain.ProjectTemplateTask{{Task: "TASK-NOPE", Subject: "x"}},
		CreatedAt: now,
		UpdatedAt: now,
	})
	assert.Error(t, err)
}
