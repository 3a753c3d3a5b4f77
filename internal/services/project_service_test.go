package services

import (
	"context"
	"testing"

	"kalasangam_backend/internal/models"
	"kalasangam_backend/internal/services/dto"
	"kalasangam_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	owner := uuid.NewString()
	other := uuid.NewString()

	created := env.createProject(t, owner, "Kathak Nights")
	assert.Equal(t, models.ProjectStatusCasting, created.Status)
	require.Len(t, created.Roles, 1)
	assert.Equal(t, "Lead", created.Roles[0].RoleName)
	assert.JSONEq(t, `{}`, string(created.Roles[0].Specs), "Роль без specs хранит пустой объект")

	t.Run("mine", func(t *testing.T) {
		list, err := env.projects.List(env.db, owner, ScopeMine)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, created.ID, list[0].ID)
		assert.False(t, list[0].IsDemo)
	})

	t.Run("all excludes own projects and appends demos", func(t *testing.T) {
		list, err := env.projects.List(env.db, owner, ScopeAll)
		require.NoError(t, err)
		require.Len(t, list, len(demoProjects))
		for _, p := range list {
			assert.True(t, p.IsDemo)
		}

		list, err = env.projects.List(env.db, other, ScopeAll)
		require.NoError(t, err)
		require.Len(t, list, 1+len(demoProjects))
		assert.Equal(t, created.ID, list[0].ID)
		assert.Equal(t, "mock1", list[1].ID)
	})
}

func TestProjectService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.NewString()
	project := env.createProject(t, owner, "Draft")
	roleID := project.Roles[0].ID

	updated, err := env.projects.Save(ctx, env.db, owner, project.ID, &dto.SaveProjectRequest{
		Title:  "Final",
		Status: models.ProjectStatusOpen,
		Role: dto.RoleInput{
			RoleName: "Villain",
			Specs:    []byte(`[{"gender":"any"}]`),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, models.ProjectStatusOpen, updated.Status)
	require.Len(t, updated.Roles, 1, "У проекта одна роль")
	assert.Equal(t, roleID, updated.Roles[0].ID)
	assert.Equal(t, "Villain", updated.Roles[0].RoleName)
	assert.JSONEq(t, `{"gender":"any"}`, string(updated.Roles[0].Specs))

	_, err = env.projects.Save(ctx, env.db, uuid.NewString(), project.ID, &dto.SaveProjectRequest{
		Title: "Hijack",
		Role:  dto.RoleInput{RoleName: "X"},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotProjectOwner)

	_, err = env.projects.Save(ctx, env.db, owner, "mock2", &dto.SaveProjectRequest{
		Title: "Demo",
		Role:  dto.RoleInput{RoleName: "X"},
	})
	assert.ErrorIs(t, err, apperrors.ErrDemoReadOnly)

	_, err = env.projects.Save(ctx, env.db, owner, uuid.NewString(), &dto.SaveProjectRequest{
		Title: "Missing",
		Role:  dto.RoleInput{RoleName: "X"},
	})
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestProjectService_Archive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.NewString()
	project := env.createProject(t, owner, "Short Film")

	assert.ErrorIs(t, env.projects.Archive(ctx, env.db, uuid.NewString(), project.ID), apperrors.ErrNotProjectOwner)
	assert.ErrorIs(t, env.projects.Archive(ctx, env.db, owner, "mock1"), apperrors.ErrDemoReadOnly)

	require.NoError(t, env.projects.Archive(ctx, env.db, owner, project.ID))
	require.NoError(t, env.projects.Archive(ctx, env.db, owner, project.ID), "Повторная архивация не ошибка")

	got, err := env.projects.Get(env.db, project.ID)
	require.NoError(t, err, "Строка проекта не удаляется")
	assert.Equal(t, models.ProjectStatusClosed, got.Status)

	list, err := env.projects.List(env.db, owner, ScopeMine)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = env.projects.Save(ctx, env.db, owner, project.ID, &dto.SaveProjectRequest{
		Title: "Reopen",
		Role:  dto.RoleInput{RoleName: "Lead"},
	})
	assert.ErrorIs(t, err, apperrors.ErrProjectClosed)
}

func TestProjectService_GetDemoAndRoles(t *testing.T) {
	env := newTestEnv(t)

	demo, err := env.projects.Get(env.db, "mock1")
	require.NoError(t, err)
	assert.True(t, demo.IsDemo)
	assert.Equal(t, "The Silent Hill", demo.Title)

	roles, err := env.projects.Roles(env.db, "mock2")
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "Lead Dancer", roles[0].RoleName)

	_, err = env.projects.Roles(env.db, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}
