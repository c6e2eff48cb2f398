package service

import (
	"context"
	"errors"
	"testing"

	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserFixture(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(repository.NewUserRepository(db), testLogger()), db
}

func TestUserCreate(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	t.Run("explicit role", func(t *testing.T) {
		resp, err := svc.Create(ctx, dto.CreateUserRequest{
			Username: "mod",
			Email:    "mod@example.com",
			Role:     "moderator",
		})
		require.NoError(t, err)
		assert.Equal(t, "moderator", resp.Role)
	})

	t.Run("role defaults to user", func(t *testing.T) {
		resp, err := svc.Create(ctx, dto.CreateUserRequest{
			Username: "plain",
			Email:    "plain@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "user", resp.Role)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateUserRequest{
			Username: "mod",
			Email:    "fresh@example.com",
		})
		var fieldErrs apierrors.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "username")
	})
}

func TestUserUpdateRoleGate(t *testing.T) {
	svc, db := newUserFixture(t)
	ctx := context.Background()
	createTestUser(t, db, "alice", models.RoleUser)

	role := "admin"
	bio := "long-time reader"

	// through the profile path the role field is silently ignored
	resp, err := svc.Update(ctx, "alice", dto.UpdateUserRequest{Role: &role, Bio: &bio}, false)
	require.NoError(t, err)
	assert.Equal(t, "user", resp.Role)
	assert.Equal(t, bio, resp.Bio)

	resp, err = svc.Update(ctx, "alice", dto.UpdateUserRequest{Role: &role}, true)
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
}

func TestUserUpdateConflicts(t *testing.T) {
	svc, db := newUserFixture(t)
	ctx := context.Background()
	createTestUser(t, db, "alice", models.RoleUser)
	createTestUser(t, db, "bob", models.RoleUser)

	taken := "alice"
	_, err := svc.Update(ctx, "bob", dto.UpdateUserRequest{Username: &taken}, true)
	var fieldErrs apierrors.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "username")

	// keeping your own values is not a conflict
	same := "bob"
	sameEmail := "bob@example.com"
	_, err = svc.Update(ctx, "bob", dto.UpdateUserRequest{Username: &same, Email: &sameEmail}, true)
	assert.NoError(t, err)
}

func TestUserDelete(t *testing.T) {
	svc, db := newUserFixture(t)
	ctx := context.Background()
	createTestUser(t, db, "alice", models.RoleUser)

	require.NoError(t, svc.Delete(ctx, "alice"))

	_, err := svc.Get(ctx, "alice")
	assert.True(t, errors.Is(err, apierrors.ErrNotFound))

	err = svc.Delete(ctx, "alice")
	assert.True(t, errors.Is(err, apierrors.ErrNotFound))
}

func TestUserListSearch(t *testing.T) {
	svc, db := newUserFixture(t)
	ctx := context.Background()
	createTestUser(t, db, "alice", models.RoleUser)
	createTestUser(t, db, "alicia", models.RoleUser)
	createTestUser(t, db, "bob", models.RoleUser)

	resp, err := svc.List(ctx, "ali", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)

	resp, err = svc.List(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.EqualValues(t, 3, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	// alphabetical by username
	assert.Equal(t, "alice", resp.Data[0].Username)
}
