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

type commentFixture struct {
	db       *gorm.DB
	comments *CommentService
	titleID  int64
	reviewID int64
	author   *models.User
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	db := newTestDB(t)

	title := models.Title{Name: "Winter Road", Year: 1994}
	require.NoError(t, db.Create(&title).Error)

	author := createTestUser(t, db, "reviewer", models.RoleUser)
	review := models.Review{TitleID: title.ID, AuthorID: author.ID, Text: "good", Score: 7}
	require.NoError(t, db.Create(&review).Error)

	svc := NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewReviewRepository(db),
	)
	return &commentFixture{db: db, comments: svc, titleID: title.ID, reviewID: review.ID, author: author}
}

func commentReq(text string) dto.CommentWriteRequest {
	return dto.CommentWriteRequest{Text: &text}
}

func TestCommentCreateAndList(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()
	alice := createTestUser(t, f.db, "alice", models.RoleUser)

	first, err := f.comments.Create(ctx, f.titleID, f.reviewID, alice, commentReq("well said"))
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Author)
	assert.False(t, first.PubDate.IsZero())

	_, err = f.comments.Create(ctx, f.titleID, f.reviewID, f.author, commentReq("thanks"))
	require.NoError(t, err)

	resp, err := f.comments.ListByReview(ctx, f.titleID, f.reviewID, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	// oldest first, conversation order
	assert.Equal(t, "well said", resp.Data[0].Text)
	assert.Equal(t, "thanks", resp.Data[1].Text)
}

func TestCommentNestingChecked(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()
	alice := createTestUser(t, f.db, "alice", models.RoleUser)

	t.Run("unknown review", func(t *testing.T) {
		_, err := f.comments.Create(ctx, f.titleID, 9999, alice, commentReq("lost"))
		assert.True(t, errors.Is(err, apierrors.ErrNotFound))
	})

	t.Run("review under a different title", func(t *testing.T) {
		other := models.Title{Name: "Summer House", Year: 2001}
		require.NoError(t, f.db.Create(&other).Error)

		_, err := f.comments.ListByReview(ctx, other.ID, f.reviewID, 1, 10)
		assert.True(t, errors.Is(err, apierrors.ErrNotFound))
	})
}

func TestCommentUpdateAuthorization(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	alice := createTestUser(t, f.db, "alice", models.RoleUser)
	stranger := createTestUser(t, f.db, "stranger", models.RoleUser)
	admin := createTestUser(t, f.db, "boss", models.RoleAdmin)

	created, err := f.comments.Create(ctx, f.titleID, f.reviewID, alice, commentReq("first"))
	require.NoError(t, err)

	_, err = f.comments.Update(ctx, f.titleID, f.reviewID, created.ID, stranger, commentReq("hijacked"))
	assert.True(t, errors.Is(err, apierrors.ErrForbidden))

	resp, err := f.comments.Update(ctx, f.titleID, f.reviewID, created.ID, alice, commentReq("edited"))
	require.NoError(t, err)
	assert.Equal(t, "edited", resp.Text)

	resp, err = f.comments.Update(ctx, f.titleID, f.reviewID, created.ID, admin, commentReq("moderated"))
	require.NoError(t, err)
	assert.Equal(t, "moderated", resp.Text)
	assert.Equal(t, "alice", resp.Author)
}

func TestCommentDelete(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	alice := createTestUser(t, f.db, "alice", models.RoleUser)
	stranger := createTestUser(t, f.db, "stranger", models.RoleUser)

	created, err := f.comments.Create(ctx, f.titleID, f.reviewID, alice, commentReq("temporary"))
	require.NoError(t, err)

	err = f.comments.Delete(ctx, f.titleID, f.reviewID, created.ID, stranger)
	assert.True(t, errors.Is(err, apierrors.ErrForbidden))

	require.NoError(t, f.comments.Delete(ctx, f.titleID, f.reviewID, created.ID, alice))

	_, err = f.comments.Get(ctx, f.titleID, f.reviewID, created.ID)
	assert.True(t, errors.Is(err, apierrors.ErrNotFound))
}
