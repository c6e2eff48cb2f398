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

type titleFixture struct {
	db     *gorm.DB
	titles *TitleService
}

func newTitleFixture(t *testing.T) *titleFixture {
	t.Helper()
	db := newTestDB(t)
	svc := NewTitleService(
		repository.NewTitleRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewGenreRepository(db),
		repository.NewReviewRepository(db),
		nil,
	)
	return &titleFixture{db: db, titles: svc}
}

func (f *titleFixture) seedCatalog(t *testing.T) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.Category{Name: "Films", Slug: "films"}).Error)
	require.NoError(t, f.db.Create(&models.Category{Name: "Books", Slug: "books"}).Error)
	require.NoError(t, f.db.Create(&models.Genre{Name: "Drama", Slug: "drama"}).Error)
	require.NoError(t, f.db.Create(&models.Genre{Name: "Comedy", Slug: "comedy"}).Error)
}

func titleReq(name string, year int, category string, genres ...string) dto.TitleWriteRequest {
	return dto.TitleWriteRequest{
		Name:     &name,
		Year:     &year,
		Genre:    &genres,
		Category: &category,
	}
}

func TestTitleCreate(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)

	resp, err := f.titles.Create(context.Background(), titleReq("Winter Road", 1994, "films", "drama", "comedy"))
	require.NoError(t, err)

	assert.Equal(t, "Winter Road", resp.Name)
	assert.Equal(t, 1994, resp.Year)
	assert.Nil(t, resp.Rating)
	require.NotNil(t, resp.Category)
	assert.Equal(t, "films", resp.Category.Slug)
	assert.Len(t, resp.Genre, 2)
}

func TestTitleCreateUnknownRelations(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)

	t.Run("unknown category", func(t *testing.T) {
		_, err := f.titles.Create(context.Background(), titleReq("Winter Road", 1994, "games", "drama"))
		var fieldErrs apierrors.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "category")
	})

	t.Run("unknown genre", func(t *testing.T) {
		_, err := f.titles.Create(context.Background(), titleReq("Winter Road", 1994, "films", "horror"))
		var fieldErrs apierrors.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "genre")
	})
}

func TestTitleGetComputesRating(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)

	created, err := f.titles.Create(context.Background(), titleReq("Winter Road", 1994, "films", "drama"))
	require.NoError(t, err)

	alice := createTestUser(t, f.db, "alice", models.RoleUser)
	bob := createTestUser(t, f.db, "bob", models.RoleUser)
	require.NoError(t, f.db.Create(&models.Review{TitleID: created.ID, AuthorID: alice.ID, Text: "good", Score: 4}).Error)
	require.NoError(t, f.db.Create(&models.Review{TitleID: created.ID, AuthorID: bob.ID, Text: "great", Score: 9}).Error)

	resp, err := f.titles.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.Rating)
	assert.InDelta(t, 6.5, *resp.Rating, 0.001)
}

func TestTitleGetNotFound(t *testing.T) {
	f := newTitleFixture(t)

	_, err := f.titles.Get(context.Background(), 12345)
	assert.True(t, errors.Is(err, apierrors.ErrNotFound))
}

func TestTitleListFilters(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()

	_, err := f.titles.Create(ctx, titleReq("Winter Road", 1994, "films", "drama"))
	require.NoError(t, err)
	_, err = f.titles.Create(ctx, titleReq("Summer House", 2001, "books", "comedy"))
	require.NoError(t, err)
	_, err = f.titles.Create(ctx, titleReq("Long Winter", 2001, "books", "drama"))
	require.NoError(t, err)

	t.Run("no filter", func(t *testing.T) {
		resp, err := f.titles.List(ctx, repository.TitleFilter{}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 3, resp.Total)
	})

	t.Run("by category", func(t *testing.T) {
		resp, err := f.titles.List(ctx, repository.TitleFilter{CategorySlug: "books"}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, resp.Total)
	})

	t.Run("by genre", func(t *testing.T) {
		resp, err := f.titles.List(ctx, repository.TitleFilter{GenreSlug: "drama"}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, resp.Total)
	})

	t.Run("by name substring case insensitive", func(t *testing.T) {
		resp, err := f.titles.List(ctx, repository.TitleFilter{Name: "winter"}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, resp.Total)
	})

	t.Run("by year", func(t *testing.T) {
		year := 2001
		resp, err := f.titles.List(ctx, repository.TitleFilter{Year: &year}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, resp.Total)
	})

	t.Run("combined", func(t *testing.T) {
		year := 2001
		resp, err := f.titles.List(ctx, repository.TitleFilter{CategorySlug: "books", GenreSlug: "drama", Year: &year}, 1, 10)
		require.NoError(t, err)
		require.EqualValues(t, 1, resp.Total)
		assert.Equal(t, "Long Winter", resp.Data[0].Name)
	})

	t.Run("pagination", func(t *testing.T) {
		resp, err := f.titles.List(ctx, repository.TitleFilter{}, 1, 2)
		require.NoError(t, err)
		assert.Len(t, resp.Data, 2)
		assert.EqualValues(t, 3, resp.Total)
		assert.Equal(t, 2, resp.TotalPages)
	})
}

func TestTitleUpdatePartial(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()

	created, err := f.titles.Create(ctx, titleReq("Winter Road", 1994, "films", "drama"))
	require.NoError(t, err)

	newName := "Winter Road, Restored"
	resp, err := f.titles.Update(ctx, created.ID, dto.TitleWriteRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, newName, resp.Name)
	assert.Equal(t, 1994, resp.Year)
	require.NotNil(t, resp.Category)
	assert.Equal(t, "films", resp.Category.Slug)
	require.Len(t, resp.Genre, 1)
	assert.Equal(t, "drama", resp.Genre[0].Slug)
}

func TestTitleUpdateReplacesGenres(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()

	created, err := f.titles.Create(ctx, titleReq("Winter Road", 1994, "films", "drama"))
	require.NoError(t, err)

	genres := []string{"comedy"}
	resp, err := f.titles.Update(ctx, created.ID, dto.TitleWriteRequest{Genre: &genres})
	require.NoError(t, err)

	require.Len(t, resp.Genre, 1)
	assert.Equal(t, "comedy", resp.Genre[0].Slug)
}

func TestTitleUpdateEmptyPatch(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()

	created, err := f.titles.Create(ctx, titleReq("Winter Road", 1994, "films", "drama"))
	require.NoError(t, err)

	_, err = f.titles.Update(ctx, created.ID, dto.TitleWriteRequest{})
	var fieldErrs apierrors.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, apierrors.NonFieldErrors)
}

func TestTitleDeleteCascades(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()

	created, err := f.titles.Create(ctx, titleReq("Winter Road", 1994, "films", "drama"))
	require.NoError(t, err)

	alice := createTestUser(t, f.db, "alice", models.RoleUser)
	review := models.Review{TitleID: created.ID, AuthorID: alice.ID, Text: "good", Score: 7}
	require.NoError(t, f.db.Create(&review).Error)
	require.NoError(t, f.db.Create(&models.Comment{ReviewID: review.ID, AuthorID: alice.ID, Text: "agreed"}).Error)

	require.NoError(t, f.titles.Delete(ctx, created.ID))

	_, err = f.titles.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, apierrors.ErrNotFound))

	var reviewCount, commentCount int64
	require.NoError(t, f.db.Model(&models.Review{}).Count(&reviewCount).Error)
	require.NoError(t, f.db.Model(&models.Comment{}).Count(&commentCount).Error)
	assert.Zero(t, reviewCount)
	assert.Zero(t, commentCount)
}

func TestCategoryDeleteDetachesTitles(t *testing.T) {
	f := newTitleFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()

	created, err := f.titles.Create(ctx, titleReq("Winter Road", 1994, "films", "drama"))
	require.NoError(t, err)

	categories := NewCategoryService(repository.NewCategoryRepository(f.db))
	require.NoError(t, categories.Delete(ctx, "films"))

	resp, err := f.titles.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, resp.Category)
}
