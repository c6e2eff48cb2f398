package dto

import (
	"strings"
	"testing"
	"time"

	"reviewhub/internal/httpapi/apierrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      SignUpRequest
		wantErrs []string
	}{
		{
			name: "valid",
			req:  SignUpRequest{Username: "reader.one", Email: "reader@example.com"},
		},
		{
			name:     "missing both",
			req:      SignUpRequest{},
			wantErrs: []string{"username", "email"},
		},
		{
			name:     "username me",
			req:      SignUpRequest{Username: "me", Email: "reader@example.com"},
			wantErrs: []string{"username"},
		},
		{
			name:     "username me case insensitive",
			req:      SignUpRequest{Username: "Me", Email: "reader@example.com"},
			wantErrs: []string{"username"},
		},
		{
			name:     "username bad characters",
			req:      SignUpRequest{Username: "bad name!", Email: "reader@example.com"},
			wantErrs: []string{"username"},
		},
		{
			name:     "username too long",
			req:      SignUpRequest{Username: strings.Repeat("a", 151), Email: "reader@example.com"},
			wantErrs: []string{"username"},
		},
		{
			name:     "email invalid",
			req:      SignUpRequest{Username: "reader", Email: "not-an-email"},
			wantErrs: []string{"email"},
		},
		{
			name:     "email too long",
			req:      SignUpRequest{Username: "reader", Email: strings.Repeat("a", 250) + "@x.com"},
			wantErrs: []string{"email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			if len(tt.wantErrs) == 0 {
				assert.Nil(t, errs)
				return
			}
			require.NotNil(t, errs)
			for _, field := range tt.wantErrs {
				assert.Contains(t, errs, field)
			}
			assert.Len(t, errs, len(tt.wantErrs))
		})
	}
}

func TestUsernameAllowsSpecialCharacters(t *testing.T) {
	for _, username := range []string{"user.name", "user@host", "user+tag", "user-name", "user_name"} {
		errs := SignUpRequest{Username: username, Email: "a@b.co"}.Validate()
		assert.Nil(t, errs, "username %q should be accepted", username)
	}
}

func TestCategoryRequestValidate(t *testing.T) {
	assert.Nil(t, CategoryRequest{Name: "Books", Slug: "books"}.Validate())

	errs := CategoryRequest{Name: "", Slug: "no spaces here"}.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "slug")

	errs = CategoryRequest{Name: "Books", Slug: strings.Repeat("s", 51)}.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "slug")
}

func TestTitleWriteRequestValidate(t *testing.T) {
	name := "Winter Road"
	year := 1994
	futureYear := time.Now().Year() + 1
	genres := []string{"drama"}
	category := "films"

	t.Run("valid create", func(t *testing.T) {
		req := TitleWriteRequest{Name: &name, Year: &year, Genre: &genres, Category: &category}
		assert.Nil(t, req.Validate(false))
	})

	t.Run("create requires all fields", func(t *testing.T) {
		errs := TitleWriteRequest{}.Validate(false)
		require.NotNil(t, errs)
		assert.Contains(t, errs, "name")
		assert.Contains(t, errs, "year")
		assert.Contains(t, errs, "genre")
		assert.Contains(t, errs, "category")
	})

	t.Run("year in the future", func(t *testing.T) {
		req := TitleWriteRequest{Name: &name, Year: &futureYear, Genre: &genres, Category: &category}
		errs := req.Validate(false)
		require.NotNil(t, errs)
		assert.Contains(t, errs, "year")
	})

	t.Run("empty genre list", func(t *testing.T) {
		empty := []string{}
		req := TitleWriteRequest{Name: &name, Year: &year, Genre: &empty, Category: &category}
		errs := req.Validate(false)
		require.NotNil(t, errs)
		assert.Contains(t, errs, "genre")
	})

	t.Run("partial update with one field", func(t *testing.T) {
		req := TitleWriteRequest{Name: &name}
		assert.Nil(t, req.Validate(true))
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		errs := TitleWriteRequest{}.Validate(true)
		require.NotNil(t, errs)
		assert.Contains(t, errs, apierrors.NonFieldErrors)
	})
}

func TestReviewWriteRequestValidate(t *testing.T) {
	text := "a fine piece of work"

	for _, score := range []int{1, 5, 10} {
		s := score
		req := ReviewWriteRequest{Text: &text, Score: &s}
		assert.Nil(t, req.Validate(false), "score %d should be accepted", score)
	}

	for _, score := range []int{0, 11, -3} {
		s := score
		req := ReviewWriteRequest{Text: &text, Score: &s}
		errs := req.Validate(false)
		require.NotNil(t, errs, "score %d should be rejected", score)
		assert.Contains(t, errs, "score")
	}

	errs := ReviewWriteRequest{}.Validate(false)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "text")
	assert.Contains(t, errs, "score")

	// partial updates may change a single field
	assert.Nil(t, ReviewWriteRequest{Text: &text}.Validate(true))
}

func TestUpdateUserRequestRoleGate(t *testing.T) {
	role := "admin"
	bad := "owner"

	assert.Nil(t, UpdateUserRequest{Role: &role}.Validate())

	errs := UpdateUserRequest{Role: &bad}.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "role")
}
