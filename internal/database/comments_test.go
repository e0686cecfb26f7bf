package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/models"
)

func TestCreateComment(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	author := createTestUser(t, db, "Author", "author@example.com")
	item := createTestItem(t, db, owner.ID, "drill")

	comment := &models.Comment{Text: "works great", ItemID: item.ID, AuthorID: author.ID}
	require.NoError(t, db.CreateComment(ctx, comment))
	assert.NotZero(t, comment.ID)
	assert.False(t, comment.Created.IsZero())
}

func TestGetCommentsByItem_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	author := createTestUser(t, db, "Author", "author@example.com")
	item := createTestItem(t, db, owner.ID, "drill")

	first := &models.Comment{Text: "first", ItemID: item.ID, AuthorID: author.ID}
	require.NoError(t, db.CreateComment(ctx, first))
	second := &models.Comment{Text: "second", ItemID: item.ID, AuthorID: author.ID}
	require.NoError(t, db.CreateComment(ctx, second))

	comments, err := db.GetCommentsByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "first", comments[1].Text)
	assert.Equal(t, "Author", comments[0].AuthorName)
}

func TestGetCommentsByItem_EmptyNotNil(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	comments, err := db.GetCommentsByItem(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}
