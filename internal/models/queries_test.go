package models

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlash/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func seedUser(t *testing.T, database *sql.DB, email, username string) *User {
	t.Helper()
	u, err := CreateUser(database, email, username, "hash")
	require.NoError(t, err)
	return u
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	database := openTestDB(t)
	seedUser(t, database, "a@b.com", "alice")
	_, err := CreateUser(database, "a@b.com", "other", "hash")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpdateUserMergesOnlyProvidedFields(t *testing.T) {
	database := openTestDB(t)
	u := seedUser(t, database, "a@b.com", "alice")

	bio := "traveller"
	updated, err := UpdateUser(database, u.ID, UserUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "a@b.com", updated.Email)
	assert.Equal(t, "traveller", updated.Bio)
}

func TestUpdateUserUnknownID(t *testing.T) {
	database := openTestDB(t)
	_, err := UpdateUser(database, "missing", UserUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLike(t *testing.T) {
	database := openTestDB(t)
	alice := seedUser(t, database, "a@b.com", "alice")
	bob := seedUser(t, database, "b@b.com", "bob")

	post := &Post{Author: alice.AuthorRef(), Title: "t", Content: "c"}
	require.NoError(t, CreatePost(database, post))

	got, err := ToggleLike(database, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, got.Likes)

	got, err = ToggleLike(database, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Len(t, got.Likes, 2)

	got, err = ToggleLike(database, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID}, got.Likes)

	_, err = ToggleLike(database, "missing", bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentParentValidation(t *testing.T) {
	database := openTestDB(t)
	alice := seedUser(t, database, "a@b.com", "alice")

	err := CreateComment(database, &Comment{PostID: "missing", Author: alice.AuthorRef(), Text: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)

	post := &Post{Author: alice.AuthorRef(), Title: "t", Content: "c"}
	require.NoError(t, CreatePost(database, post))

	comment := &Comment{PostID: post.ID, Author: alice.AuthorRef(), Text: "hi"}
	require.NoError(t, CreateComment(database, comment))

	got, err := GetPost(database, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, comment.ID, got.Comments[0].ID)
}

func TestDeletePostCascades(t *testing.T) {
	database := openTestDB(t)
	alice := seedUser(t, database, "a@b.com", "alice")

	post := &Post{Author: alice.AuthorRef(), Title: "t", Content: "c"}
	require.NoError(t, CreatePost(database, post))
	require.NoError(t, CreateComment(database, &Comment{PostID: post.ID, Author: alice.AuthorRef(), Text: "hi"}))
	_, err := ToggleLike(database, post.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, DeletePost(database, post.ID))

	comments, err := ListComments(database, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	var likes int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM post_likes`).Scan(&likes))
	assert.Zero(t, likes)
}

func TestPostUpdateNeverTouchesAuthor(t *testing.T) {
	database := openTestDB(t)
	alice := seedUser(t, database, "a@b.com", "alice")

	post := &Post{Author: alice.AuthorRef(), Title: "t", Content: "c"}
	require.NoError(t, CreatePost(database, post))

	title := "t2"
	updated, err := UpdatePost(database, post.ID, PostUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "t2", updated.Title)
	assert.Equal(t, alice.ID, updated.Author.ID)
	assert.Equal(t, "c", updated.Content)
}
