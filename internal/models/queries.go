package models

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}

func CreateUser(db *sql.DB, email, username, passwordHash string) (*User, error) {
	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	u.UpdatedAt = u.CreatedAt
	_, err := db.Exec(`INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`, u.ID, u.Email, u.Username, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err, "users.email") {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByEmail(db *sql.DB, email string) (*User, error) {
	return scanUser(db.QueryRow(`SELECT id, email, username, password_hash, bio, profile_pic, created_at, updated_at
		FROM users WHERE email = ?`, email))
}

func GetUserByID(db *sql.DB, id string) (*User, error) {
	return scanUser(db.QueryRow(`SELECT id, email, username, password_hash, bio, profile_pic, created_at, updated_at
		FROM users WHERE id = ?`, id))
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Bio, &u.ProfilePic, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserUpdate carries the optional profile fields; nil means leave unchanged.
type UserUpdate struct {
	Username   *string
	Email      *string
	Bio        *string
	ProfilePic *string
}

// UpdateUser merges the provided fields into the user row and returns the
// updated record. An email that collides with another account surfaces as
// ErrDuplicateEmail.
func UpdateUser(db *sql.DB, id string, upd UserUpdate) (*User, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if upd.Username != nil {
		set = append(set, "username = ?")
		args = append(args, *upd.Username)
	}
	if upd.Email != nil {
		set = append(set, "email = ?")
		args = append(args, *upd.Email)
	}
	if upd.Bio != nil {
		set = append(set, "bio = ?")
		args = append(args, *upd.Bio)
	}
	if upd.ProfilePic != nil {
		set = append(set, "profile_pic = ?")
		args = append(args, *upd.ProfilePic)
	}
	args = append(args, id)
	res, err := db.Exec(`UPDATE users SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if isUniqueViolation(err, "users.email") {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return GetUserByID(db, id)
}

const postColumns = `p.id, p.title, p.content, p.location, p.location_url,
	p.latitude, p.longitude, p.weather_temp, p.weather_conditions, p.weather_icon,
	p.created_at, p.updated_at, u.id, u.username`

func CreatePost(db *sql.DB, p *Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	var temp, conditions, icon any
	if p.Weather != nil {
		temp, conditions, icon = p.Weather.Temperature, p.Weather.Conditions, p.Weather.Icon
	}
	_, err := db.Exec(`INSERT INTO posts
		(id, author_id, title, content, location, location_url, latitude, longitude,
		 weather_temp, weather_conditions, weather_icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Author.ID, p.Title, p.Content, p.Location, p.LocationURL,
		p.Latitude, p.Longitude, temp, conditions, icon, p.CreatedAt, p.UpdatedAt)
	return err
}

func scanPost(scan func(dest ...any) error) (*Post, error) {
	var p Post
	var temp sql.NullFloat64
	var conditions, icon sql.NullString
	err := scan(&p.ID, &p.Title, &p.Content, &p.Location, &p.LocationURL,
		&p.Latitude, &p.Longitude, &temp, &conditions, &icon,
		&p.CreatedAt, &p.UpdatedAt, &p.Author.ID, &p.Author.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if temp.Valid {
		p.Weather = &Weather{Temperature: temp.Float64, Conditions: conditions.String, Icon: icon.String}
	}
	p.Likes = []string{}
	p.Comments = []Comment{}
	return &p, nil
}

func loadLikes(db *sql.DB, p *Post) error {
	rows, err := db.Query(`SELECT user_id FROM post_likes WHERE post_id = ? ORDER BY created_at`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		p.Likes = append(p.Likes, id)
	}
	return rows.Err()
}

func ListPosts(db *sql.DB) ([]Post, error) {
	rows, err := db.Query(`SELECT ` + postColumns + ` FROM posts p
		JOIN users u ON p.author_id = u.id ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range posts {
		if err := loadLikes(db, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// GetPost returns one post with its like-set and comments resolved.
func GetPost(db *sql.DB, id string) (*Post, error) {
	p, err := scanPost(db.QueryRow(`SELECT `+postColumns+` FROM posts p
		JOIN users u ON p.author_id = u.id WHERE p.id = ?`, id).Scan)
	if err != nil {
		return nil, err
	}
	if err := loadLikes(db, p); err != nil {
		return nil, err
	}
	comments, err := ListComments(db, p.ID)
	if err != nil {
		return nil, err
	}
	p.Comments = comments
	return p, nil
}

// PostUpdate carries the mutable post fields; nil means leave unchanged. The
// author is deliberately absent so a merge can never reassign it.
type PostUpdate struct {
	Title       *string
	Content     *string
	Location    *string
	LocationURL *string
}

func UpdatePost(db *sql.DB, id string, upd PostUpdate) (*Post, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if upd.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Content != nil {
		set = append(set, "content = ?")
		args = append(args, *upd.Content)
	}
	if upd.Location != nil {
		set = append(set, "location = ?")
		args = append(args, *upd.Location)
	}
	if upd.LocationURL != nil {
		set = append(set, "location_url = ?")
		args = append(args, *upd.LocationURL)
	}
	args = append(args, id)
	if _, err := db.Exec(`UPDATE posts SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...); err != nil {
		return nil, err
	}
	return GetPost(db, id)
}

// DeletePost removes the post; its comments and like rows cascade.
func DeletePost(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleLike flips the caller's membership in the post's like-set. The
// membership lives in its own row, so concurrent toggles by distinct users
// never step on each other; the delete/insert pair runs in one transaction so
// a double-tap by the same user still lands on a consistent state.
func ToggleLike(db *sql.DB, postID, userID string) (*Post, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM posts WHERE id = ?`, postID).Scan(&exists); err != nil {
		tx.Rollback()
		return nil, err
	}
	if exists == 0 {
		tx.Rollback()
		return nil, ErrNotFound
	}
	res, err := tx.Exec(`DELETE FROM post_likes WHERE post_id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := tx.Exec(`INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)`, postID, userID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return GetPost(db, postID)
}

// CreateComment validates the parent post and inserts the comment in one
// transaction, so the comment can never outlive (or predate) its post's view
// of it.
func CreateComment(db *sql.DB, c *Comment) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM posts WHERE id = ?`, c.PostID).Scan(&exists); err != nil {
		tx.Rollback()
		return err
	}
	if exists == 0 {
		tx.Rollback()
		return ErrNotFound
	}
	if _, err := tx.Exec(`INSERT INTO comments (id, post_id, author_id, text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`, c.ID, c.PostID, c.Author.ID, c.Text, c.CreatedAt, c.UpdatedAt); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

const commentColumns = `c.id, c.post_id, c.text, c.created_at, c.updated_at, u.id, u.username`

func GetComment(db *sql.DB, id string) (*Comment, error) {
	var c Comment
	err := db.QueryRow(`SELECT `+commentColumns+` FROM comments c
		JOIN users u ON c.author_id = u.id WHERE c.id = ?`, id).
		Scan(&c.ID, &c.PostID, &c.Text, &c.CreatedAt, &c.UpdatedAt, &c.Author.ID, &c.Author.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func ListComments(db *sql.DB, postID string) ([]Comment, error) {
	rows, err := db.Query(`SELECT `+commentColumns+` FROM comments c
		JOIN users u ON c.author_id = u.id WHERE c.post_id = ? ORDER BY c.created_at`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Text, &c.CreatedAt, &c.UpdatedAt, &c.Author.ID, &c.Author.Username); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func DeleteComment(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetProfilePic stores the uploaded image URL and returns the updated user.
func SetProfilePic(db *sql.DB, userID, url string) (*User, error) {
	res, err := db.Exec(`UPDATE users SET profile_pic = ?, updated_at = ? WHERE id = ?`,
		url, time.Now().UTC(), userID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("set profile pic: %w", ErrNotFound)
	}
	return GetUserByID(db, userID)
}
