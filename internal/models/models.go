package models

import "time"

// User is the stored credential record. PasswordHash never leaves the models
// package in a response shape; handlers project to Profile instead.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Bio          string
	ProfilePic   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the response projection of a User.
type Profile struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Bio        string    `json:"bio,omitempty"`
	ProfilePic string    `json:"profilePic,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Author is the display-safe projection embedded in posts and comments.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Weather is the snapshot captured at post creation. It is history, never
// refreshed after the post exists.
type Weather struct {
	Temperature float64 `json:"temperature"`
	Conditions  string  `json:"conditions"`
	Icon        string  `json:"icon"`
}

type Post struct {
	ID          string    `json:"id"`
	Author      Author    `json:"author"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Location    string    `json:"location,omitempty"`
	LocationURL string    `json:"locationUrl,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Weather     *Weather  `json:"weatherData,omitempty"`
	Likes       []string  `json:"likes"`
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		Bio:        u.Bio,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (u *User) AuthorRef() Author {
	return Author{ID: u.ID, Username: u.Username}
}
