package domain

import (
	"database/sql"
	"time"
)

type User struct {
	ID          int64          `db:"id"`
	UserID      string         `db:"user_id"` // login handle
	Email       string         `db:"email"`
	Name        string         `db:"name"`
	PhoneNumber string         `db:"phone_number"`
	PostCode    sql.NullString `db:"post_code"`
	Address     sql.NullString `db:"address"`
	Hash        string         `db:"password_hash"`
	CreatedAt   time.Time      `db:"created_at"`
}

// UserResponse is the public projection of a user. It never carries the hash.
type UserResponse struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	PostCode    *string   `json:"postCode"`
	Address     *string   `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (u *User) Response() UserResponse {
	r := UserResponse{
		ID:          u.ID,
		UserID:      u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
	if u.PostCode.Valid {
		r.PostCode = &u.PostCode.String
	}
	if u.Address.Valid {
		r.Address = &u.Address.String
	}
	return r
}

// NewUser is the input for inserting a user; Hash is already computed.
type NewUser struct {
	UserID      string
	Email       string
	Name        string
	PhoneNumber string
	PostCode    *string
	Address     *string
	Hash        string
}

// ProfileChanges holds the optional fields of a profile update. Nil means unchanged.
type ProfileChanges struct {
	Email       *string
	PhoneNumber *string
	PostCode    *string
	Address     *string
}

func (p ProfileChanges) Empty() bool {
	return p.Email == nil && p.PhoneNumber == nil && p.PostCode == nil && p.Address == nil
}
