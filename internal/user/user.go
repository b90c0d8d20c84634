package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Fullname     string    `json:"fullname"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}
