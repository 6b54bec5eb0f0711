// Package server is a stand-in for the production backend: it implements
// the same HTTP contract the admin client speaks (login, product CRUD,
// categories) so the client can be developed and end-to-end tested without
// the real service. It is not hardened for production use.
package server

import (
	"errors"
	"time"

	"productadmin/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
)

// User is a backend account. PasswordHash is a bcrypt hash.
type User struct {
	ID           int
	Username     string
	PasswordHash string
}

// LoginAttempt is one recorded login, successful or not.
type LoginAttempt struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
}

type ProductStore interface {
	ListProducts() ([]domain.Product, error)
	GetProduct(id int) (*domain.Product, error)
	CreateProduct(product domain.Product) (*domain.Product, error)
	UpdateProduct(id int, product domain.Product) (*domain.Product, error)
	DeleteProduct(id int) error
}

type CategoryStore interface {
	ListCategories() ([]domain.Category, error)
}

type UserStore interface {
	GetUserByUsername(username string) (*User, error)
}

type LoginHistoryStore interface {
	RecordLogin(attempt LoginAttempt) error
	ListLogins() ([]LoginAttempt, error)
}
