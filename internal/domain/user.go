package domain

import "context"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleUsher    UserRole = "usher"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Role      UserRole
}

type UserRepository interface {
	GetByID(ctx context.Context, id int) (*User, error)
}
