package repositories

import "furniro/internal/models"

// UserRepository defines the interface for user data access. Customers sign
// in with their email address, so email is the primary lookup key.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
