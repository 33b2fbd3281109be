package repositories

import (
	"errors"

	"attar/internal/models"
)

// ErrDuplicateName signals that a product with the same name already exists.
// It is returned both by the pre-flight name check and by Create when the
// unique index rejects the insert.
var ErrDuplicateName = errors.New("product with the same name already exists")

// ProductRepository defines the interface for catalog data access.
// FindByName returns (nil, nil) when no product carries the name.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	FindByName(name string) (*models.Product, error)
	Create(product *models.Product) error
}
