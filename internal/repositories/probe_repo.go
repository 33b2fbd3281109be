package repositories

import (
	"attar/internal/models"
)

// ProbeRepository defines the interface for connectivity probe records.
type ProbeRepository interface {
	GetAll() ([]models.Probe, error)
	Create(probe *models.Probe) error
}
