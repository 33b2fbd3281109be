package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attar/internal/models"
)

// GORMProbeRepository is a GORM implementation of ProbeRepository.
type GORMProbeRepository struct {
	db *gorm.DB
}

// NewGORMProbeRepository creates a new instance of GORMProbeRepository.
func NewGORMProbeRepository(db *gorm.DB) *GORMProbeRepository {
	return &GORMProbeRepository{
		db: db,
	}
}

// GetAll retrieves all probe records from the database.
func (r *GORMProbeRepository) GetAll() ([]models.Probe, error) {
	var probes []models.Probe
	if err := r.db.Find(&probes).Error; err != nil {
		return nil, fmt.Errorf("failed to get all probes: %w", err)
	}
	return probes, nil
}

// Create inserts a new probe record.
func (r *GORMProbeRepository) Create(probe *models.Probe) error {
	if probe.ID == "" {
		probe.ID = uuid.New().String()
	}
	if err := r.db.Create(probe).Error; err != nil {
		return fmt.Errorf("failed to create probe: %w", err)
	}
	return nil
}
