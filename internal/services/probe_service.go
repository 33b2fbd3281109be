package services

import (
	"attar/internal/models"
	"attar/internal/repositories"
)

// ProbeService handles connectivity probe records.
type ProbeService struct {
	repo repositories.ProbeRepository
}

// NewProbeService creates a new ProbeService.
func NewProbeService(repo repositories.ProbeRepository) *ProbeService {
	return &ProbeService{
		repo: repo,
	}
}

// GetAllProbes retrieves all probe records.
func (s *ProbeService) GetAllProbes() ([]models.Probe, error) {
	return s.repo.GetAll()
}

// CreateProbe records a new probe with the given name.
func (s *ProbeService) CreateProbe(name string) (*models.Probe, error) {
	probe := &models.Probe{Name: name}
	if err := s.repo.Create(probe); err != nil {
		return nil, err
	}
	return probe, nil
}
