package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"attar/internal/models"
	"attar/internal/repositories"
	"attar/internal/validation"
)

// ImageUploader is the slice of the upload pipeline the intake workflow
// needs. *UploadService satisfies it.
type ImageUploader interface {
	UploadAll(ctx context.Context, files []models.FileBlob) ([]models.StoredFile, error)
}

// EventPublisher publishes catalog events. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	PublishProductCreated(event map[string]interface{}) error
}

// ProductService handles catalog intake and reads.
type ProductService struct {
	repo     repositories.ProductRepository
	uploader ImageUploader
	events   EventPublisher
}

// NewProductService creates a new ProductService. events may be nil; the
// catalog then works without publishing.
func NewProductService(repo repositories.ProductRepository, uploader ImageUploader, events EventPublisher) *ProductService {
	return &ProductService{
		repo:     repo,
		uploader: uploader,
		events:   events,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CheckNameAvailable verifies no catalog entry already uses name. It returns
// repositories.ErrDuplicateName if one does.
func (s *ProductService) CheckNameAvailable(name string) error {
	existing, err := s.repo.FindByName(name)
	if err != nil {
		return fmt.Errorf("failed to look up product by name: %w", err)
	}
	if existing != nil {
		return repositories.ErrDuplicateName
	}
	return nil
}

// CreateProduct runs the full intake pipeline: validate the submission, check
// the name is free, upload any images, persist the assembled record, then
// announce it. Validation and conflict failures happen before any upload
// work; nothing is written unless every earlier step succeeded.
func (s *ProductService) CreateProduct(ctx context.Context, sub models.ProductSubmission, files []models.FileBlob) (*models.Product, error) {
	product, verrs := validation.ValidateSubmission(sub)
	if verrs != nil {
		return nil, verrs
	}

	// Pre-flight duplicate check, so a taken name fails before any upload
	// cost is paid.
	if err := s.CheckNameAvailable(product.Name); err != nil {
		return nil, err
	}

	if len(files) > 0 {
		images, err := s.uploader.UploadAll(ctx, files)
		if err != nil {
			return nil, fmt.Errorf("failed to upload product images: %w", err)
		}
		product.Images = images
	}

	product.ID = uuid.New().String()

	// The unique index re-checks the name at insert time; the window between
	// the pre-flight check and here stays open across concurrent writers.
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	if s.events != nil {
		event := map[string]interface{}{
			"productID": product.ID,
			"name":      product.Name,
			"category":  product.Category,
		}
		if err := s.events.PublishProductCreated(event); err != nil {
			log.Printf("Warning: failed to publish product created event for %s: %v", product.ID, err)
		}
	}

	return product, nil
}
