package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"attar/internal/models"
	"attar/internal/repositories"
	"attar/internal/services"
	"attar/internal/validation"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(name string) (*models.Product, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

// MockImageUploader is a mock implementation of services.ImageUploader.
type MockImageUploader struct {
	mock.Mock
}

func (m *MockImageUploader) UploadAll(ctx context.Context, files []models.FileBlob) ([]models.StoredFile, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StoredFile), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductCreated(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

func intakeSubmission() models.ProductSubmission {
	return models.ProductSubmission{
		Name:            "Oud Mist",
		Category:        "Perfume",
		MeasurementUnit: "ml",
		SellingPrice:    "499.00",
		MRP:             "599.00",
		Gender:          "Male",
		HSNCode:         "3303",
	}
}

func TestProductService_CreateProduct_NoImages(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockUploader := new(MockImageUploader)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockUploader, mockEvents)

	mockRepo.On("FindByName", "Oud Mist").Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	mockEvents.On("PublishProductCreated", mock.Anything).Return(nil).Once()

	product, err := service.CreateProduct(context.Background(), intakeSubmission(), nil)

	assert.NoError(t, err)
	if assert.NotNil(t, product) {
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, "Oud Mist", product.Name)
		assert.Empty(t, product.Images)
	}
	mockUploader.AssertNotCalled(t, "UploadAll", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_CreateProduct_ValidationFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockUploader := new(MockImageUploader)
	service := services.NewProductService(mockRepo, mockUploader, nil)

	sub := intakeSubmission()
	sub.SellingPrice = "499.999"

	product, err := service.CreateProduct(context.Background(), sub, nil)

	assert.Nil(t, product)
	var verrs validation.FieldErrors
	if assert.ErrorAs(t, err, &verrs) {
		assert.Equal(t, "sellingPrice", verrs[0].Field)
	}
	// Validation halts the pipeline before any collaborator is touched.
	mockRepo.AssertNotCalled(t, "FindByName", mock.Anything)
	mockUploader.AssertNotCalled(t, "UploadAll", mock.Anything, mock.Anything)
}

func TestProductService_CreateProduct_DuplicateShortCircuits(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockUploader := new(MockImageUploader)
	service := services.NewProductService(mockRepo, mockUploader, nil)

	sub := intakeSubmission()
	sub.Name = "Rose Attar"
	existing := &models.Product{ID: "existing-id", Name: "Rose Attar"}
	mockRepo.On("FindByName", "Rose Attar").Return(existing, nil).Once()

	files := []models.FileBlob{{Name: "a.jpg", Data: []byte("a")}}
	product, err := service.CreateProduct(context.Background(), sub, files)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrDuplicateName)
	// The pre-flight check fails before any upload work begins.
	mockUploader.AssertNotCalled(t, "UploadAll", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_CreateProduct_WithImages(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockUploader := new(MockImageUploader)
	service := services.NewProductService(mockRepo, mockUploader, nil)

	files := []models.FileBlob{
		{Name: "a.jpg", Data: []byte("a")},
		{Name: "b.jpg", Data: []byte("b")},
	}
	stored := []models.StoredFile{
		{ID: "id-a", Name: "a.jpg", URL: "https://f042.example.com/file/attar-images/a.jpg?timestamp=1"},
	}

	mockRepo.On("FindByName", "Oud Mist").Return(nil, nil).Once()
	mockUploader.On("UploadAll", mock.Anything, files).Return(stored, nil).Once()
	mockRepo.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		return len(p.Images) == 1 && p.Images[0].ID == "id-a"
	})).Return(nil).Once()

	product, err := service.CreateProduct(context.Background(), intakeSubmission(), files)

	// One of two transfers failed upstream; the record still commits with
	// the single surviving image.
	assert.NoError(t, err)
	assert.Len(t, product.Images, 1)
	mockRepo.AssertExpectations(t)
	mockUploader.AssertExpectations(t)
}

func TestProductService_CreateProduct_UploadBatchFailureAborts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockUploader := new(MockImageUploader)
	service := services.NewProductService(mockRepo, mockUploader, nil)

	files := []models.FileBlob{{Name: "a.jpg", Data: []byte("a")}}
	mockRepo.On("FindByName", "Oud Mist").Return(nil, nil).Once()
	mockUploader.On("UploadAll", mock.Anything, files).Return(nil, fmt.Errorf("authorization failed")).Once()

	product, err := service.CreateProduct(context.Background(), intakeSubmission(), files)

	assert.Nil(t, product)
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_CreateProduct_InsertConflict(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockImageUploader), nil)

	// The pre-flight check passes, but a concurrent writer wins the race and
	// the unique index rejects the insert.
	mockRepo.On("FindByName", "Oud Mist").Return(nil, nil).Once()
	mockRepo.On("Create", mock.Anything).Return(repositories.ErrDuplicateName).Once()

	product, err := service.CreateProduct(context.Background(), intakeSubmission(), nil)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrDuplicateName)
}

func TestProductService_CreateProduct_PublishFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, new(MockImageUploader), mockEvents)

	mockRepo.On("FindByName", "Oud Mist").Return(nil, nil).Once()
	mockRepo.On("Create", mock.Anything).Return(nil).Once()
	mockEvents.On("PublishProductCreated", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	product, err := service.CreateProduct(context.Background(), intakeSubmission(), nil)

	assert.NoError(t, err)
	assert.NotNil(t, product)
	mockEvents.AssertExpectations(t)
}

func TestProductService_CheckNameAvailable(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockImageUploader), nil)

	mockRepo.On("FindByName", "Fresh Linen").Return(nil, nil).Once()
	assert.NoError(t, service.CheckNameAvailable("Fresh Linen"))

	mockRepo.On("FindByName", "Rose Attar").Return(&models.Product{Name: "Rose Attar"}, nil).Once()
	assert.ErrorIs(t, service.CheckNameAvailable("Rose Attar"), repositories.ErrDuplicateName)

	mockRepo.On("FindByName", "Oud Mist").Return(nil, fmt.Errorf("connection refused")).Once()
	err := service.CheckNameAvailable("Oud Mist")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrDuplicateName)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockImageUploader), nil)

	expected := []models.Product{
		{ID: "1", Name: "Oud Mist"},
		{ID: "2", Name: "Rose Attar"},
	}
	mockRepo.On("GetAll").Return(expected, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}
