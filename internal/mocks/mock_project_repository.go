package mocks

import (
	"context"

	"github.com/you/portfoliosvc/domain"
)

// MockProjectRepository implements domain.ProjectRepository interface for testing
type MockProjectRepository struct {
	FindAllFunc        func(ctx context.Context) ([]domain.Project, error)
	FindBySectorFunc   func(ctx context.Context, sector string) ([]domain.Project, error)
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.Project, error)
	CreateFunc         func(ctx context.Context, project *domain.Project) error
	UpdateFunc         func(ctx context.Context, id uint, project *domain.Project) error
	DeleteFunc         func(ctx context.Context, id uint) error
	FindAllSectorsFunc func(ctx context.Context) ([]domain.Sector, error)
}

// NewMockProjectRepository creates a new MockProjectRepository with default behaviors
func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{}
}

// FindAll returns every project
func (m *MockProjectRepository) FindAll(ctx context.Context) ([]domain.Project, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	// Default behavior: empty table
	return []domain.Project{}, nil
}

// FindBySector returns projects whose sector matches
func (m *MockProjectRepository) FindBySector(ctx context.Context, sector string) ([]domain.Project, error) {
	if m.FindBySectorFunc != nil {
		return m.FindBySectorFunc(ctx, sector)
	}
	return []domain.Project{}, nil
}

// FindByID finds a project by ID
func (m *MockProjectRepository) FindByID(ctx context.Context, id uint) (*domain.Project, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrProjectNotFound
}

// Create inserts a project
func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	return nil
}

// Update writes a project
func (m *MockProjectRepository) Update(ctx context.Context, id uint, project *domain.Project) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, project)
	}
	return nil
}

// Delete removes a project
func (m *MockProjectRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// FindAllSectors returns every sector
func (m *MockProjectRepository) FindAllSectors(ctx context.Context) ([]domain.Sector, error) {
	if m.FindAllSectorsFunc != nil {
		return m.FindAllSectorsFunc(ctx)
	}
	return []domain.Sector{}, nil
}

// Compile-time interface compliance verification
var _ domain.ProjectRepository = (*MockProjectRepository)(nil)
