package mocks

import (
	"context"

	"github.com/you/portfoliosvc/domain"
)

// MockProjectService implements domain.ProjectService interface for testing
type MockProjectService struct {
	ListProjectsFunc         func(ctx context.Context) ([]domain.Project, error)
	ListProjectsBySectorFunc func(ctx context.Context, sector string) ([]domain.Project, error)
	GetProjectFunc           func(ctx context.Context, id uint) (*domain.Project, error)
	CreateProjectFunc        func(ctx context.Context, project *domain.Project) error
	UpdateProjectFunc        func(ctx context.Context, id uint, project *domain.Project) error
	DeleteProjectFunc        func(ctx context.Context, id uint) error
	ListSectorsFunc          func(ctx context.Context) ([]domain.Sector, error)
}

// NewMockProjectService creates a new MockProjectService with default behaviors
func NewMockProjectService() *MockProjectService {
	return &MockProjectService{}
}

// ListProjects lists every project
func (m *MockProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if m.ListProjectsFunc != nil {
		return m.ListProjectsFunc(ctx)
	}
	// Default behavior: nothing stored
	return nil, domain.ErrNoProjects
}

// ListProjectsBySector lists projects of a sector
func (m *MockProjectService) ListProjectsBySector(ctx context.Context, sector string) ([]domain.Project, error) {
	if m.ListProjectsBySectorFunc != nil {
		return m.ListProjectsBySectorFunc(ctx, sector)
	}
	return nil, domain.ErrProjectNotFound
}

// GetProject finds a project by ID
func (m *MockProjectService) GetProject(ctx context.Context, id uint) (*domain.Project, error) {
	if m.GetProjectFunc != nil {
		return m.GetProjectFunc(ctx, id)
	}
	return nil, domain.ErrProjectNotFound
}

// CreateProject creates a project
func (m *MockProjectService) CreateProject(ctx context.Context, project *domain.Project) error {
	if m.CreateProjectFunc != nil {
		return m.CreateProjectFunc(ctx, project)
	}
	project.ID = 1
	return nil
}

// UpdateProject updates a project
func (m *MockProjectService) UpdateProject(ctx context.Context, id uint, project *domain.Project) error {
	if m.UpdateProjectFunc != nil {
		return m.UpdateProjectFunc(ctx, id, project)
	}
	return nil
}

// DeleteProject deletes a project
func (m *MockProjectService) DeleteProject(ctx context.Context, id uint) error {
	if m.DeleteProjectFunc != nil {
		return m.DeleteProjectFunc(ctx, id)
	}
	return nil
}

// ListSectors lists every sector
func (m *MockProjectService) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	if m.ListSectorsFunc != nil {
		return m.ListSectorsFunc(ctx)
	}
	return []domain.Sector{{ID: 1, SectorName: "Electricity"}}, nil
}

// Compile-time interface compliance verification
var _ domain.ProjectService = (*MockProjectService)(nil)
