package services

import (
	"context"
	"fmt"

	"github.com/you/portfoliosvc/domain"
)

// ProjectServiceImpl implements domain.ProjectService
type ProjectServiceImpl struct {
	repo domain.ProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(repo domain.ProjectRepository) domain.ProjectService {
	return &ProjectServiceImpl{repo: repo}
}

// ListProjects implements domain.ProjectService
func (s *ProjectServiceImpl) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, domain.ErrNoProjects
	}
	return projects, nil
}

// ListProjectsBySector implements domain.ProjectService
func (s *ProjectServiceImpl) ListProjectsBySector(ctx context.Context, sector string) ([]domain.Project, error) {
	projects, err := s.repo.FindBySector(ctx, sector)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for sector %q: %w", sector, err)
	}
	if len(projects) == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return projects, nil
}

// GetProject implements domain.ProjectService
func (s *ProjectServiceImpl) GetProject(ctx context.Context, id uint) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProject implements domain.ProjectService
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, project *domain.Project) error {
	if project.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrMissingField)
	}
	return s.repo.Create(ctx, project)
}

// UpdateProject implements domain.ProjectService
func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, id uint, project *domain.Project) error {
	if project.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrMissingField)
	}
	return s.repo.Update(ctx, id, project)
}

// DeleteProject implements domain.ProjectService
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListSectors implements domain.ProjectService
func (s *ProjectServiceImpl) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	return s.repo.FindAllSectors(ctx)
}
