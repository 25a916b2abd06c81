package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/you/portfoliosvc/domain"
	"gorm.io/gorm"
)

// ProjectRepositoryImpl implements domain.ProjectRepository using GORM
type ProjectRepositoryImpl struct {
	db *gorm.DB
}

// DBSector represents the database model for Sector
type DBSector struct {
	ID         uint   `gorm:"primaryKey"`
	SectorName string `gorm:"column:sector_name;size:255"`
}

// TableName returns the table name for GORM
func (DBSector) TableName() string {
	return "sectors"
}

// DBProject represents the database model for Project
type DBProject struct {
	ID                uint      `gorm:"primaryKey"`
	Title             string    `gorm:"size:255"`
	FeatureImgURL     string    `gorm:"column:feature_img_url;size:1024"`
	SummaryShort      string    `gorm:"column:summary_short;type:text"`
	IntroShort        string    `gorm:"column:intro_short;type:text"`
	Impact            string    `gorm:"type:text"`
	OriginalSourceURL string    `gorm:"column:original_source_url;size:1024"`
	SectorID          uint      `gorm:"column:sector_id;index"`
	Sector            *DBSector `gorm:"foreignKey:SectorID"`
}

// TableName returns the table name for GORM
func (DBProject) TableName() string {
	return "projects"
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) domain.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

// FindAll implements domain.ProjectRepository
func (r *ProjectRepositoryImpl) FindAll(ctx context.Context) ([]domain.Project, error) {
	var rows []DBProject
	if err := r.db.WithContext(ctx).Joins("Sector").Order("projects.id").Find(&rows).Error; err != nil {
		return nil, classifyStoreError("projects.find_all", err)
	}
	return projectsToDomain(rows), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FindBySector implements domain.ProjectRepository with a case-insensitive
// substring match on the sector name. Wildcards in sector match literally.
func (r *ProjectRepositoryImpl) FindBySector(ctx context.Context, sector string) ([]domain.Project, error) {
	var rows []DBProject
	pattern := "%" + likeEscaper.Replace(strings.ToLower(sector)) + "%"
	err := r.db.WithContext(ctx).
		Joins("Sector").
		Where(`LOWER("Sector"."sector_name") LIKE ? ESCAPE '\'`, pattern).
		Order("projects.id").
		Find(&rows).Error
	if err != nil {
		return nil, classifyStoreError("projects.find_by_sector", err)
	}
	return projectsToDomain(rows), nil
}

// FindByID implements domain.ProjectRepository
func (r *ProjectRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Project, error) {
	var row DBProject
	err := r.db.WithContext(ctx).Joins("Sector").Where("projects.id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, classifyStoreError("projects.find", err)
	}
	p := projectToDomain(&row)
	return &p, nil
}

// Create implements domain.ProjectRepository
func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *domain.Project) error {
	row := projectToDB(project)
	row.ID = 0
	if err := r.db.WithContext(ctx).Omit("Sector").Create(row).Error; err != nil {
		return classifyStoreError("projects.create", err)
	}
	project.ID = row.ID
	return nil
}

// Update implements domain.ProjectRepository. Every editable column is written.
func (r *ProjectRepositoryImpl) Update(ctx context.Context, id uint, project *domain.Project) error {
	result := r.db.WithContext(ctx).Model(&DBProject{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":               project.Title,
		"feature_img_url":     project.FeatureImgURL,
		"summary_short":       project.SummaryShort,
		"intro_short":         project.IntroShort,
		"impact":              project.Impact,
		"original_source_url": project.OriginalSourceURL,
		"sector_id":           project.SectorID,
	})
	if result.Error != nil {
		return classifyStoreError("projects.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Delete implements domain.ProjectRepository
func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&DBProject{}, id)
	if result.Error != nil {
		return classifyStoreError("projects.delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// FindAllSectors implements domain.ProjectRepository
func (r *ProjectRepositoryImpl) FindAllSectors(ctx context.Context) ([]domain.Sector, error) {
	var rows []DBSector
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, classifyStoreError("sectors.find_all", err)
	}
	sectors := make([]domain.Sector, 0, len(rows))
	for _, s := range rows {
		sectors = append(sectors, domain.Sector{ID: s.ID, SectorName: s.SectorName})
	}
	return sectors, nil
}

func projectsToDomain(rows []DBProject) []domain.Project {
	projects := make([]domain.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, projectToDomain(&rows[i]))
	}
	return projects
}

func projectToDomain(row *DBProject) domain.Project {
	p := domain.Project{
		ID:                row.ID,
		Title:             row.Title,
		FeatureImgURL:     row.FeatureImgURL,
		SummaryShort:      row.SummaryShort,
		IntroShort:        row.IntroShort,
		Impact:            row.Impact,
		OriginalSourceURL: row.OriginalSourceURL,
		SectorID:          row.SectorID,
	}
	if row.Sector != nil && row.Sector.ID != 0 {
		p.Sector = &domain.Sector{ID: row.Sector.ID, SectorName: row.Sector.SectorName}
	}
	return p
}

func projectToDB(p *domain.Project) *DBProject {
	return &DBProject{
		ID:                p.ID,
		Title:             p.Title,
		FeatureImgURL:     p.FeatureImgURL,
		SummaryShort:      p.SummaryShort,
		IntroShort:        p.IntroShort,
		Impact:            p.Impact,
		OriginalSourceURL: p.OriginalSourceURL,
		SectorID:          p.SectorID,
	}
}
