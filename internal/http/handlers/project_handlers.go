package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/you/portfoliosvc/domain"
	"go.uber.org/zap"
)

// ProjectHandlers handles project browsing and administration
type ProjectHandlers struct {
	projectSvc domain.ProjectService
	logger     *zap.Logger
}

// NewProjectHandlers creates new project handlers
func NewProjectHandlers(projectSvc domain.ProjectService, logger *zap.Logger) *ProjectHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectHandlers{projectSvc: projectSvc, logger: logger}
}

// ProjectForm represents the add and edit forms
type ProjectForm struct {
	ID                uint   `form:"id"`
	Title             string `form:"title"`
	FeatureImgURL     string `form:"featureImgURL"`
	SummaryShort      string `form:"summaryShort"`
	IntroShort        string `form:"introShort"`
	Impact            string `form:"impact"`
	OriginalSourceURL string `form:"originalSourceURL"`
	SectorID          uint   `form:"sectorId"`
}

func (f *ProjectForm) toDomain() *domain.Project {
	return &domain.Project{
		ID:                f.ID,
		Title:             f.Title,
		FeatureImgURL:     f.FeatureImgURL,
		SummaryShort:      f.SummaryShort,
		IntroShort:        f.IntroShort,
		Impact:            f.Impact,
		OriginalSourceURL: f.OriginalSourceURL,
		SectorID:          f.SectorID,
	}
}

// List renders all projects, or those of the sector given in ?sector=
func (h *ProjectHandlers) List(c *gin.Context) {
	sector := c.Query("sector")

	var (
		projects []domain.Project
		err      error
	)
	if sector != "" {
		projects, err = h.projectSvc.ListProjectsBySector(c.Request.Context(), sector)
	} else {
		projects, err = h.projectSvc.ListProjects(c.Request.Context())
	}
	if err != nil {
		h.fail(c, err, "Unable to load projects")
		return
	}

	render(c, http.StatusOK, "projects", gin.H{
		"title":    "Projects",
		"projects": projects,
		"sector":   sector,
		"sectors":  h.sectors(c),
	})
}

// Show renders one project
func (h *ProjectHandlers) Show(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		h.fail(c, domain.ErrProjectNotFound, "")
		return
	}
	project, err := h.projectSvc.GetProject(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Unable to load project")
		return
	}
	render(c, http.StatusOK, "project", gin.H{"title": project.Title, "project": project})
}

// AddPage renders the empty add form
func (h *ProjectHandlers) AddPage(c *gin.Context) {
	render(c, http.StatusOK, "addProject", gin.H{
		"title":    "Add project",
		"project":  &domain.Project{},
		"sectors":  h.sectors(c),
		"selected": uint(0),
	})
}

// Add creates a project from the submitted form
func (h *ProjectHandlers) Add(c *gin.Context) {
	var form ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		h.rerender(c, "addProject", &ProjectForm{}, "Invalid form submission")
		return
	}

	project := form.toDomain()
	project.ID = 0
	if err := h.projectSvc.CreateProject(c.Request.Context(), project); err != nil {
		if errors.Is(err, domain.ErrMissingField) {
			h.rerender(c, "addProject", &form, "Title is required")
			return
		}
		h.fail(c, err, "Unable to add project")
		return
	}
	c.Redirect(http.StatusFound, "/solutions/projects")
}

// EditPage renders the edit form for a project
func (h *ProjectHandlers) EditPage(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		h.fail(c, domain.ErrProjectNotFound, "")
		return
	}
	project, err := h.projectSvc.GetProject(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Unable to load project")
		return
	}
	render(c, http.StatusOK, "editProject", gin.H{
		"title":    "Edit project",
		"project":  project,
		"sectors":  h.sectors(c),
		"selected": project.SectorID,
	})
}

// Edit updates the project named by the form's id field
func (h *ProjectHandlers) Edit(c *gin.Context) {
	var form ProjectForm
	if err := c.ShouldBind(&form); err != nil || form.ID == 0 {
		h.fail(c, domain.ErrProjectNotFound, "")
		return
	}

	if err := h.projectSvc.UpdateProject(c.Request.Context(), form.ID, form.toDomain()); err != nil {
		if errors.Is(err, domain.ErrMissingField) {
			h.rerender(c, "editProject", &form, "Title is required")
			return
		}
		h.fail(c, err, "Unable to update project")
		return
	}
	c.Redirect(http.StatusFound, "/solutions/projects")
}

// Delete removes a project
func (h *ProjectHandlers) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		h.fail(c, domain.ErrProjectNotFound, "")
		return
	}
	if err := h.projectSvc.DeleteProject(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Unable to remove project")
		return
	}
	c.Redirect(http.StatusFound, "/solutions/projects")
}

func (h *ProjectHandlers) rerender(c *gin.Context, page string, form *ProjectForm, message string) {
	render(c, http.StatusBadRequest, page, gin.H{
		"title":        "Project",
		"project":      form.toDomain(),
		"sectors":      h.sectors(c),
		"selected":     form.SectorID,
		"errorMessage": message,
	})
}

// fail renders the 404 page for missing projects and the 500 page otherwise.
func (h *ProjectHandlers) fail(c *gin.Context, err error, message string) {
	if errors.Is(err, domain.ErrNoProjects) || errors.Is(err, domain.ErrProjectNotFound) {
		render(c, http.StatusNotFound, "404", gin.H{"title": "Not found", "message": err.Error()})
		return
	}
	h.logger.Error(message, zap.String("path", c.Request.URL.Path), zap.Error(err))
	render(c, http.StatusInternalServerError, "500", gin.H{"title": "Error", "message": message})
}

func (h *ProjectHandlers) sectors(c *gin.Context) []domain.Sector {
	sectors, err := h.projectSvc.ListSectors(c.Request.Context())
	if err != nil {
		h.logger.Warn("unable to load sectors", zap.Error(err))
		return nil
	}
	return sectors
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
