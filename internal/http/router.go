package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/you/portfoliosvc/internal/http/handlers"
	"github.com/you/portfoliosvc/internal/http/middleware"
	"github.com/you/portfoliosvc/internal/http/views"
	"go.uber.org/zap"
)

// Deps are the pieces BuildRouter mounts
type Deps struct {
	Pages     *handlers.PageHandlers
	Auth      *handlers.AuthHandlers
	Projects  *handlers.ProjectHandlers
	Session   *middleware.AuthMW
	Policy    *middleware.CasbinMW
	Logger    *zap.Logger
	StaticDir string
}

// BuildRouter wires every page. The session is resolved first, then the
// access policy decides whether the matched route may run.
func BuildRouter(d Deps) (*gin.Engine, error) {
	tmpl, err := views.Load()
	if err != nil {
		return nil, err
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.SecurityHeaders())
	r.SetHTMLTemplate(tmpl)
	r.Use(d.Session.LoadSession(), d.Policy.Enforce())

	if d.StaticDir != "" {
		r.Static("/static", d.StaticDir)
	}

	r.GET("/", d.Pages.Home)
	r.GET("/about", d.Pages.About)

	r.GET("/login", d.Auth.LoginPage)
	r.POST("/login", d.Auth.Login)
	r.GET("/register", d.Auth.RegisterPage)
	r.POST("/register", d.Auth.Register)
	r.GET("/logout", d.Auth.Logout)
	r.GET("/userHistory", d.Auth.UserHistory)

	s := r.Group("/solutions")
	s.GET("/projects", d.Projects.List)
	s.GET("/projects/:id", d.Projects.Show)
	s.GET("/addProject", d.Projects.AddPage)
	s.POST("/addProject", d.Projects.Add)
	s.GET("/editProject/:id", d.Projects.EditPage)
	s.POST("/editProject", d.Projects.Edit)
	s.GET("/deleteProject/:id", d.Projects.Delete)

	// Global middleware also runs for NoRoute.
	r.NoRoute(d.Pages.NotFound)

	return r, nil
}
