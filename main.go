package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/gamedev-portfolio/internal/carousel"
	"github.com/Zachkp/gamedev-portfolio/internal/catalog"
	"github.com/Zachkp/gamedev-portfolio/internal/config"
	"github.com/Zachkp/gamedev-portfolio/internal/store"
)

// app carries everything the handlers need.
type app struct {
	cfg       config.Config
	store     *store.Store
	carousels *carousel.Registry[catalog.Project]
	mailer    mailer
	now       func() time.Time

	adminToken  string
	hashingSalt string

	// tasks tracks fire-and-forget writes so shutdown can wait for them.
	tasks sync.WaitGroup
}

func newApp(cfg config.Config, st *store.Store, carousels *carousel.Registry[catalog.Project], m mailer) *app {
	return &app{
		cfg:         cfg,
		store:       st,
		carousels:   carousels,
		mailer:      m,
		now:         time.Now,
		adminToken:  generateAdminToken(),
		hashingSalt: generateAdminToken(),
	}
}

func (a *app) background(fn func(ctx context.Context)) {
	a.tasks.Add(1)
	go func() {
		defer a.tasks.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		fn(ctx)
	}()
}

func (a *app) routes() (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	r.Use(a.visitorTrackingMiddleware())

	r.StaticFS("/static", staticFiles())
	r.Static("/images", "./images")

	r.GET("/", a.home)
	r.GET("/projects", a.listProjects)
	r.GET("/projects/:slug", a.showProject)
	r.GET("/projects/:slug/media/:n", a.showMedia)
	r.GET("/api/projects", a.apiProjects)
	r.GET("/api/projects/:slug", a.apiProject)

	r.GET("/work-content", a.workContent)
	r.GET("/education-content", a.educationContent)
	r.GET("/skills-content", a.skillsContent)

	r.GET("/contact-form", a.contactForm)
	r.POST("/contact", a.submitContact)

	a.setupCarouselRoutes(r)
	a.setupAdminRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"title": "Not Found"})
	})
	return r, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	if cfg.SeedProjects {
		if err := st.SeedProjects(ctx, catalog.Projects); err != nil {
			log.Fatalf("Failed to seed projects: %v", err)
		}
	}
	projects, err := st.ListProjects(ctx)
	if err != nil {
		log.Fatalf("Failed to load projects: %v", err)
	}

	carousels := carousel.NewRegistry(cfg.Carousel, catalog.SortPinnedFirst(projects), cfg.IdleTTL,
		carousel.WithMaxSessions(cfg.MaxSessions))
	a := newApp(cfg, st, carousels, newSMTPMailer(cfg.SMTP, cfg.ContactTo))
	a.logAdminAccess()

	handler, err := a.routes()
	if err != nil {
		log.Fatalf("Failed to build routes: %v", err)
	}

	go carousels.Run(ctx, cfg.SweepInterval)
	go a.runRetention(ctx, 24*time.Hour)

	// No WriteTimeout: carousel streams stay open for the whole visit.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Portfolio listening on :%s (%d projects)", cfg.Port, len(projects))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
	carousels.Close()
	a.tasks.Wait()
	log.Println("Server stopped")
}
