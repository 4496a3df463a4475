package main

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/gamedev-portfolio/internal/catalog"
	"github.com/Zachkp/gamedev-portfolio/internal/store"
	"github.com/Zachkp/gamedev-portfolio/internal/views"
)

// Home page with the featured carousel
func (a *app) home(c *gin.Context) {
	st, projects := a.carousels.View(a.visitorID(c))
	// A failed fragment leaves the page without a carousel.
	html, _ := fragment(c, projects, st)

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":          "Home",
		"aboutMeContent": AboutMe,
		"carousel":       template.HTML(html),
		"skillGroups":    SkillGroups,
	})
}

// Project grid, optionally filtered by tag. HTMX requests get only the grid.
func (a *app) listProjects(c *gin.Context) {
	projects, err := a.store.ListProjects(c.Request.Context())
	if err != nil {
		log.Printf("Error loading projects: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load projects"})
		return
	}
	projects = catalog.SortPinnedFirst(projects)
	tag := c.Query("tag")

	data := gin.H{
		"title":    "Projects",
		"projects": catalog.FilterByTag(projects, tag),
		"tags":     catalog.Tags(projects),
		"tag":      tag,
	}
	if isHTMX(c) {
		c.HTML(http.StatusOK, "project-grid.html", data)
		return
	}
	c.HTML(http.StatusOK, "projects.html", data)
}

// Case study page. Each render counts as a view.
func (a *app) showProject(c *gin.Context) {
	project, ok := a.loadProject(c)
	if !ok {
		return
	}

	slug := project.Slug
	a.background(func(ctx context.Context) {
		if err := a.store.RecordProjectView(ctx, slug); err != nil {
			log.Printf("Error recording view for %s: %v", slug, err)
		}
	})

	var trailer string
	if id, ok := project.VideoID(); ok {
		trailer = catalog.EmbedURL(id, false)
	}
	c.HTML(http.StatusOK, "project.html", gin.H{
		"title":   project.Title,
		"project": project,
		"trailer": trailer,
	})
}

// Gallery modal for one media entry.
func (a *app) showMedia(c *gin.Context) {
	project, ok := a.loadProject(c)
	if !ok {
		return
	}
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 0 || n >= len(project.Media) {
		c.String(http.StatusNotFound, "media not found")
		return
	}

	m := project.Media[n]
	vm := views.MediaViewer{
		Slug:    project.Slug,
		Title:   project.Title,
		Index:   n,
		Count:   len(project.Media),
		Kind:    string(m.Kind),
		URL:     m.URL,
		Caption: m.Caption,
	}
	if m.Kind == catalog.MediaVideo {
		if id, ok := catalog.YouTubeID(m.URL); ok {
			vm.EmbedURL = catalog.EmbedURL(id, true)
		}
	}
	render(c, http.StatusOK, views.MediaViewerFragment(vm))
}

func (a *app) apiProjects(c *gin.Context) {
	projects, err := a.store.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load projects"})
		return
	}
	projects = catalog.FilterByTag(catalog.SortPinnedFirst(projects), c.Query("tag"))
	if projects == nil {
		projects = []catalog.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

func (a *app) apiProject(c *gin.Context) {
	project, err := a.store.GetProject(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (a *app) loadProject(c *gin.Context) (catalog.Project, bool) {
	project, err := a.store.GetProject(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, store.ErrNotFound) {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"title": "Not Found"})
		return catalog.Project{}, false
	}
	if err != nil {
		log.Printf("Error loading project %s: %v", c.Param("slug"), err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load project"})
		return catalog.Project{}, false
	}
	return project, true
}

// Work experience tab
func (a *app) workContent(c *gin.Context) {
	c.HTML(http.StatusOK, "work-content.html", gin.H{"entries": Jobs})
}

// Education tab
func (a *app) educationContent(c *gin.Context) {
	c.HTML(http.StatusOK, "education-content.html", gin.H{"entries": Schooling})
}

func (a *app) skillsContent(c *gin.Context) {
	c.HTML(http.StatusOK, "skills-content.html", gin.H{"skillGroups": SkillGroups})
}
