// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Zachkp/gamedev-portfolio/internal/catalog"
	"github.com/Zachkp/gamedev-portfolio/internal/store"
)

const adminCookie = "admin_token"

// Paths that never count as a page view
var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin",
	"/favicon",
	"/privacy",
	"/carousel",
	"/api/",
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

func (a *app) logAdminAccess() {
	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", a.adminToken)
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
}

// Hash IP address for privacy compliance (consistent per IP for the life of
// the process)
func (a *app) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// checkAdminLogin compares against the bcrypt hash when one is configured,
// otherwise against the plain password. Development defaults apply in debug
// mode only.
func (a *app) checkAdminLogin(username, password string) bool {
	wantUser, wantPass := a.cfg.AdminUsername, a.cfg.AdminPassword
	if gin.Mode() == gin.DebugMode {
		if wantUser == "" {
			wantUser = "admin"
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
		if wantPass == "" && a.cfg.AdminPasswordHash == "" {
			wantPass = "admin123"
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
	if wantUser == "" || subtle.ConstantTimeCompare([]byte(username), []byte(wantUser)) != 1 {
		return false
	}
	if a.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	return wantPass != "" && subtle.ConstantTimeCompare([]byte(password), []byte(wantPass)) == 1
}

func (a *app) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *app) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		visit := store.VisitorMetric{
			HashedIP:  a.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: a.now(),
		}
		a.background(func(ctx context.Context) {
			if err := a.store.RecordVisit(ctx, visit); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		})
		c.Next()
	}
}

// cleanupVisitors deletes visits older than the retention window.
func (a *app) cleanupVisitors(ctx context.Context) (int64, error) {
	n, err := a.store.CleanupVisitors(ctx, a.now().Add(-a.cfg.VisitorRetention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than %s", n, a.cfg.VisitorRetention)
	}
	return n, nil
}

// runRetention cleans up once at startup and then every interval.
func (a *app) runRetention(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := a.cleanupVisitors(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Error cleaning up old visitor data: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// reloadCarousels pushes the stored projects to every live carousel.
func (a *app) reloadCarousels(ctx context.Context) (int, error) {
	projects, err := a.store.ListProjects(ctx)
	if err != nil {
		return 0, err
	}
	a.carousels.SetItems(catalog.SortPinnedFirst(projects))
	return len(projects), nil
}

func (a *app) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":         "Privacy Policy",
			"retentionDays": int(a.cfg.VisitorRetention.Hours() / 24),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if a.checkAdminLogin(c.PostForm("username"), c.PostForm("password")) {
			c.SetSameSite(http.SameSiteStrictMode)
			c.SetCookie(adminCookie, a.adminToken, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", a.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		log.Printf("Failed admin login attempt from %s", a.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", a.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(a.adminAuthMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.store.AdminStats(c.Request.Context(), a.now())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"title":    "Dashboard",
			"stats":    stats,
			"sessions": a.carousels.Len(),
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.store.AdminStats(c.Request.Context(), a.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/projects", func(c *gin.Context) {
		projects, err := a.store.ListProjects(c.Request.Context())
		if err != nil {
			log.Printf("Error loading projects: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load projects",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-projects.html", gin.H{
			"title":    "Projects",
			"projects": projects,
		})
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"title":    "Visitors",
			"visitors": visitors,
		})
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := a.cleanupVisitors(c.Request.Context())
		if err != nil {
			log.Printf("Error cleaning up old visitor data: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clean up visitor data"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	adminGroup.POST("/carousel/reload", func(c *gin.Context) {
		n, err := a.reloadCarousels(c.Request.Context())
		if err != nil {
			log.Printf("Error reloading carousels: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload projects"})
			return
		}
		log.Printf("Carousel reloaded with %d projects by %s", n, a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "Carousel reloaded", "projects": n, "sessions": a.carousels.Len()})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.store.AdminStats(c.Request.Context(), a.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
