package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Zachkp/gamedev-portfolio/internal/catalog"
	"github.com/Zachkp/gamedev-portfolio/internal/store"
)

func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := e.post(t, "/admin/login", url.Values{"username": {"admin"}, "password": {"s3cret"}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
	cookie := findCookie(rec, adminCookie)
	require.NotNil(t, cookie)
	return cookie
}

func TestAdmin_RequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/admin/dashboard", "/admin/visitors", "/admin/projects", "/admin/api/stats"} {
		rec := env.get(t, path)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"), path)
	}

	rec := env.get(t, "/admin/dashboard", &http.Cookie{Name: adminCookie, Value: "guess"})
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestAdmin_LoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.Nil(t, findCookie(rec, adminCookie))
}

func TestAdmin_NoDefaultCredentialsOutsideDebug(t *testing.T) {
	env := newTestEnv(t)
	env.app.cfg.AdminUsername = ""
	env.app.cfg.AdminPassword = ""

	rec := env.post(t, "/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_LoginWithPasswordHash(t *testing.T) {
	env := newTestEnv(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	env.app.cfg.AdminPassword = ""
	env.app.cfg.AdminPasswordHash = string(hash)

	rec := env.post(t, "/admin/login", url.Values{"username": {"admin"}, "password": {"hunter2"}})
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = env.post(t, "/admin/login", url.Values{"username": {"admin"}, "password": {"s3cret"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_Dashboard(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	env.get(t, "/projects/tidebound")
	env.get(t, "/")
	env.app.tasks.Wait()

	rec := env.get(t, "/admin/dashboard", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Dashboard")
	assert.Contains(t, body, "Tidebound")
	assert.Contains(t, body, "/projects/tidebound")

	rec = env.get(t, "/admin/api/stats", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats store.AdminStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.TotalVisitors)
	assert.Equal(t, int64(1), stats.UniqueVisitors)
	assert.Equal(t, int64(len(catalog.Projects)), stats.TotalProjects)
	assert.Equal(t, int64(1), stats.TotalViews)
}

func TestAdmin_ProjectsAndVisitors(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.get(t, "/admin/projects", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Glyphbreaker")
	assert.Contains(t, rec.Body.String(), "14 months")

	env.get(t, "/projects")
	env.app.tasks.Wait()
	rec = env.get(t, "/admin/visitors", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), env.app.hashIP("192.0.2.1"))
	assert.NotContains(t, rec.Body.String(), "192.0.2.1")
}

func TestAdmin_Logout(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.get(t, "/admin/logout", cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	cleared := findCookie(rec, adminCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestAdmin_ExportStats(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.get(t, "/admin/export/stats", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "admin-stats.json")
}

func TestAdmin_PrivacyCleanup(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)
	ctx := context.Background()

	now := env.clock.Now()
	require.NoError(t, env.app.store.RecordVisit(ctx, store.VisitorMetric{HashedIP: "old", Path: "/", Timestamp: now.Add(-2 * env.app.cfg.VisitorRetention)}))
	require.NoError(t, env.app.store.RecordVisit(ctx, store.VisitorMetric{HashedIP: "new", Path: "/", Timestamp: now.Add(-time.Hour)}))

	rec := env.post(t, "/admin/privacy/cleanup", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Privacy cleanup complete","removed":1}`, rec.Body.String())

	visitors, err := env.app.store.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visitors, 1)
	assert.Equal(t, "new", visitors[0].HashedIP)
}

func TestAdmin_CarouselReload(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t)
	visitor := env.visitor(t)
	ctx := context.Background()

	require.NoError(t, env.app.store.SeedProjects(ctx, catalog.Projects[2:]))

	rec := env.post(t, "/admin/carousel/reload", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Carousel reloaded","projects":3,"sessions":1}`, rec.Body.String())

	st := decodeState(t, env.get(t, "/carousel/state", visitor))
	assert.Equal(t, 3, st.Len)
	assert.Equal(t, 0, st.Index)
	assert.True(t, st.Playing)

	rec = env.get(t, "/carousel", visitor)
	assert.Contains(t, rec.Body.String(), `href="/projects/tidebound"`)
}

func TestVisitorTracking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.get(t, "/projects")
	env.get(t, "/carousel/state")
	env.get(t, "/api/projects")
	env.get(t, "/privacy")
	env.get(t, "/static/site.css")

	req := httptest.NewRequest(http.MethodGet, "/projects/tidebound", nil)
	req.Header.Set("DNT", "1")
	env.do(t, req)
	env.app.tasks.Wait()

	visitors, err := env.app.store.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visitors, 1)
	assert.Equal(t, "/projects", visitors[0].Path)
	assert.Len(t, visitors[0].HashedIP, 16)
	assert.True(t, env.clock.Now().Equal(visitors[0].Timestamp))
}

func TestRunRetention_StopsOnCancel(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, env.app.store.RecordVisit(context.Background(), store.VisitorMetric{
		HashedIP:  "stale",
		Timestamp: env.clock.Now().Add(-2 * env.app.cfg.VisitorRetention),
	}))

	done := make(chan struct{})
	go func() {
		env.app.runRetention(ctx, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool {
		visitors, err := env.app.store.RecentVisitors(context.Background(), 10)
		return err == nil && len(visitors) == 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runRetention did not stop")
	}
}
