package main

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/gamedev-portfolio/internal/carousel"
	"github.com/Zachkp/gamedev-portfolio/internal/catalog"
)

// visitor returns a cookie for a visitor with a live carousel session.
func (e *testEnv) visitor(t *testing.T) *http.Cookie {
	t.Helper()
	rec := e.get(t, "/carousel/state")
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := findCookie(rec, visitorCookie)
	require.NotNil(t, cookie)
	_, err := e.app.carousels.Acquire(cookie.Value)
	require.NoError(t, err)
	return cookie
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) carousel.State {
	t.Helper()
	var st carousel.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestCarouselState_StartsPlaying(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/carousel/state")
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, len(catalog.Projects), st.Len)
	assert.True(t, st.Playing)
}

func TestCarouselVisitorCookie_Reused(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get(t, "/carousel/state")
	cookie := findCookie(rec, visitorCookie)
	require.NotNil(t, cookie)

	rec = env.post(t, "/carousel/pause", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, findCookie(rec, visitorCookie))
	assert.Equal(t, 1, env.app.carousels.Len())

	rec = env.post(t, "/carousel/pause", nil, &http.Cookie{Name: visitorCookie, Value: "not-a-uuid"})
	require.NotNil(t, findCookie(rec, visitorCookie))
	assert.Equal(t, 2, env.app.carousels.Len())
}

func TestCarouselReads_DoNotCreateSessions(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 500; i++ {
		rec := env.get(t, "/carousel/state")
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, findCookie(rec, visitorCookie))
	}
	for _, path := range []string{"/", "/carousel"} {
		require.Equal(t, http.StatusOK, env.get(t, path).Code, path)
	}

	assert.Equal(t, 0, env.app.carousels.Len())
	assert.Equal(t, 0, env.clock.Pending())
}

func TestCarouselSession_RegistryFull(t *testing.T) {
	env := newTestEnv(t)
	registry := carousel.NewRegistry(env.app.cfg.Carousel, catalog.Projects, env.app.cfg.IdleTTL,
		carousel.WithClock(env.clock), carousel.WithMaxSessions(1))
	t.Cleanup(registry.Close)
	env.app.carousels = registry

	watched := env.visitor(t)
	s, ok := registry.Lookup(watched.Value)
	require.True(t, ok)
	sub := s.Hub.Subscribe()
	defer s.Hub.Unsubscribe(sub)

	rec := env.post(t, "/carousel/pause", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
	assert.Equal(t, 1, registry.Len())

	rec = env.post(t, "/carousel/pause", nil, watched)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCarouselAutoAdvance(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.visitor(t)

	env.clock.Advance(env.app.cfg.Carousel.Dwell)
	st := decodeState(t, env.get(t, "/carousel/state", cookie))
	assert.Equal(t, 1, st.Index)
	assert.True(t, st.Playing)
}

func TestCarouselSelect_PausesThenResumes(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.visitor(t)

	rec := env.post(t, "/carousel/select/3", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	assert.Equal(t, 3, st.Index)
	assert.False(t, st.Playing)
	assert.Zero(t, st.Progress)

	env.clock.Advance(env.app.cfg.Carousel.ResumeDelay - time.Millisecond)
	assert.False(t, decodeState(t, env.get(t, "/carousel/state", cookie)).Playing)

	env.clock.Advance(time.Millisecond)
	st = decodeState(t, env.get(t, "/carousel/state", cookie))
	assert.True(t, st.Playing)
	assert.Equal(t, 3, st.Index)
}

func TestCarouselSelect_BadInput(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.visitor(t)

	for _, path := range []string{"/carousel/select/99", "/carousel/select/-1", "/carousel/select/two"} {
		rec := env.post(t, path, nil, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "error", path)
	}

	st := decodeState(t, env.get(t, "/carousel/state", cookie))
	assert.Equal(t, 0, st.Index)
	assert.True(t, st.Playing)
}

func TestCarouselAdvance(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.visitor(t)

	st := decodeState(t, env.post(t, "/carousel/advance/up", nil, cookie))
	assert.Equal(t, len(catalog.Projects)-1, st.Index)
	assert.True(t, st.Playing)

	st = decodeState(t, env.post(t, "/carousel/advance/down", nil, cookie))
	assert.Equal(t, 0, st.Index)

	st = decodeState(t, env.post(t, "/carousel/advance/next", nil, cookie))
	assert.Equal(t, 1, st.Index)

	rec := env.post(t, "/carousel/advance/sideways", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCarouselPauseAndResume(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.visitor(t)
	cfg := env.app.cfg.Carousel

	env.clock.Advance(cfg.Dwell / 2)
	st := decodeState(t, env.post(t, "/carousel/pause", nil, cookie))
	assert.False(t, st.Playing)
	assert.InDelta(t, 50, st.Progress, 0.01)

	env.clock.Advance(cfg.Dwell * 3)
	st = decodeState(t, env.get(t, "/carousel/state", cookie))
	assert.Equal(t, 0, st.Index)
	assert.False(t, st.Playing)

	rec := env.post(t, "/carousel/resume", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	env.clock.Advance(cfg.ResumeDelay)
	st = decodeState(t, env.get(t, "/carousel/state", cookie))
	assert.True(t, st.Playing)
	assert.Zero(t, st.Progress)
}

func TestCarouselControl_HTMXFragment(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.visitor(t)

	req := httptest.NewRequest(http.MethodPost, "/carousel/select/2", nil)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(cookie)
	rec := env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-index="2"`)
	assert.Contains(t, rec.Body.String(), `href="/projects/tidebound"`)
}

func TestCarouselFragment(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/carousel")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-playing="true"`)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

type sseEvent struct {
	name string
	data string
}

func readEvent(t *testing.T, r *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.name != "" {
				return ev
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			ev.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			ev.data += strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}

func TestCarouselStream(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.visitor(t)

	srv := httptest.NewServer(env.engine)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/carousel/stream", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	r := bufio.NewReader(resp.Body)
	ev := readEvent(t, r)
	assert.Equal(t, "carousel", ev.name)
	assert.Contains(t, ev.data, `data-index="0"`)

	env.clock.Advance(env.app.cfg.Carousel.ProgressTick)
	ev = readEvent(t, r)
	assert.Equal(t, "progress", ev.name)
	assert.Equal(t, "0.5", ev.data)

	rec := env.post(t, "/carousel/select/4", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	ev = readEvent(t, r)
	assert.Equal(t, "carousel", ev.name)
	assert.Contains(t, ev.data, `data-index="4"`)
	assert.Contains(t, ev.data, `data-playing="false"`)
}

func TestCarouselSocket(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.visitor(t)

	srv := httptest.NewServer(env.engine)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/carousel/ws", &websocket.DialOptions{
		HTTPHeader: http.Header{"Cookie": []string{(&http.Cookie{Name: cookie.Name, Value: cookie.Value}).String()}},
	})
	require.NoError(t, err)
	defer conn.CloseNow()

	var st carousel.State
	require.NoError(t, wsjson.Read(ctx, conn, &st))
	assert.Equal(t, 0, st.Index)
	assert.True(t, st.Playing)

	require.NoError(t, wsjson.Write(ctx, conn, wsMessage{Type: "select", Index: 4}))
	require.NoError(t, wsjson.Read(ctx, conn, &st))
	assert.Equal(t, 4, st.Index)
	assert.False(t, st.Playing)

	require.NoError(t, wsjson.Write(ctx, conn, wsMessage{Type: "advance", Direction: "up"}))
	require.NoError(t, wsjson.Read(ctx, conn, &st))
	assert.Equal(t, 3, st.Index)

	require.NoError(t, wsjson.Write(ctx, conn, wsMessage{Type: "teleport"}))
	var failure wsError
	require.NoError(t, wsjson.Read(ctx, conn, &failure))
	assert.Equal(t, "error", failure.Type)
	assert.Contains(t, failure.Error, "teleport")

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
}

func TestApplyMessage(t *testing.T) {
	ctrl := carousel.New(catalog.Projects[:3], carousel.DefaultConfig())
	ctrl.Start()
	defer ctrl.Stop()

	require.NoError(t, applyMessage(ctrl, wsMessage{Type: "pause"}))
	assert.False(t, ctrl.State().Playing)
	require.NoError(t, applyMessage(ctrl, wsMessage{Type: "resume"}))
	require.ErrorIs(t, applyMessage(ctrl, wsMessage{Type: "select", Index: 3}), carousel.ErrIndexOutOfRange)
	require.ErrorIs(t, applyMessage(ctrl, wsMessage{Type: "advance", Direction: "diagonal"}), carousel.ErrUnknownDirection)
}
