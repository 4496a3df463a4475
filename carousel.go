package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/gamedev-portfolio/internal/carousel"
	"github.com/Zachkp/gamedev-portfolio/internal/catalog"
	"github.com/Zachkp/gamedev-portfolio/internal/views"
)

const (
	visitorCookie = "portfolio_visitor"
	visitorMaxAge = 30 * 24 * 3600

	streamKeepalive = 25 * time.Second
	wsWriteTimeout  = 5 * time.Second
)

type carouselSession = carousel.Session[catalog.Project]

// wsMessage is a control message sent by the browser over /carousel/ws.
type wsMessage struct {
	Type      string `json:"type"`
	Index     int    `json:"index,omitempty"`
	Direction string `json:"direction,omitempty"`
}

type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (a *app) setupCarouselRoutes(r *gin.Engine) {
	g := r.Group("/carousel")
	g.GET("", a.carouselFragment)
	g.GET("/state", a.carouselState)
	g.POST("/select/:index", a.carouselSelect)
	g.POST("/advance/:direction", a.carouselAdvance)
	g.POST("/pause", a.carouselPause)
	g.POST("/resume", a.carouselResume)
	g.GET("/stream", a.carouselStream)
	g.GET("/ws", a.carouselSocket)
}

// visitorID returns the visitor's session key, issuing a new one when the
// cookie is missing or malformed.
func (a *app) visitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookie); err == nil {
		if parsed, err := uuid.Parse(id); err == nil {
			return parsed.String()
		}
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(visitorCookie, id, visitorMaxAge, "/", "", false, true)
	return id
}

// session returns the visitor's live carousel, creating it on first
// interaction. It writes a 503 and reports false when the registry is full.
func (a *app) session(c *gin.Context) (*carouselSession, bool) {
	s, err := a.carousels.Acquire(a.visitorID(c))
	if err != nil {
		log.Printf("Error acquiring carousel session: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "carousel is busy, try again later"})
		return nil, false
	}
	return s, true
}

// fragment renders the carousel markup for st, logging failures.
func fragment(c *gin.Context, projects []catalog.Project, st carousel.State) (string, error) {
	return renderToString(c, views.CarouselFragment(carouselView(projects, st)))
}

func carouselView(projects []catalog.Project, st carousel.State) views.Carousel {
	slides := make([]views.Slide, len(projects))
	for i, p := range projects {
		slides[i] = views.Slide{
			Slug:    p.Slug,
			Title:   p.Title,
			Tagline: p.Tagline,
			Cover:   p.Cover(),
			DevTime: catalog.FormatDevTime(p.DevTime),
			Starred: p.Starred,
		}
	}
	return views.Carousel{
		Slides:   slides,
		Index:    st.Index,
		Playing:  st.Playing,
		Progress: st.Progress,
		Version:  st.Version,
	}
}

// Reads never create a session; visitors without one see the initial state.
func (a *app) carouselFragment(c *gin.Context) {
	st, projects := a.carousels.View(a.visitorID(c))
	render(c, http.StatusOK, views.CarouselFragment(carouselView(projects, st)))
}

func (a *app) carouselState(c *gin.Context) {
	st, _ := a.carousels.View(a.visitorID(c))
	c.JSON(http.StatusOK, st)
}

func (a *app) carouselSelect(c *gin.Context) {
	s, ok := a.session(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}
	a.respondCarousel(c, s, s.Controller.Select(index))
}

func (a *app) carouselAdvance(c *gin.Context) {
	s, ok := a.session(c)
	if !ok {
		return
	}
	dir, err := carousel.ParseDirection(c.Param("direction"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.respondCarousel(c, s, s.Controller.Advance(dir))
}

// Pointer entered the preview
func (a *app) carouselPause(c *gin.Context) {
	s, ok := a.session(c)
	if !ok {
		return
	}
	a.respondCarousel(c, s, s.Controller.Pause())
}

// Pointer left the preview
func (a *app) carouselResume(c *gin.Context) {
	s, ok := a.session(c)
	if !ok {
		return
	}
	a.respondCarousel(c, s, s.Controller.ScheduleResume())
}

// respondCarousel reports the state after a control call. Bad input is a
// 400; an empty or stopped carousel just reports its idle state.
func (a *app) respondCarousel(c *gin.Context, s *carouselSession, err error) {
	if errors.Is(err, carousel.ErrIndexOutOfRange) || errors.Is(err, carousel.ErrUnknownDirection) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if isHTMX(c) {
		render(c, http.StatusOK, views.CarouselFragment(carouselView(s.Controller.Items(), s.Controller.State())))
		return
	}
	c.JSON(http.StatusOK, s.Controller.State())
}

// carouselStream pushes the carousel over SSE. Index, play state and item
// changes send a "carousel" event with the re-rendered fragment; progress
// ticks send a lighter "progress" event with the percentage only.
func (a *app) carouselStream(c *gin.Context) {
	s, ok := a.session(c)
	if !ok {
		return
	}
	sub := s.Hub.Subscribe()
	defer s.Hub.Unsubscribe(sub)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	last := s.Controller.State()
	if html, err := fragment(c, s.Controller.Items(), last); err == nil {
		c.SSEvent("carousel", html)
	}
	c.Writer.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()
	ctx := c.Request.Context()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-keepalive.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				log.Printf("Error writing carousel keepalive: %v", err)
				return false
			}
			return true
		case st, ok := <-sub:
			if !ok {
				return false
			}
			if st.Version <= last.Version {
				return true
			}
			if st.Index == last.Index && st.Playing == last.Playing && st.Len == last.Len {
				c.SSEvent("progress", strconv.FormatFloat(st.Progress, 'f', 1, 64))
			} else if html, err := fragment(c, s.Controller.Items(), st); err == nil {
				c.SSEvent("carousel", html)
			}
			last = st
			return true
		}
	})
}

// carouselSocket serves the carousel over a WebSocket. The server sends the
// State JSON on connect and after every change; the browser sends control
// messages.
func (a *app) carouselSocket(c *gin.Context) {
	s, ok := a.session(c)
	if !ok {
		return
	}
	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Error accepting carousel websocket: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := s.Hub.Subscribe()
	defer s.Hub.Unsubscribe(sub)

	if err := writeJSON(ctx, conn, s.Controller.State()); err != nil {
		return
	}

	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case st, ok := <-sub:
				if !ok {
					conn.Close(websocket.StatusGoingAway, "carousel closed")
					return
				}
				if err := writeJSON(ctx, conn, st); err != nil {
					return
				}
			}
		}
	}()

	for {
		var msg wsMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				log.Printf("Error reading carousel websocket: %v", err)
			}
			return
		}
		if err := applyMessage(s.Controller, msg); err != nil {
			if errors.Is(err, carousel.ErrEmptySequence) || errors.Is(err, carousel.ErrInactive) {
				continue
			}
			if err := writeJSON(ctx, conn, wsError{Type: "error", Error: err.Error()}); err != nil {
				return
			}
		}
	}
}

func applyMessage(ctrl *carousel.Controller[catalog.Project], msg wsMessage) error {
	switch msg.Type {
	case "select":
		return ctrl.Select(msg.Index)
	case "advance":
		dir, err := carousel.ParseDirection(msg.Direction)
		if err != nil {
			return err
		}
		return ctrl.Advance(dir)
	case "pause":
		return ctrl.Pause()
	case "resume":
		return ctrl.ScheduleResume()
	default:
		return errors.New("unknown message type " + strconv.Quote(msg.Type))
	}
}

func writeJSON(ctx context.Context, conn *websocket.Conn, v any) error {
	ctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, v)
}
