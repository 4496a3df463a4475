// Package carousel rotates through a fixed sequence of items on a timer,
// letting visitor interaction suspend and resume the rotation.
//
// A Controller owns three timers: a repeating dwell timer that advances the
// current item, a repeating progress timer that animates the dwell progress
// bar, and a one-shot resume timer that restarts rotation after a period of
// inactivity. Every timer is tracked with a generation number; a callback
// whose generation no longer matches was cancelled and does nothing.
package carousel

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Zachkp/gamedev-portfolio/internal/clock"
)

var (
	// ErrEmptySequence is returned by operations on a controller without items.
	ErrEmptySequence = errors.New("carousel has no items")
	// ErrIndexOutOfRange is returned by Select for an index outside the items.
	ErrIndexOutOfRange = errors.New("carousel index out of range")
	// ErrInactive is returned before Start and after Stop.
	ErrInactive = errors.New("carousel is not running")
	// ErrUnknownDirection is returned by ParseDirection.
	ErrUnknownDirection = errors.New("unknown carousel direction")
)

// Config holds the rotation timings.
type Config struct {
	Dwell        time.Duration `env:"DWELL" envDefault:"10s"`
	ResumeDelay  time.Duration `env:"RESUME_DELAY" envDefault:"10s"`
	ProgressTick time.Duration `env:"PROGRESS_TICK" envDefault:"50ms"`
}

// DefaultConfig returns the timings used on the live site.
func DefaultConfig() Config {
	return Config{
		Dwell:        10 * time.Second,
		ResumeDelay:  10 * time.Second,
		ProgressTick: 50 * time.Millisecond,
	}
}

// Validate reports whether the timings can drive a controller.
func (c Config) Validate() error {
	if c.Dwell <= 0 {
		return fmt.Errorf("dwell must be positive, got %s", c.Dwell)
	}
	if c.ResumeDelay <= 0 {
		return fmt.Errorf("resume delay must be positive, got %s", c.ResumeDelay)
	}
	if c.ProgressTick <= 0 {
		return fmt.Errorf("progress tick must be positive, got %s", c.ProgressTick)
	}
	if c.ProgressTick > c.Dwell {
		return fmt.Errorf("progress tick %s exceeds dwell %s", c.ProgressTick, c.Dwell)
	}
	return nil
}

// Direction selects manual navigation order.
type Direction int

const (
	Next Direction = iota
	Previous
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps navigation names to a Direction. Wheel adapters send
// "down" and "up".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "next", "down", "right":
		return Next, nil
	case "previous", "prev", "up", "left":
		return Previous, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// State is a snapshot of the rotation state.
type State struct {
	Index    int     `json:"index"`
	Len      int     `json:"len"`
	Playing  bool    `json:"playing"`
	Progress float64 `json:"progress"`
	Version  uint64  `json:"version"`
}

// Empty reports whether there is nothing to display.
func (s State) Empty() bool { return s.Len == 0 }

// Option configures a Controller.
type Option func(*options)

type options struct {
	clock       clock.Clock
	onChange    func(State)
	maxSessions int
}

// WithClock replaces the wall clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithMaxSessions caps how many sessions a Registry keeps. Zero means no
// cap. Controllers ignore it.
func WithMaxSessions(n int) Option {
	return func(o *options) { o.maxSessions = n }
}

// WithOnChange registers fn to receive a snapshot after every state change.
// Calls are serialized and arrive in version order; none start after Stop
// returns. fn runs outside the state lock but must not call back into the
// controller.
func WithOnChange(fn func(State)) Option {
	return func(o *options) { o.onChange = fn }
}

type slot struct {
	timer clock.Timer
	gen   uint64
}

// Controller rotates through items. It is safe for concurrent use.
type Controller[T any] struct {
	mu       sync.Mutex
	notifyMu sync.Mutex
	notified uint64
	cfg      Config
	clock    clock.Clock
	onChange func(State)

	items   []T
	index   int
	playing bool
	ticks   int
	version uint64

	started bool
	stopped bool

	dwell    slot
	progress slot
	resume   slot
}

// New returns a controller over items. Rotation begins with Start.
func New[T any](items []T, cfg Config, opts ...Option) *Controller[T] {
	o := options{clock: clock.Real()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller[T]{
		cfg:      cfg,
		clock:    o.clock,
		onChange: o.onChange,
		items:    append([]T(nil), items...),
	}
}

// Start mounts the controller: it begins playing from the first item. A
// controller without items stays idle and arms no timers.
func (c *Controller[T]) Start() {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.started = true
	if len(c.items) == 0 {
		c.mu.Unlock()
		return
	}
	c.index = 0
	c.beginPlayingLocked()
	st := c.bumpLocked()
	c.mu.Unlock()
	c.notify(st)
}

// Stop unmounts the controller. No timer callback changes state and no
// observer call is in flight after Stop returns. Stop is idempotent.
func (c *Controller[T]) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.playing = false
	c.cancelLocked(&c.dwell)
	c.cancelLocked(&c.progress)
	c.cancelLocked(&c.resume)
	c.mu.Unlock()

	// Wait out a notification that passed its stopped check.
	c.notifyMu.Lock()
	c.notifyMu.Unlock()
}

// SetItems replaces the items. A change in length resets the rotation to
// the first item and restarts playback from zero; otherwise the state is
// kept and only the item values change.
func (c *Controller[T]) SetItems(items []T) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	sameLen := len(items) == len(c.items)
	c.items = append([]T(nil), items...)
	if sameLen {
		c.mu.Unlock()
		return
	}
	c.cancelLocked(&c.dwell)
	c.cancelLocked(&c.progress)
	c.cancelLocked(&c.resume)
	c.index = 0
	c.ticks = 0
	c.playing = false
	if c.started && len(c.items) > 0 {
		c.beginPlayingLocked()
	}
	st := c.bumpLocked()
	c.mu.Unlock()
	c.notify(st)
}

// Select jumps to index and pauses rotation. Rotation resumes after the
// resume delay unless another interaction restarts the countdown.
func (c *Controller[T]) Select(index int) error {
	c.mu.Lock()
	if err := c.guardLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if index < 0 || index >= len(c.items) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, len(c.items))
	}
	c.index = index
	c.ticks = 0
	c.playing = false
	c.cancelLocked(&c.dwell)
	c.cancelLocked(&c.progress)
	c.armResumeLocked()
	st := c.bumpLocked()
	c.mu.Unlock()
	c.notify(st)
	return nil
}

// Advance moves one item in dir, wrapping at both ends. The play state is
// unchanged; while playing, the progress animation restarts for the new
// item but the dwell timer keeps its phase.
func (c *Controller[T]) Advance(dir Direction) error {
	c.mu.Lock()
	if err := c.guardLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	n := len(c.items)
	switch dir {
	case Next:
		c.index = (c.index + 1) % n
	case Previous:
		c.index = (c.index - 1 + n) % n
	default:
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownDirection, dir)
	}
	c.ticks = 0
	if c.playing {
		c.armProgressLocked()
	}
	st := c.bumpLocked()
	c.mu.Unlock()
	c.notify(st)
	return nil
}

// Pause stops rotation while the pointer is over the preview. Progress is
// kept. A pending resume countdown is cancelled; ScheduleResume starts a
// fresh one when the pointer leaves.
func (c *Controller[T]) Pause() error {
	c.mu.Lock()
	if err := c.guardLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.cancelLocked(&c.resume)
	if !c.playing {
		c.mu.Unlock()
		return nil
	}
	c.playing = false
	c.cancelLocked(&c.dwell)
	c.cancelLocked(&c.progress)
	st := c.bumpLocked()
	c.mu.Unlock()
	c.notify(st)
	return nil
}

// ScheduleResume restarts the resume countdown.
func (c *Controller[T]) ScheduleResume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guardLocked(); err != nil {
		return err
	}
	c.armResumeLocked()
	return nil
}

// State returns the current snapshot.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Current returns the displayed item.
func (c *Controller[T]) Current() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	if len(c.items) == 0 {
		return zero, false
	}
	return c.items[c.index], true
}

// Items returns a copy of the items.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

func (c *Controller[T]) guardLocked() error {
	if !c.started || c.stopped {
		return ErrInactive
	}
	if len(c.items) == 0 {
		return ErrEmptySequence
	}
	return nil
}

func (c *Controller[T]) beginPlayingLocked() {
	c.playing = true
	c.ticks = 0
	c.armDwellLocked()
	c.armProgressLocked()
}

func (c *Controller[T]) armDwellLocked() {
	c.armLocked(&c.dwell, c.cfg.Dwell, true, func() {
		c.index = (c.index + 1) % len(c.items)
		c.ticks = 0
		c.armProgressLocked()
	})
}

func (c *Controller[T]) armProgressLocked() {
	c.armLocked(&c.progress, c.cfg.ProgressTick, true, func() {
		c.ticks++
		if c.progressLocked() >= 100 {
			c.ticks = 0
		}
	})
}

func (c *Controller[T]) armResumeLocked() {
	c.armLocked(&c.resume, c.cfg.ResumeDelay, false, func() {
		if c.playing {
			c.ticks = 0
			return
		}
		c.beginPlayingLocked()
	})
}

// armLocked cancels whatever s holds and schedules fn after d. Repeating
// slots re-arm before fn runs so fn may re-arm other slots.
func (c *Controller[T]) armLocked(s *slot, d time.Duration, repeat bool, fn func()) {
	c.cancelLocked(s)
	gen := s.gen
	var fire func()
	fire = func() {
		c.mu.Lock()
		if c.stopped || s.gen != gen || len(c.items) == 0 {
			c.mu.Unlock()
			return
		}
		if repeat {
			s.timer = c.clock.AfterFunc(d, fire)
		} else {
			s.timer = nil
		}
		fn()
		st := c.bumpLocked()
		c.mu.Unlock()
		c.notify(st)
	}
	s.timer = c.clock.AfterFunc(d, fire)
}

func (c *Controller[T]) cancelLocked(s *slot) {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (c *Controller[T]) progressLocked() float64 {
	if c.cfg.Dwell <= 0 {
		return 0
	}
	return float64(c.ticks) * 100 * float64(c.cfg.ProgressTick) / float64(c.cfg.Dwell)
}

func (c *Controller[T]) stateLocked() State {
	return State{
		Index:    c.index,
		Len:      len(c.items),
		Playing:  c.playing,
		Progress: c.progressLocked(),
		Version:  c.version,
	}
}

func (c *Controller[T]) bumpLocked() State {
	c.version++
	return c.stateLocked()
}

// notify delivers st unless the controller stopped or a newer snapshot was
// already delivered.
func (c *Controller[T]) notify(st State) {
	if c.onChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.mu.Lock()
	stopped := c.stopped
	c.mu.Unlock()
	if stopped || st.Version <= c.notified {
		return
	}
	c.notified = st.Version
	c.onChange(st)
}
