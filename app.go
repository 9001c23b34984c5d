package jterm

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/grindlemire/jterm/internal/debug"
)

var (
	// ErrAlreadyRunning is returned by Run when the app is already running.
	ErrAlreadyRunning = errors.New("jterm: app is already running")
	// ErrNotTerminal is returned when the input or output is not a terminal.
	ErrNotTerminal = errors.New("jterm: not a terminal")
)

// App owns the widget tree and runs the scheduler that ties input
// decoding, message handling and frame rendering together.
type App struct {
	root     *Container
	terminal Terminal
	reader   InputReader
	decoder  *Decoder
	screen   *Screen
	handlers handlerTable
	bindings []KeyBinding

	dirty   atomic.Bool
	running atomic.Bool

	keyQ   chan KeyEvent
	mouseQ chan MouseEvent

	stopMu sync.Mutex
	cancel func()

	overrunLog rate.Sometimes

	// Configuration (set via options)
	frameDuration   time.Duration
	pollTimeout     time.Duration
	escapeTimeout   time.Duration
	queueSize       int
	scrollThreshold int
	scrollStep      int
	mouseEnabled    bool
	kittyKeyboard   bool
}

// NewApp creates an application around root. Without WithTerminal and
// WithReader the app drives the process's stdin and stdout.
func NewApp(root *Container, opts ...AppOption) (*App, error) {
	if root == nil {
		return nil, errors.New("jterm: nil root")
	}
	a := &App{
		root:            root,
		decoder:         NewDecoder(),
		screen:          NewScreen(0, 0),
		handlers:        make(handlerTable),
		overrunLog:      rate.Sometimes{Interval: time.Second},
		frameDuration:   time.Second / 60,
		pollTimeout:     50 * time.Millisecond,
		escapeTimeout:   25 * time.Millisecond,
		queueSize:       256,
		scrollThreshold: DefaultScrollThreshold,
		scrollStep:      DefaultScrollStep,
		mouseEnabled:    true,
		kittyKeyboard:   true,
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.terminal == nil {
		t, err := NewANSITerminal(os.Stdout, os.Stdin)
		if err != nil {
			return nil, err
		}
		a.terminal = t
	}
	if a.reader == nil {
		r, err := NewStdinReader(os.Stdin)
		if err != nil {
			return nil, err
		}
		a.reader = r
	}

	a.keyQ = make(chan KeyEvent, a.queueSize)
	a.mouseQ = make(chan MouseEvent, a.queueSize)
	attach(a.root, a)
	return a, nil
}

// Root returns the root container.
func (a *App) Root() *Container { return a.root }

// Mount adds child to parent and assigns the app reference to the new
// subtree.
func (a *App) Mount(parent *Container, child Widget) {
	if parent.app != a {
		attach(parent, a)
	}
	parent.Add(child)
}

// Post delivers msg to the handler registered for its concrete type and
// marks the app dirty. A message without a handler is logged and dropped.
func (a *App) Post(msg Message) {
	t := reflect.TypeOf(msg)
	metricMessagesPosted.WithLabelValues(t.String()).Inc()
	if h, ok := a.handlers[t]; ok {
		h(msg)
	} else {
		metricMessagesUnhandled.Inc()
		debug.Log("no handler registered for %s", t)
	}
	a.MarkDirty()
}

// QueryOne finds a widget by selector. Only "#id" selectors are supported.
func (a *App) QueryOne(selector string) Widget {
	id, ok := strings.CutPrefix(selector, "#")
	if !ok || id == "" {
		return nil
	}
	return findByID(a.root, id)
}

func findByID(w Widget, id string) Widget {
	n := w.node()
	if n.id == id {
		return w
	}
	for _, c := range n.children {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// QueryInput is QueryOne narrowed to an *Input.
func (a *App) QueryInput(selector string) (*Input, error) {
	w := a.QueryOne(selector)
	in, ok := w.(*Input)
	if !ok {
		return nil, fmt.Errorf("no input matches %q", selector)
	}
	return in, nil
}

// QueryContainer is QueryOne narrowed to a *Container.
func (a *App) QueryContainer(selector string) (*Container, error) {
	w := a.QueryOne(selector)
	c, ok := w.(*Container)
	if !ok {
		return nil, fmt.Errorf("no container matches %q", selector)
	}
	return c, nil
}
