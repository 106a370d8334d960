package live

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/rxview/pkg/component"
	"github.com/vango-dev/rxview/pkg/host"
	"github.com/vango-dev/rxview/pkg/render"
	"github.com/vango-dev/rxview/pkg/stream"
	"github.com/vango-dev/rxview/pkg/vdom"
)

// ErrServerClosed is returned by Handler routes after Close.
var ErrServerClosed = errors.New("live: server closed")

// App builds the root node for one connection. sched posts onto that
// connection's loop.
type App func(sched stream.Scheduler) *vdom.VNode

// Config configures a Server.
type Config struct {
	// Title is the page title.
	Title string

	// Styles are inline CSS blocks added to the page.
	Styles []string

	// ReadBufferSize and WriteBufferSize size the websocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the websocket Origin header.
	// Default: same-origin check from gorilla/websocket.
	CheckOrigin func(r *http.Request) bool

	// WriteTimeout bounds each websocket write. Default: 10s.
	WriteTimeout time.Duration

	// Gatherer, when set, is served at /metrics.
	Gatherer prometheus.Gatherer

	// ComponentOptions are passed to every component mount.
	ComponentOptions []component.Option

	Logger *slog.Logger
}

// Option configures a Server.
type Option func(*Config)

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithStyles adds inline CSS to the page.
func WithStyles(styles ...string) Option {
	return func(c *Config) {
		c.Styles = append(c.Styles, styles...)
	}
}

// WithCheckOrigin sets the websocket origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(c *Config) {
		c.CheckOrigin = fn
	}
}

// WithWriteTimeout bounds each websocket write.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.WriteTimeout = d
		}
	}
}

// WithMetrics serves g at /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(c *Config) {
		c.Gatherer = g
	}
}

// WithComponentOptions sets the options components are mounted with.
func WithComponentOptions(opts ...component.Option) Option {
	return func(c *Config) {
		c.ComponentOptions = append(c.ComponentOptions, opts...)
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// Server serves an App.
type Server struct {
	app      App
	config   Config
	upgrader websocket.Upgrader
	renderer *render.Renderer
	logger   *slog.Logger

	mu     sync.Mutex
	conns  map[*conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

// New creates a Server for app.
func New(app App, opts ...Option) *Server {
	config := Config{
		Title:           "rxview",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		WriteTimeout:    10 * time.Second,
	}
	for _, opt := range opts {
		opt(&config)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		app:    app,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		renderer: render.New(render.Config{}),
		logger:   logger.With("component", "live"),
		conns:    make(map[*conn]struct{}),
	}
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.config.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Connections returns the number of open websocket connections.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Close disconnects every client and waits for their trees to close.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	conns := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.ws.Close()
	}
	s.wg.Wait()
	return nil
}

// handlePage renders the app once on a throwaway tree so the first paint
// does not wait for the websocket.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	loop := host.NewLoop(host.WithLoopLogger(s.logger))
	tree := host.New(host.WithLogger(s.logger), host.WithComponentOptions(s.config.ComponentOptions...))

	err := tree.Render(s.app(loop))
	var buf bytes.Buffer
	if err == nil {
		err = s.renderer.RenderPage(&buf, render.Page{
			Title:  s.config.Title,
			Styles: s.config.Styles,
			Body:   tree.Snapshot(),
			Script: clientScript,
		})
	}
	if cerr := tree.Close(); cerr != nil {
		s.logger.Warn("page tree teardown failed", "error", cerr)
	}

	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		http.Error(w, ErrServerClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := s.newConn(ws)
	if c == nil {
		_ = ws.Close()
		return
	}
	defer s.removeConn(c)
	c.serve()
}

func (s *Server) newConn(ws *websocket.Conn) *conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	c := &conn{server: s, ws: ws}
	c.logger = s.logger.With("remote", ws.RemoteAddr().String())
	s.conns[c] = struct{}{}
	s.wg.Add(1)
	return c
}

func (s *Server) removeConn(c *conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	s.wg.Done()
}

// conn is one websocket client. Only the loop goroutine writes to ws.
type conn struct {
	server *Server
	ws     *websocket.Conn
	logger *slog.Logger
	loop   *host.Loop
	tree   *host.Tree
}

func (c *conn) serve() {
	s := c.server
	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan struct{})

	c.loop = host.NewLoop(
		host.WithLoopLogger(c.logger),
		host.WithErrorHandler(c.reportError),
	)
	c.tree = host.New(
		host.WithLogger(c.logger),
		host.WithComponentOptions(s.config.ComponentOptions...),
		host.OnCommit(c.push),
	)

	go func() {
		defer close(loopDone)
		_ = c.loop.Run(ctx)
	}()
	defer func() {
		cancel()
		<-loopDone
		_ = c.ws.Close()
	}()

	c.logger.Debug("client connected")
	if err := c.loop.Do(ctx, func() error {
		return c.tree.Render(s.app(c.loop))
	}); err != nil && ctx.Err() == nil {
		// Failed tasks are reported on the loop goroutine.
		c.loop.Post(func() error { return err })
	}

	c.readLoop()

	if err := c.loop.Do(ctx, c.tree.Close); err != nil {
		c.logger.Warn("tree teardown failed", "error", err)
	}
	c.logger.Debug("client disconnected")
}

func (c *conn) readLoop() {
	for {
		var ev ClientEvent
		if err := c.ws.ReadJSON(&ev); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				c.logger.Debug("read failed", "error", err)
			}
			return
		}
		c.loop.Post(func() error {
			return c.tree.Dispatch(ev.HID, ev.Event, ev.Value)
		})
	}
}

// push runs on the loop goroutine after every commit.
func (c *conn) push(snapshot *vdom.VNode) {
	html, err := c.server.renderer.RenderToString(snapshot)
	if err != nil {
		c.reportError(err)
		return
	}
	c.write(ServerMessage{Type: TypeRender, HTML: html})
}

// reportError runs on the loop goroutine.
func (c *conn) reportError(err error) {
	var panicErr *host.PanicError
	if errors.As(err, &panicErr) {
		c.write(ServerMessage{Type: TypeError, Error: "internal error"})
		return
	}
	c.logger.Warn("event failed", "error", err)
	c.write(ServerMessage{Type: TypeError, Error: err.Error(), Code: component.Code(err)})
}

func (c *conn) write(msg ServerMessage) {
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.server.config.WriteTimeout))
	if err := c.ws.WriteJSON(msg); err != nil {
		c.logger.Debug("write failed", "error", err)
	}
}
