// Package stubapi is an in-process fake of the storefront REST API for
// tests. Routes are registered per method and path; every call is counted
// and recorded.
package stubapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// Call is a recorded request.
type Call struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Bearer returns the token of the Authorization header, or "".
func (c Call) Bearer() string {
	return strings.TrimPrefix(c.Header.Get("Authorization"), "Bearer ")
}

// Reply is what a Handler answers. Raw is written verbatim when set,
// otherwise Body is rendered as JSON. A nil Body with no Raw sends no
// content.
type Reply struct {
	Status int
	Body   any
	Raw    string
}

type Handler func(Call) Reply

// JSON returns a Handler that always answers status and body.
func JSON(status int, body any) Handler {
	return func(Call) Reply { return Reply{Status: status, Body: body} }
}

// Error returns a Handler answering {"error": msg}.
func Error(status int, msg string) Handler {
	return JSON(status, gin.H{"error": msg})
}

// Authorized wraps next so it only runs when the bearer token equals the
// value returned by token; otherwise it answers 401.
func Authorized(token func() string, next Handler) Handler {
	return func(c Call) Reply {
		if c.Bearer() == "" || c.Bearer() != token() {
			return Reply{Status: http.StatusUnauthorized, Body: gin.H{"error": "Token has expired"}}
		}
		return next(c)
	}
}

type Server struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]Handler
	calls  []Call
}

// New starts a stub server closed at test cleanup.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{routes: make(map[string]Handler)}
	engine := gin.New()
	engine.Any("/*path", s.dispatch)

	s.Server = httptest.NewServer(engine)
	t.Cleanup(s.Close)
	return s
}

func routeKey(method, path string) string { return method + " " + path }

// Handle registers h for method and path, replacing any earlier handler.
func (s *Server) Handle(method, path string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[routeKey(method, path)] = h
}

// Calls returns how many requests hit method and path.
func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// Total returns the number of requests received.
func (s *Server) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Recorded returns a copy of every request received, oldest first.
func (s *Server) Recorded() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Last returns the most recent request to method and path.
func (s *Server) Last(method, path string) (Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.calls) - 1; i >= 0; i-- {
		if s.calls[i].Method == method && s.calls[i].Path == path {
			return s.calls[i], true
		}
	}
	return Call{}, false
}

func (s *Server) dispatch(c *gin.Context) {
	body, _ := c.GetRawData()
	call := Call{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
		Header:   c.Request.Header.Clone(),
		Body:     body,
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	h, ok := s.routes[routeKey(call.Method, call.Path)]
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	reply := h(call)
	switch {
	case reply.Raw != "":
		c.Data(reply.Status, "application/json", []byte(reply.Raw))
	case reply.Body == nil:
		c.Status(reply.Status)
	default:
		c.JSON(reply.Status, reply.Body)
	}
}
