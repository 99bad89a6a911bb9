package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/daastan/internal/testutil/stubapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func mustBuild(t *testing.T, method, path string, requiresAuth bool) *Request {
	t.Helper()
	req, err := NewBuilder(staticToken("A1")).Build(context.Background(), method, path, nil, requiresAuth)
	require.NoError(t, err)
	return req
}

func TestClient_Success(t *testing.T) {
	s := stubapi.New(t)
	s.Handle(http.MethodGet, "/books", stubapi.JSON(http.StatusOK, []map[string]string{{"id": "b1"}}))

	resp, err := NewClient(s.URL).Execute(context.Background(), mustBuild(t, http.MethodGet, "/books", false))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)

	var books []struct{ ID string }
	require.NoError(t, resp.Decode(&books))
	require.Len(t, books, 1)
	assert.Equal(t, "b1", books[0].ID)
}

func TestClient_EmptyBodyIsNil(t *testing.T) {
	s := stubapi.New(t)
	s.Handle(http.MethodDelete, "/cart", stubapi.JSON(http.StatusNoContent, nil))

	resp, err := NewClient(s.URL).Execute(context.Background(), mustBuild(t, http.MethodDelete, "/cart", true))
	require.NoError(t, err)
	assert.Nil(t, resp.Body)

	var v map[string]any
	require.NoError(t, resp.Decode(&v))
	assert.Nil(t, v)
}

func TestClient_HTTPErrorMessage(t *testing.T) {
	tests := []struct {
		name  string
		reply stubapi.Reply
		want  string
	}{
		{name: "error field", reply: stubapi.Reply{Status: 400, Body: map[string]string{"error": "Out of stock", "message": "m"}}, want: "Out of stock"},
		{name: "message field", reply: stubapi.Reply{Status: 409, Body: map[string]string{"message": "Username taken"}}, want: "Username taken"},
		{name: "neither", reply: stubapi.Reply{Status: 500, Body: map[string]int{"code": 7}}, want: DefaultErrorMessage},
		{name: "non-string error", reply: stubapi.Reply{Status: 422, Body: map[string]any{"error": []string{"a"}}}, want: DefaultErrorMessage},
		{name: "empty body", reply: stubapi.Reply{Status: 503}, want: DefaultErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stubapi.New(t)
			reply := tt.reply
			s.Handle(http.MethodPost, "/orders", func(stubapi.Call) stubapi.Reply { return reply })

			_, err := NewClient(s.URL).Execute(context.Background(), mustBuild(t, http.MethodPost, "/orders", true))
			var he *HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.reply.Status, he.Status)
			assert.Equal(t, tt.want, he.Message)
			assert.NotErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestClient_401Classification(t *testing.T) {
	s := stubapi.New(t)
	s.Handle(http.MethodGet, "/auth/me", stubapi.Error(http.StatusUnauthorized, "Token has expired"))
	s.Handle(http.MethodPost, "/auth/login", stubapi.Error(http.StatusUnauthorized, "Invalid credentials"))
	c := NewClient(s.URL)

	_, err := c.Execute(context.Background(), mustBuild(t, http.MethodGet, "/auth/me", true))
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Execute(context.Background(), mustBuild(t, http.MethodPost, "/auth/login", false))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "Invalid credentials", he.Message)
}

func TestClient_MalformedBodyIsTransportError(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest} {
		s := stubapi.New(t)
		s.Handle(http.MethodGet, "/books", func(stubapi.Call) stubapi.Reply {
			return stubapi.Reply{Status: status, Raw: "<html>oops</html>"}
		})

		_, err := NewClient(s.URL).Execute(context.Background(), mustBuild(t, http.MethodGet, "/books", false))
		var te *TransportError
		require.ErrorAs(t, err, &te, "status %d", status)
		assert.ErrorIs(t, err, ErrMalformedBody)
	}
}

func TestClient_NetworkFailureIsTransportError(t *testing.T) {
	s := stubapi.New(t)
	url := s.URL
	s.Close()

	_, err := NewClient(url).Execute(context.Background(), mustBuild(t, http.MethodGet, "/books", false))
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.NotErrorIs(t, err, ErrMalformedBody)
}

func TestClient_CancelledContext(t *testing.T) {
	s := stubapi.New(t)
	s.Handle(http.MethodGet, "/books", stubapi.JSON(http.StatusOK, []int{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(s.URL).Execute(ctx, mustBuild(t, http.MethodGet, "/books", false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_SendsHeadersAndBody(t *testing.T) {
	s := stubapi.New(t)
	s.Handle(http.MethodPost, "/cart", stubapi.JSON(http.StatusCreated, map[string]string{"message": "added"}))

	req, err := NewBuilder(staticToken("A1")).Build(context.Background(), http.MethodPost, "/cart", map[string]any{"book_id": "b1", "quantity": 1}, true)
	require.NoError(t, err)
	_, err = NewClient(s.URL).Execute(context.Background(), req)
	require.NoError(t, err)

	call, ok := s.Last(http.MethodPost, "/cart")
	require.True(t, ok)
	assert.Equal(t, "A1", call.Bearer())
	assert.Equal(t, "application/json", call.Header.Get("Content-Type"))
	assert.Equal(t, req.ID, call.Header.Get("X-Request-ID"))
	assert.JSONEq(t, `{"book_id":"b1","quantity":1}`, string(call.Body))
}

func TestClient_RecordsSpan(t *testing.T) {
	s := stubapi.New(t)
	s.Handle(http.MethodGet, "/authors", stubapi.JSON(http.StatusOK, []int{}))
	s.Handle(http.MethodGet, "/admin/orders", stubapi.Error(http.StatusForbidden, "Admin only"))

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	c := NewClient(s.URL, WithTracer(tp.Tracer("test")))

	_, err := c.Execute(context.Background(), mustBuild(t, http.MethodGet, "/authors", false))
	require.NoError(t, err)
	_, err = c.Execute(context.Background(), mustBuild(t, http.MethodGet, "/admin/orders", true))
	require.Error(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "GET /authors", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.response.status_code", http.StatusOK))
	assert.Equal(t, "GET /admin/orders", spans[1].Name())
	assert.Equal(t, "Error", spans[1].Status().Code.String())
}
