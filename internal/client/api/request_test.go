package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) AccessToken(context.Context) string { return string(s) }

func TestBuilder_AttachesTokenOnlyWhenRequiredAndPresent(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name         string
		token        staticToken
		requiresAuth bool
		want         string
	}{
		{name: "auth with token", token: "A1", requiresAuth: true, want: "Bearer A1"},
		{name: "auth without token", token: "", requiresAuth: true, want: ""},
		{name: "public with token", token: "A1", requiresAuth: false, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewBuilder(tt.token).Build(ctx, http.MethodGet, "/cart", nil, tt.requiresAuth)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Header.Get("Authorization"))
			_, present := req.Header["Authorization"]
			assert.Equal(t, tt.want != "", present)
		})
	}
}

func TestBuilder_JSONHeadersAndRequestID(t *testing.T) {
	b := NewBuilder(nil)
	r1, err := b.Build(context.Background(), http.MethodGet, "/books", nil, false)
	require.NoError(t, err)
	r2, err := b.Build(context.Background(), http.MethodGet, "/books", nil, false)
	require.NoError(t, err)

	assert.Equal(t, "application/json", r1.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", r1.Header.Get("Accept"))
	assert.NotEmpty(t, r1.ID)
	assert.Equal(t, r1.ID, r1.Header.Get("X-Request-ID"))
	assert.NotEqual(t, r1.ID, r2.ID)
}

func TestBuilder_Body(t *testing.T) {
	b := NewBuilder(nil)
	ctx := context.Background()
	payload := map[string]any{"book_id": "b1", "quantity": 2}

	post, err := b.Build(ctx, http.MethodPost, "/cart", payload, true)
	require.NoError(t, err)
	assert.JSONEq(t, `{"book_id":"b1","quantity":2}`, string(post.Body))

	for _, m := range []string{http.MethodGet, http.MethodDelete} {
		req, err := b.Build(ctx, m, "/cart", payload, true)
		require.NoError(t, err)
		assert.Nil(t, req.Body, m)
	}

	none, err := b.Build(ctx, http.MethodPost, "/auth/refresh", nil, false)
	require.NoError(t, err)
	assert.Nil(t, none.Body)
}

func TestBuilder_UnencodableBody(t *testing.T) {
	_, err := NewBuilder(nil).Build(context.Background(), http.MethodPost, "/cart", map[string]any{"c": make(chan int)}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POST /cart")
}

func TestRequest_URL(t *testing.T) {
	req, err := NewBuilder(nil).Build(context.Background(), http.MethodGet, "/books", nil, false,
		WithQuery(url.Values{"category_id": {"c1"}}))
	require.NoError(t, err)
	assert.Equal(t, "http://h/api/v1/books?category_id=c1", req.URL("http://h/api/v1/"))

	plain := &Request{Path: "/authors"}
	assert.Equal(t, "http://h/authors", plain.URL("http://h"))
}

func TestRequest_WithBearerLeavesSourceUntouched(t *testing.T) {
	orig, err := NewBuilder(staticToken("OLD")).Build(context.Background(), http.MethodPut, "/cart/items/1", map[string]int{"quantity": 3}, true)
	require.NoError(t, err)

	retry := orig.withBearer("NEW")

	assert.Equal(t, "OLD", orig.Bearer())
	assert.Equal(t, "NEW", retry.Bearer())
	assert.Equal(t, orig.ID, retry.ID)
	assert.Equal(t, orig.Body, retry.Body)
	retry.Body[0] = 'x'
	assert.NotEqual(t, orig.Body[0], retry.Body[0])
}
