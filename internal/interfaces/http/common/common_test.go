package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(zerolog.Nop(), rec, http.StatusCreated, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"1"}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(zerolog.Nop(), rec, http.StatusBadRequest, "bad")
	assert.JSONEq(t, `{"error":"bad"}`, rec.Body.String())
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"", 7, false},
		{" 3 ", 3, true},
		{"0", 7, false},
		{"-2", 7, false},
		{"abc", 7, false},
	}
	for _, tt := range tests {
		got, ok := ParsePositiveInt(tt.in, 7)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestUserContextRoundTrip(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	ctx := ContextWithUser(context.Background(), AuthenticatedUser{ID: "u1", Role: "admin"})
	user, ok := UserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", user.ID)
}
