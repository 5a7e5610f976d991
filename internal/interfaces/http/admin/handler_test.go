package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminapp "github.com/sngm3741/contact-site/internal/admin/application"
	"github.com/sngm3741/contact-site/internal/interfaces/http/common"
	"github.com/sngm3741/contact-site/internal/public/domain"
)

type fakeMessages struct {
	paging adminapp.Paging
	list   []domain.ContactMessage
	err    error
}

func (f *fakeMessages) List(_ context.Context, paging adminapp.Paging) ([]domain.ContactMessage, error) {
	f.paging = paging
	return f.list, f.err
}

func (f *fakeMessages) Detail(_ context.Context, id string) (*domain.ContactMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, msg := range f.list {
		if msg.ID == id {
			return &msg, nil
		}
	}
	return nil, adminapp.ErrNotFound
}

func newRouter(svc adminapp.MessageService) http.Handler {
	r := chi.NewRouter()
	NewHandler(Config{Logger: zerolog.Nop(), Messages: svc}).Register(r)
	return r
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

var sample = domain.ContactMessage{
	ID:        "m1",
	Name:      "Alice",
	Email:     "a@x.com",
	Message:   "hi",
	CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
}

func TestMessageListHandler(t *testing.T) {
	svc := &fakeMessages{list: []domain.ContactMessage{sample}}
	rec := serve(newRouter(svc), httptest.NewRequest(http.MethodGet, "/messages?page=2&limit=500", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, adminapp.Paging{Page: 2, Limit: adminapp.MaxPageLimit}, svc.paging)

	var body messageListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "m1", body.Items[0].ID)
	assert.Equal(t, "2025-03-01T09:00:00Z", body.Items[0].Timestamp)
	assert.Equal(t, 2, body.Page)
}

func TestMessageListHandlerDefaultsAndErrors(t *testing.T) {
	svc := &fakeMessages{}
	rec := serve(newRouter(svc), httptest.NewRequest(http.MethodGet, "/messages?page=abc", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, adminapp.Paging{Page: 1, Limit: adminapp.DefaultPageLimit}, svc.paging)
	assert.JSONEq(t, `{"items":[],"page":1,"limit":20}`, rec.Body.String())

	rec = serve(newRouter(&fakeMessages{err: errors.New("down")}), httptest.NewRequest(http.MethodGet, "/messages", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMessageDetailHandler(t *testing.T) {
	router := newRouter(&fakeMessages{list: []domain.ContactMessage{sample}})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/messages/m1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"a@x.com"`)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/messages/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(newRouter(&fakeMessages{err: errors.New("down")}), httptest.NewRequest(http.MethodGet, "/messages/m1", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuthVerifyHandler(t *testing.T) {
	router := newRouter(&fakeMessages{})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/auth/verify", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
	req = req.WithContext(common.ContextWithUser(req.Context(), common.AuthenticatedUser{ID: "u1", Name: "Owner"}))
	rec = serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","user":{"id":"u1","name":"Owner"}}`, rec.Body.String())
}
