package public

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	publicapp "github.com/sngm3741/contact-site/internal/public/application"
	"github.com/sngm3741/contact-site/internal/public/domain"
)

type fakeContacts struct {
	got []publicapp.SubmitContactCommand
	err error
}

func (f *fakeContacts) Submit(_ context.Context, cmd publicapp.SubmitContactCommand) (*domain.ContactMessage, error) {
	f.got = append(f.got, cmd)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ContactMessage{
		ID:        "msg-1",
		Name:      cmd.Name,
		Email:     cmd.Email,
		Message:   cmd.Message,
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}, nil
}

type fakeNotifications struct {
	got []domain.ContactMessage
	err error
}

func (f *fakeNotifications) Notify(_ context.Context, msg domain.ContactMessage) error {
	f.got = append(f.got, msg)
	return f.err
}

type fakeFailures struct {
	mu  sync.Mutex
	got []domain.FailedNotification
}

func (f *fakeFailures) Record(_ context.Context, failure domain.FailedNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, failure)
	return nil
}

func newTestRouter(h *Handler) http.Handler {
	h.async = func(f func()) { f() }
	h.retryDelay = 0
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func postSubmit(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitHandlerSavesAndNotifies(t *testing.T) {
	contacts := &fakeContacts{}
	notifications := &fakeNotifications{}
	router := newTestRouter(NewHandler(Config{
		Logger:        zerolog.Nop(),
		Contacts:      contacts,
		Notifications: notifications,
	}))

	rec := postSubmit(t, router, `{"name":" Alice ","email":"a@x.com","message":"hi"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Success","timestamp":"2025-03-01T09:00:00Z","id":"msg-1"}`, rec.Body.String())
	require.Len(t, contacts.got, 1)
	assert.Equal(t, "Alice", contacts.got[0].Name)
	require.Len(t, notifications.got, 1)
	assert.Equal(t, "msg-1", notifications.got[0].ID)
}

func TestSubmitHandlerNotificationFailureStillSucceeds(t *testing.T) {
	router := newTestRouter(NewHandler(Config{
		Logger:        zerolog.Nop(),
		Contacts:      &fakeContacts{},
		Notifications: &fakeNotifications{err: errors.New("ses down")},
	}))

	rec := postSubmit(t, router, `{"name":"Alice","email":"a@x.com","message":"hi"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitHandlerRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"name":`, http.StatusBadRequest},
		{"unknown field", `{"name":"A","email":"a@x.com","message":"hi","extra":1}`, http.StatusBadRequest},
		{"trailing object", `{"name":"A","email":"a@x.com","message":"hi"}{}`, http.StatusBadRequest},
		{"missing name", `{"email":"a@x.com","message":"hi"}`, http.StatusBadRequest},
		{"blank message", `{"name":"A","email":"a@x.com","message":"   "}`, http.StatusBadRequest},
		{"bad email", `{"name":"A","email":"nope","message":"hi"}`, http.StatusBadRequest},
		{"too large", `{"name":"A","email":"a@x.com","message":"` + strings.Repeat("x", 70<<10) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts := &fakeContacts{}
			router := newTestRouter(NewHandler(Config{Logger: zerolog.Nop(), Contacts: contacts}))

			rec := postSubmit(t, router, tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
			assert.Empty(t, contacts.got)
		})
	}
}

func TestSubmitHandlerValidationFields(t *testing.T) {
	router := newTestRouter(NewHandler(Config{Logger: zerolog.Nop(), Contacts: &fakeContacts{}}))

	rec := postSubmit(t, router, `{"name":"","email":"nope","message":"hi"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "name is required", body.Fields["name"])
	assert.Equal(t, "email must be a valid email address", body.Fields["email"])
}

func TestSubmitHandlerStoreFailure(t *testing.T) {
	notifications := &fakeNotifications{}
	router := newTestRouter(NewHandler(Config{
		Logger:        zerolog.Nop(),
		Contacts:      &fakeContacts{err: errors.New("mongo down")},
		Notifications: notifications,
	}))

	rec := postSubmit(t, router, `{"name":"Alice","email":"a@x.com","message":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, notifications.got)
}

type gatewayCall struct {
	Destination string `json:"destination"`
	UserID      string `json:"userId"`
	Text        string `json:"text"`
}

func newGateway(t *testing.T, status func(dest string) int) (*httptest.Server, *[]gatewayCall) {
	t.Helper()
	var mu sync.Mutex
	calls := []gatewayCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		var call gatewayCall
		_ = json.Unmarshal(raw, &call)
		mu.Lock()
		calls = append(calls, call)
		mu.Unlock()
		w.WriteHeader(status(call.Destination))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestChatNotificationDiscordSuccess(t *testing.T) {
	gw, calls := newGateway(t, func(string) int { return http.StatusOK })
	failures := &fakeFailures{}
	router := newTestRouter(NewHandler(Config{
		Logger:             zerolog.Nop(),
		Contacts:           &fakeContacts{},
		Failures:           failures,
		MessengerEndpoint:  gw.URL,
		DiscordDestination: "discord",
		SlackDestination:   "slack",
		AdminBaseURL:       "https://admin.example/messages",
	}))

	rec := postSubmit(t, router, `{"name":"Alice","email":"a@x.com","message":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "discord", call.Destination)
	assert.Equal(t, "msg-1", call.UserID)
	assert.Contains(t, call.Text, "Alice")
	assert.Contains(t, call.Text, "https://admin.example/messages/msg-1")
	assert.Empty(t, failures.got)
}

func TestChatNotificationFallsBackToSlackThenRecordsFailure(t *testing.T) {
	gw, calls := newGateway(t, func(string) int { return http.StatusBadGateway })
	failures := &fakeFailures{}
	router := newTestRouter(NewHandler(Config{
		Logger:             zerolog.Nop(),
		Contacts:           &fakeContacts{},
		Failures:           failures,
		MessengerEndpoint:  gw.URL,
		DiscordDestination: "discord",
		SlackDestination:   "slack",
	}))

	rec := postSubmit(t, router, `{"name":"Alice","email":"a@x.com","message":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, *calls, 4)
	assert.Equal(t, "slack", (*calls)[3].Destination)
	require.Len(t, failures.got, 1)
	assert.Equal(t, domain.NotificationChat, failures.got[0].Target)
	assert.Equal(t, "msg-1", failures.got[0].MessageID)
	assert.Equal(t, 4, failures.got[0].Attempts)
	assert.Contains(t, failures.got[0].Error, "status=502")
}

func TestChatNotificationDisabledWithoutDestinations(t *testing.T) {
	h := NewHandler(Config{Logger: zerolog.Nop(), MessengerEndpoint: "http://gw"})
	assert.False(t, h.chatEnabled())
}
