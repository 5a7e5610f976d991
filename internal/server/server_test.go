package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminapp "github.com/sngm3741/contact-site/internal/admin/application"
	"github.com/sngm3741/contact-site/internal/config"
	"github.com/sngm3741/contact-site/internal/infrastructure/email"
	sitehttp "github.com/sngm3741/contact-site/internal/interfaces/http/site"
	"github.com/sngm3741/contact-site/internal/public/domain"
)

var testSecret = []byte("test-secret")

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type memoryStore struct {
	mu   sync.Mutex
	msgs []domain.ContactMessage
}

func (m *memoryStore) Create(_ context.Context, msg *domain.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, *msg)
	return nil
}

func (m *memoryStore) Find(_ context.Context, _ adminapp.Paging) ([]domain.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ContactMessage(nil), m.msgs...), nil
}

func (m *memoryStore) FindByID(_ context.Context, id string) (*domain.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.msgs {
		if msg.ID == id {
			return &msg, nil
		}
	}
	return nil, adminapp.ErrNotFound
}

func testConfig() config.Config {
	return config.Config{
		Addr:            ":0",
		OwnerEmail:      "owner@example.com",
		JWTConfigs:      []config.JWTConfig{{Issuer: "contact-site-auth", Secret: testSecret}},
		JWTAudience:     "contact-admin",
		AllowedOrigins:  []string{"https://site.example"},
		PublicSubmitURL: "/submit",
	}
}

func newTestServer(t *testing.T, pinger Pinger) (*Server, *memoryStore, *email.LogSender) {
	t.Helper()
	store := &memoryStore{}
	mailer := email.NewLogSender(zerolog.Nop())
	content, err := sitehttp.LoadContent("")
	require.NoError(t, err)
	srv := New(testConfig(), Deps{
		Pinger:        pinger,
		Messages:      store,
		AdminMessages: store,
		Mailer:        mailer,
		Content:       content,
	}, zerolog.Nop())
	return srv, store, mailer
}

func signToken(t *testing.T, secret []byte, issuer, audience, subject string, expires time.Time) string {
	t.Helper()
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Name: "Owner",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthHandler(t *testing.T) {
	srv, _, _ := newTestServer(t, fakePinger{})
	rec := do(srv.Handler(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	srv, _, _ = newTestServer(t, fakePinger{err: errors.New("no route")})
	rec = do(srv.Handler(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}

func TestSubmitStoresAndSendsTwoMails(t *testing.T) {
	srv, store, mailer := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(`{"name":"Alice","email":"a@x.com","message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := do(srv.Handler(), req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Success"`)

	require.Len(t, store.msgs, 1)
	sent := mailer.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "a@x.com", sent[0].To)
	assert.Equal(t, "Thank you for contacting us", sent[0].Subject)
	assert.Equal(t, "owner@example.com", sent[1].To)
	assert.Equal(t, "New contact from Alice", sent[1].Subject)
}

func TestChatNotificationCarriesAdminLink(t *testing.T) {
	texts := make(chan string, 1)
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Text string `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		texts <- payload.Text
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	cfg := testConfig()
	cfg.MessengerEndpoint = gateway.URL + "/"
	cfg.SlackDestination = "slack-room"
	cfg.AdminBaseURL = "https://admin.example/messages/"
	content, err := sitehttp.LoadContent("")
	require.NoError(t, err)
	store := &memoryStore{}
	srv := New(cfg, Deps{
		Messages:      store,
		AdminMessages: store,
		Mailer:        email.NewLogSender(zerolog.Nop()),
		Content:       content,
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(`{"name":"Alice","email":"a@x.com","message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	require.Equal(t, http.StatusOK, do(srv.Handler(), req).Code)

	select {
	case text := <-texts:
		require.Len(t, store.msgs, 1)
		assert.Contains(t, text, "https://admin.example/messages/"+store.msgs[0].ID)
	case <-time.After(5 * time.Second):
		t.Fatal("chat gateway was not called")
	}
}

func TestSubmitInvalidBody(t *testing.T) {
	srv, store, _ := newTestServer(t, nil)
	rec := do(srv.Handler(), httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.msgs)
}

func TestCORSPreflight(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)
	h := srv.Handler()

	req := httptest.NewRequest(http.MethodOptions, "/submit", nil)
	req.Header.Set("Origin", "https://site.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := do(h, req)
	assert.Equal(t, "https://site.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/submit", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = do(h, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAdminRequiresValidToken(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)
	h := srv.Handler()
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer  ", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, []byte("other"), "contact-site-auth", "contact-admin", "u1", future), http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + signToken(t, testSecret, "someone", "contact-admin", "u1", future), http.StatusUnauthorized},
		{"wrong audience", "Bearer " + signToken(t, testSecret, "contact-site-auth", "other", "u1", future), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, testSecret, "contact-site-auth", "contact-admin", "u1", time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"no subject", "Bearer " + signToken(t, testSecret, "contact-site-auth", "contact-admin", "", future), http.StatusUnauthorized},
		{"valid", "Bearer " + signToken(t, testSecret, "contact-site-auth", "contact-admin", "u1", future), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/auth/verify", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := do(h, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAdminListsSubmittedMessages(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)
	h := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(`{"name":"Alice","email":"a@x.com","message":"hi"}`))
	require.Equal(t, http.StatusOK, do(h, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "contact-site-auth", "contact-admin", "u1", time.Now().Add(time.Hour)))
	rec := do(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Alice"`)
}

func TestLandingPageAndMetrics(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)
	h := srv.Handler()

	rec := do(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="contact-form"`)

	rec = do(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)
	closed := make(chan struct{})
	srv.addr = "127.0.0.1:0"
	srv.closeStore = func(context.Context) error {
		close(closed)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	<-closed
}
