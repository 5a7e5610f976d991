package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultClearAfter is how long a status message stays on screen.
const DefaultClearAfter = 4000 * time.Millisecond

// UnreachableText is shown when the request never completed.
const UnreachableText = "Could not reach server (check CORS/URL)."

// Field names read from the contact form.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// ErrUnreachable marks a request that failed before any response arrived
// (no connectivity, blocked cross-origin request, bad URL).
var ErrUnreachable = errors.New("server unreachable")

// Submission is the payload posted to the contact endpoint.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// RejectedError is a response with a non-2xx status.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("submission rejected: status=%d body=%s", e.StatusCode, e.Body)
}

// Outcome classifies a finished submission.
type Outcome int

const (
	OutcomeSaved Outcome = iota
	OutcomeRejected
	OutcomeUnreachable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeRejected:
		return "rejected"
	case OutcomeUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Result describes one submission attempt.
type Result struct {
	Outcome    Outcome
	Submission Submission
	StatusCode int
	Body       string
	// Text is what was written to the status node.
	Text string
	// Err is nil for OutcomeSaved, *RejectedError or a wrapped ErrUnreachable otherwise.
	Err error
}

// SubmitterConfig wires a Submitter to its collaborators.
type SubmitterConfig struct {
	Endpoint   string
	Client     Doer
	Form       Form
	Status     TextNode
	Clock      Clock
	ClearAfter time.Duration
	Logger     zerolog.Logger
}

// Submitter posts the contact form and reports the outcome in the status node.
//
// There is no in-flight guard: overlapping submissions each run to completion and
// arm their own clear timer. A timer only clears the message it was armed for, so an
// older timer never blanks a newer message.
type Submitter struct {
	endpoint   string
	client     Doer
	form       Form
	status     TextNode
	clock      Clock
	clearAfter time.Duration
	logger     zerolog.Logger

	mu      sync.Mutex
	display uint64
}

// NewSubmitter builds a Submitter. Client defaults to http.DefaultClient, Clock to the
// real clock and ClearAfter to DefaultClearAfter.
func NewSubmitter(cfg SubmitterConfig) *Submitter {
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	clock := cfg.Clock
	if clock == nil {
		clock = RealClock()
	}
	clearAfter := cfg.ClearAfter
	if clearAfter <= 0 {
		clearAfter = DefaultClearAfter
	}
	return &Submitter{
		endpoint:   strings.TrimSpace(cfg.Endpoint),
		client:     client,
		form:       cfg.Form,
		status:     cfg.Status,
		clock:      clock,
		clearAfter: clearAfter,
		logger:     cfg.Logger.With().Str("component", "form_submitter").Logger(),
	}
}

// HandleSubmit is the form's submit listener. The default navigation is always
// prevented before anything else happens.
func (s *Submitter) HandleSubmit(ctx context.Context, ev Event) Result {
	if ev != nil {
		ev.PreventDefault()
	}
	return s.Submit(ctx)
}

// HandleSubmitAsync prevents the default navigation synchronously and runs the
// submission on its own goroutine. Event callbacks under js/wasm must return
// before any network I/O can complete.
func (s *Submitter) HandleSubmitAsync(ctx context.Context, ev Event) <-chan Result {
	if ev != nil {
		ev.PreventDefault()
	}
	done := make(chan Result, 1)
	go func() {
		done <- s.Submit(ctx)
	}()
	return done
}

// Submit reads the form, posts it and updates the status node. Failures are
// reported through the status node and the returned Result, never as a panic or
// an error return.
func (s *Submitter) Submit(ctx context.Context) Result {
	sub := s.readForm()
	res := s.send(ctx, sub)

	switch res.Outcome {
	case OutcomeSaved:
		res.Text = fmt.Sprintf("Thanks, %s! We saved your message.", sub.Name)
		s.show(res.Text)
		s.form.Reset()
	case OutcomeRejected:
		res.Text = fmt.Sprintf("Error: %d - %s", res.StatusCode, res.Body)
		s.show(res.Text)
	default:
		res.Text = UnreachableText
		s.show(res.Text)
	}
	return res
}

func (s *Submitter) readForm() Submission {
	return Submission{
		Name:    s.form.Value(FieldName),
		Email:   s.form.Value(FieldEmail),
		Message: s.form.Value(FieldMessage),
	}
}

// encodeSubmission writes the fields as typed, without HTML escaping or a
// trailing newline.
func encodeSubmission(sub Submission) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(sub); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (s *Submitter) send(ctx context.Context, sub Submission) Result {
	res := Result{Submission: sub, Outcome: OutcomeUnreachable}

	body, err := encodeSubmission(sub)
	if err != nil {
		res.Err = fmt.Errorf("encode submission: %w", err)
		return res
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		res.Err = fmt.Errorf("%w: build request: %v", ErrUnreachable, err)
		s.logger.Error().Err(err).Str("endpoint", s.endpoint).Msg("network/CORS error")
		return res
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrUnreachable, err)
		s.logger.Error().Err(err).Str("endpoint", s.endpoint).Msg("network/CORS error")
		return res
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Err = fmt.Errorf("%w: read body: %v", ErrUnreachable, err)
		s.logger.Error().Err(err).Int("status", resp.StatusCode).Msg("network/CORS error")
		return res
	}

	res.StatusCode = resp.StatusCode
	res.Body = string(raw)
	s.logger.Info().Int("status", res.StatusCode).Str("body", res.Body).Msg("contact form response")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		res.Outcome = OutcomeSaved
		return res
	}
	res.Outcome = OutcomeRejected
	res.Err = &RejectedError{StatusCode: res.StatusCode, Body: res.Body}
	return res
}

// show writes text and arms the clear timer for this display.
func (s *Submitter) show(text string) {
	s.mu.Lock()
	s.display++
	seq := s.display
	s.status.SetText(text)
	s.mu.Unlock()

	s.clock.AfterFunc(s.clearAfter, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.display != seq {
			return
		}
		s.status.SetText("")
	})
}
