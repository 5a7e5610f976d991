package public

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sngm3741/contact-site/internal/metrics"
	"github.com/sngm3741/contact-site/internal/public/domain"
)

func (h *Handler) chatEnabled() bool {
	return h.messengerEndpoint != "" && (h.discordDestination != "" || h.slackDestination != "")
}

// notifyChat posts the new message to the admin channels off the request path.
func (h *Handler) notifyChat(msg domain.ContactMessage) {
	if !h.chatEnabled() {
		return
	}
	h.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.notifyTimeout)
		defer cancel()
		h.notifyAdminChannels(ctx, msg)
	})
}

func buildDiscordContactMessage(adminBaseURL string, msg domain.ContactMessage) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("**%s** から新しいお問い合わせがあります。\n", msg.Name))
	builder.WriteString(fmt.Sprintf("- メール: %s\n", msg.Email))
	builder.WriteString(fmt.Sprintf("- 受付: %s\n", msg.Timestamp()))
	builder.WriteString(fmt.Sprintf("- 内容: %s\n", msg.Message))
	if msg.ID != "" && adminBaseURL != "" {
		builder.WriteString(fmt.Sprintf("[管理画面で確認](%s/%s)\n", strings.TrimRight(adminBaseURL, "/"), msg.ID))
	}
	return builder.String()
}

func buildSlackContactMessage(adminBaseURL string, msg domain.ContactMessage) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(":envelope: %s さんから新しいお問い合わせがあります。\n", msg.Name))
	builder.WriteString(fmt.Sprintf("メール: %s\n", msg.Email))
	if strings.TrimSpace(msg.Message) != "" {
		builder.WriteString(fmt.Sprintf("内容: %s\n", msg.Message))
	}
	if msg.ID != "" && adminBaseURL != "" {
		builder.WriteString(fmt.Sprintf("管理画面: %s/%s\n", strings.TrimRight(adminBaseURL, "/"), msg.ID))
	}
	return builder.String()
}

// notifyAdminChannels tries Discord first and falls back to Slack. When both fail
// the attempt is recorded as a failed notification.
func (h *Handler) notifyAdminChannels(ctx context.Context, msg domain.ContactMessage) {
	identifier := msg.ID
	if identifier == "" {
		identifier = msg.Email
	}

	var discordErr, slackErr error
	attempts := 0

	if h.discordDestination != "" {
		discordErr = h.sendMessengerWithRetry(ctx, h.discordDestination, identifier, buildDiscordContactMessage(h.adminBaseURL, msg), 3, h.retryDelay)
		attempts += 3
		metrics.RecordChatNotification(h.discordDestination, discordErr)
		if discordErr == nil {
			return
		}
		h.logger.Error().Err(discordErr).Str("message_id", msg.ID).Msg("Discord通知の送信に失敗")
	}

	if h.slackDestination != "" {
		slackErr = h.sendMessengerWithRetry(ctx, h.slackDestination, identifier, buildSlackContactMessage(h.adminBaseURL, msg), 1, 0)
		attempts++
		metrics.RecordChatNotification(h.slackDestination, slackErr)
		if slackErr == nil {
			return
		}
		h.logger.Error().Err(slackErr).Str("message_id", msg.ID).Msg("Slack通知の送信に失敗")
	}

	h.persistNotificationFailure(ctx, msg, errors.Join(discordErr, slackErr), attempts)
}

func (h *Handler) sendMessengerWithRetry(ctx context.Context, destination, userID, text string, attempts int, delay time.Duration) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return errors.New("destination is empty")
	}
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		err := h.sendMessengerMessage(ctx, destination, userID, text)
		if err == nil {
			return nil
		}
		lastErr = err
		if delay > 0 && i < attempts-1 {
			select {
			case <-ctx.Done():
				return errors.Join(lastErr, ctx.Err())
			case <-time.After(delay):
			}
		}
	}
	return lastErr
}

func (h *Handler) persistNotificationFailure(ctx context.Context, msg domain.ContactMessage, err error, attempts int) {
	if h.failures == nil || err == nil {
		return
	}
	failure := domain.FailedNotification{
		Target:    domain.NotificationChat,
		MessageID: msg.ID,
		Error:     err.Error(),
		Attempts:  attempts,
		CreatedAt: time.Now().UTC(),
	}
	if recErr := h.failures.Record(ctx, failure); recErr != nil {
		h.logger.Error().Err(recErr).Str("message_id", msg.ID).Msg("failed_notifications への保存に失敗")
	}
}

func (h *Handler) sendMessengerMessage(ctx context.Context, destination, userID, bodyText string) error {
	trimmedUserID := strings.TrimSpace(userID)
	if trimmedUserID == "" {
		return errors.New("userID is required")
	}

	payload := map[string]any{
		"userId":      trimmedUserID,
		"text":        bodyText,
		"destination": destination,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信用ペイロードの作成に失敗: %w", err)
	}

	timeout := h.httpClient.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := strings.TrimRight(h.messengerEndpoint, "/") + "/messages"
	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("メッセンジャー送信でエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}
