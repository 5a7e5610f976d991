package public

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/sngm3741/contact-site/internal/interfaces/http/common"
	"github.com/sngm3741/contact-site/internal/metrics"
	publicapp "github.com/sngm3741/contact-site/internal/public/application"
)

type submitRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (r *submitRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)
}

type submitResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	ID        string `json:"id"`
}

func (h *Handler) submitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, common.MaxContactRequestBody)
		defer r.Body.Close()

		var req submitRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			metrics.RecordSubmission(metrics.ResultInvalid)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				common.WriteError(h.logger, w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			metrics.RecordSubmission(metrics.ResultInvalid)
			common.WriteError(h.logger, w, http.StatusBadRequest, "request body must contain a single JSON object")
			return
		}

		req.normalize()
		if err := validate.Struct(req); err != nil {
			metrics.RecordSubmission(metrics.ResultInvalid)
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]any{
				"error":  "validation failed",
				"fields": validationMessages(err),
			})
			return
		}

		msg, err := h.contacts.Submit(r.Context(), publicapp.SubmitContactCommand{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		})
		if err != nil {
			metrics.RecordSubmission(metrics.ResultFailed)
			h.logger.Error().Err(err).Msg("お問い合わせの保存に失敗")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to save message")
			return
		}
		metrics.RecordSubmission(metrics.ResultSaved)
		h.logger.Info().Str("message_id", msg.ID).Msg("contact message saved")

		if h.notifications != nil {
			if err := h.notifications.Notify(context.WithoutCancel(r.Context()), *msg); err != nil {
				h.logger.Warn().Err(err).Str("message_id", msg.ID).Msg("notification mail incomplete")
			}
		}
		h.notifyChat(*msg)

		common.WriteJSON(h.logger, w, http.StatusOK, submitResponse{
			Message:   "Success",
			Timestamp: msg.Timestamp(),
			ID:        msg.ID,
		})
	}
}
