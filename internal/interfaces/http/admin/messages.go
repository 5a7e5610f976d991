package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sngm3741/contact-site/internal/admin/application"
	"github.com/sngm3741/contact-site/internal/interfaces/http/common"
)

func (h *Handler) messageListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), adminapp.DefaultPageLimit)
		paging := adminapp.Paging{Page: page, Limit: limit}.Normalize()

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		messages, err := h.messages.List(ctx, paging)
		if err != nil {
			h.logger.Error().Err(err).Msg("admin message list fetch failed")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "お問い合わせ一覧の取得に失敗しました")
			return
		}

		items := make([]messageResponse, 0, len(messages))
		for _, msg := range messages {
			items = append(items, messageToResponse(msg))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, messageListResponse{Items: items, Page: paging.Page, Limit: paging.Limit})
	}
}

func (h *Handler) messageDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "お問い合わせIDが指定されていません")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		msg, err := h.messages.Detail(ctx, idParam)
		if err != nil {
			if errors.Is(err, adminapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "お問い合わせが見つかりません")
				return
			}
			h.logger.Error().Err(err).Str("id", idParam).Msg("admin message detail fetch failed")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "お問い合わせの取得に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, messageToResponse(*msg))
	}
}

func (h *Handler) authVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusInternalServerError, "認証情報の取得に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"status": "ok",
			"user":   user,
		})
	}
}
