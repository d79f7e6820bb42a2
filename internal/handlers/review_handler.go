// internal/handlers/review_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go_5_flashcard_keep/internal/middleware"
	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/service"
	"go_5_flashcard_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		service: s,
		logger:  logger,
	}
}

// parseAsOf はクエリパラメータ as_of (YYYY-MM-DD) を解釈する。省略時は現在時刻。
func parseAsOf(r *http.Request) (time.Time, *model.AppError) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return time.Now(), nil
	}
	asOf, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, model.NewAppError("INVALID_QUERY_PARAM", "as_of は YYYY-MM-DD 形式で指定してください。", "as_of", model.ErrInvalidInput)
	}
	return asOf, nil
}

// GetReviewCards は復習期限が到来しているカードの一覧を取得するためのハンドラ
func (h *ReviewHandler) GetReviewCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetReviewCards"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	asOf, appErr := parseAsOf(r)
	if appErr != nil {
		logger.Warn("Invalid as_of query parameter", slog.String("as_of", r.URL.Query().Get("as_of")))
		webutil.HandleError(w, logger, appErr)
		return
	}

	reviews, err := h.service.GetReviewCards(r.Context(), tenantID, asOf)
	if err != nil {
		logger.Error("Error getting review cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if reviews == nil {
		reviews = []model.ReviewCardResponse{}
	}
	logger.Info("Review cards listed successfully", slog.Int("count", len(reviews)))
	webutil.RespondWithJSON(w, http.StatusOK, reviews, logger)
}

// GetReviewCardsCount は復習期限が到来しているカードの枚数を取得するためのハンドラ
func (h *ReviewHandler) GetReviewCardsCount(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetReviewCardsCount"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	asOf, appErr := parseAsOf(r)
	if appErr != nil {
		logger.Warn("Invalid as_of query parameter", slog.String("as_of", r.URL.Query().Get("as_of")))
		webutil.HandleError(w, logger, appErr)
		return
	}

	count, err := h.service.GetReviewCardsCount(r.Context(), tenantID, asOf)
	if err != nil {
		logger.Error("Error getting review cards count in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]int64{"count": count}, logger)
}

// SubmitReview は採点結果を受け付けてカードのスケジュールを更新するためのハンドラ
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitReview"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	cardIDStr := chi.URLParam(r, "card_id")
	cardID, err := uuid.Parse(cardIDStr)
	if err != nil {
		logger.Warn("Invalid card ID format in URL", slog.String("card_id_str", cardIDStr), slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_URL_PARAM", "card_idの形式が正しくありません。", "card_id", model.ErrInvalidInput))
		return
	}
	logger = logger.With(slog.String("card_id", cardID.String()))

	var req model.SubmitReviewRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	card, err := h.service.SubmitReview(r.Context(), tenantID, cardID, &req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Card not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error submitting review in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Review submitted successfully")
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// SubmitReviewByQuestion は問題文でカードを特定して採点するためのハンドラ
func (h *ReviewHandler) SubmitReviewByQuestion(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitReviewByQuestion"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	var req model.SubmitReviewByQuestionRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	card, err := h.service.SubmitReviewByQuestion(r.Context(), tenantID, &req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Card not found by question in service", slog.Any("error", err))
		} else {
			logger.Error("Error submitting review by question in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Review by question submitted successfully", slog.String("card_id", card.CardID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}
