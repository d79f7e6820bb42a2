// internal/service/review_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go_5_flashcard_keep/internal/middleware"
	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/repository"
	"go_5_flashcard_keep/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService interface {
	// GetReviewCards は asOf 時点で復習期限が到来しているカードを取得する（上限付き）。
	GetReviewCards(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]model.ReviewCardResponse, error)
	GetReviewCardsCount(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (int64, error)
	// SubmitReview は採点結果を受けてカードのスケジュールを更新する。
	// 同一カードへの同時採点は行ロックで直列化される。
	SubmitReview(ctx context.Context, tenantID, cardID uuid.UUID, req *model.SubmitReviewRequest) (*model.Card, error)
	// SubmitReviewByQuestion は問題文でカードを特定して採点する。
	// 同じ問題文が複数ある場合は作成日時が最新のものを対象とする。
	SubmitReviewByQuestion(ctx context.Context, tenantID uuid.UUID, req *model.SubmitReviewByQuestionRequest) (*model.Card, error)
}

type reviewService struct {
	db          *gorm.DB
	cardRepo    repository.CardRepository
	reviewLimit int
}

func NewReviewService(db *gorm.DB, cardRepo repository.CardRepository, reviewLimit int) ReviewService {
	return &reviewService{
		db:          db,
		cardRepo:    cardRepo,
		reviewLimit: reviewLimit,
	}
}

func (s *reviewService) GetReviewCards(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]model.ReviewCardResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	cards, err := s.cardRepo.FindDueByTenant(ctx, s.db, tenantID, asOf, s.reviewLimit)
	if err != nil {
		logger.Error("Error finding due cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習カードの取得に失敗しました。", "", model.ErrInternalServer)
	}

	responses := make([]model.ReviewCardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, model.ReviewCardResponse{
			CardID:     card.CardID,
			Question:   card.Question,
			Answer:     card.Answer,
			Options:    card.Options,
			Interval:   card.Interval,
			Ease:       card.Ease,
			NextReview: card.NextReview,
		})
	}
	return responses, nil
}

func (s *reviewService) GetReviewCardsCount(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	count, err := s.cardRepo.CountDueByTenant(ctx, s.db, tenantID, asOf)
	if err != nil {
		logger.Error("Error counting due cards", "error", err)
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "復習カード数の取得に失敗しました。", "", model.ErrInternalServer)
	}
	return count, nil
}

func (s *reviewService) SubmitReview(ctx context.Context, tenantID, cardID uuid.UUID, req *model.SubmitReviewRequest) (*model.Card, error) {
	// トランザクション開始前に採点シグナルを検証する。
	// 不正な入力でカードの状態を一切変えないため。
	apply, err := resolveSignal(req.Feedback, req.Quality)
	if err != nil {
		return nil, err
	}

	return s.applyReview(ctx, tenantID, func(ctx context.Context, tx *gorm.DB) (*model.Card, error) {
		return s.cardRepo.FindByIDForUpdate(ctx, tx, tenantID, cardID)
	}, apply)
}

func (s *reviewService) SubmitReviewByQuestion(ctx context.Context, tenantID uuid.UUID, req *model.SubmitReviewByQuestionRequest) (*model.Card, error) {
	apply, err := resolveSignal(req.Feedback, req.Quality)
	if err != nil {
		return nil, err
	}

	return s.applyReview(ctx, tenantID, func(ctx context.Context, tx *gorm.DB) (*model.Card, error) {
		return s.cardRepo.FindLatestByQuestion(ctx, tx, tenantID, req.Question)
	}, apply)
}

// applyReview は カード取得(行ロック) → スケジュール計算 → 更新 を
// 1トランザクションで行う共通処理。
func (s *reviewService) applyReview(
	ctx context.Context,
	tenantID uuid.UUID,
	find func(ctx context.Context, tx *gorm.DB) (*model.Card, error),
	apply func(st srs.State, now time.Time) (srs.State, error),
) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	var reviewedCard *model.Card

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := find(ctx, tx)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Error finding card for review", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", model.ErrInternalServer)
		}

		next, err := apply(srs.State{
			Interval:   card.Interval,
			Ease:       card.Ease,
			NextReview: card.NextReview,
		}, time.Now())
		if err != nil {
			// 検証済みのシグナルなのでここには来ないはずだが念のため
			return mapScheduleError(err)
		}

		if err := s.cardRepo.UpdateScheduling(ctx, tx, tenantID, card.CardID, next.Interval, next.Ease, next.NextReview); err != nil {
			logger.Error("Error updating card scheduling", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "採点結果の保存に失敗しました。", "", model.ErrInternalServer)
		}

		card.Interval = next.Interval
		card.Ease = next.Ease
		card.NextReview = next.NextReview
		reviewedCard = card
		return nil // コミット
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Review submitted",
		"card_id", reviewedCard.CardID,
		"interval", reviewedCard.Interval,
		"ease", reviewedCard.Ease,
		"next_review", reviewedCard.NextReview.Format("2006-01-02"),
	)
	return reviewedCard, nil
}

// resolveSignal は feedback/quality のどちらか一方だけが指定されていることを
// 検証し、対応するスケジュール計算関数を返す。
func resolveSignal(feedback *string, quality *int) (func(st srs.State, now time.Time) (srs.State, error), error) {
	switch {
	case feedback != nil && quality != nil:
		return nil, model.NewAppError("INVALID_REVIEW_SIGNAL", "feedbackとqualityは同時に指定できません。", "", model.ErrInvalidInput)
	case feedback != nil:
		fb, err := srs.ParseFeedback(*feedback)
		if err != nil {
			return nil, model.NewAppError("INVALID_FEEDBACK", "feedbackはagain/hard/easyのいずれかで指定してください。", "feedback", model.ErrInvalidInput)
		}
		return func(st srs.State, now time.Time) (srs.State, error) {
			return srs.ApplyFeedback(st, fb, now)
		}, nil
	case quality != nil:
		q := *quality
		if q < srs.MinQuality || q > srs.MaxQuality {
			return nil, model.NewAppError("INVALID_QUALITY", "qualityは0〜5の整数で指定してください。", "quality", model.ErrInvalidInput)
		}
		return func(st srs.State, now time.Time) (srs.State, error) {
			return srs.ApplyQuality(st, q, now)
		}, nil
	default:
		return nil, model.NewAppError("INVALID_REVIEW_SIGNAL", "feedbackまたはqualityのいずれかを指定してください。", "", model.ErrInvalidInput)
	}
}

func mapScheduleError(err error) error {
	switch {
	case errors.Is(err, srs.ErrInvalidFeedback):
		return model.NewAppError("INVALID_FEEDBACK", "feedbackはagain/hard/easyのいずれかで指定してください。", "feedback", model.ErrInvalidInput)
	case errors.Is(err, srs.ErrInvalidQuality):
		return model.NewAppError("INVALID_QUALITY", "qualityは0〜5の整数で指定してください。", "quality", model.ErrInvalidInput)
	default:
		return model.NewAppError("INTERNAL_SERVER_ERROR", "採点処理に失敗しました。", "", model.ErrInternalServer)
	}
}
