// internal/service/card_service.go
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

type CardService interface {
	CreateCard(ctx context.Context, tenantID uuid.UUID, req *model.PostCardRequest) (*model.Card, error)
	// ImportCards は生成器が出力した問題/答えペアの列を一括登録する。
	// 既に同じ問題文のカードがある場合はスキップする（生成呼び出しの
	// リトライで同じカードが二重保存されるのを防ぐ）。
	ImportCards(ctx context.Context, tenantID uuid.UUID, req *model.ImportCardsRequest) ([]*model.Card, error)
	GetCard(ctx context.Context, tenantID, cardID uuid.UUID) (*model.Card, error)
	ListCards(ctx context.Context, tenantID uuid.UUID) ([]*model.Card, error)
}

type cardService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	cardRepo repository.CardRepository
}

func NewCardService(db *gorm.DB, cardRepo repository.CardRepository) CardService {
	return &cardService{
		db:       db,
		cardRepo: cardRepo,
	}
}

func (s *cardService) CreateCard(ctx context.Context, tenantID uuid.UUID, req *model.PostCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	var createdCard *model.Card

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := s.createOne(ctx, tx, tenantID, req.Question, req.Answer, req.Options, false)
		if err != nil {
			return err
		}
		createdCard = card
		return nil // コミット
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Card created", "card_id", createdCard.CardID)
	return createdCard, nil
}

func (s *cardService) ImportCards(ctx context.Context, tenantID uuid.UUID, req *model.ImportCardsRequest) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	created := make([]*model.Card, 0, len(req.Cards))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, content := range req.Cards {
			card, err := s.createOne(ctx, tx, tenantID, content.Question, content.Answer, content.Options, true)
			if err != nil {
				return err
			}
			if card == nil {
				// 重複はスキップ済み
				continue
			}
			created = append(created, card)
		}
		return nil // コミット
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Cards imported", "requested", len(req.Cards), "created", len(created))
	return created, nil
}

// createOne は1枚分の作成処理。skipDuplicate=trueなら重複時にnilを返し、
// falseなら衝突エラーを返す。
func (s *cardService) createOne(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, question, answer string, options []string, skipDuplicate bool) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)

	exists, err := s.cardRepo.CheckQuestionExists(ctx, tx, tenantID, question)
	if err != nil {
		logger.Error("Error checking question existence", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの重複確認に失敗しました。", "", model.ErrInternalServer)
	}
	if exists {
		if skipDuplicate {
			logger.Debug("Skipping duplicate card", "question", question)
			return nil, nil
		}
		return nil, model.NewAppError("DUPLICATE_CARD", "同じ問題文のカードが既に登録されています。", "question", model.ErrConflict)
	}

	// 初期スケジュール: interval=1, ease=2.5, 初回復習は翌日
	state := srs.NewState(time.Now())
	card := &model.Card{
		CardID:     uuid.New(),
		TenantID:   tenantID,
		Question:   question,
		Answer:     answer,
		Options:    options,
		Interval:   state.Interval,
		Ease:       state.Ease,
		NextReview: state.NextReview,
	}
	if err := s.cardRepo.Create(ctx, tx, card); err != nil {
		// 一意制約違反の検知はレースコンディション対策
		if errors.Is(err, model.ErrConflict) {
			if skipDuplicate {
				return nil, nil
			}
			return nil, model.NewAppError("DUPLICATE_CARD", "同じ問題文のカードが既に登録されています。", "question", model.ErrConflict)
		}
		logger.Error("Error creating card", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの作成に失敗しました。", "", model.ErrInternalServer)
	}
	return card, nil
}

func (s *cardService) GetCard(ctx context.Context, tenantID, cardID uuid.UUID) (*model.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, s.db, tenantID, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", model.ErrInternalServer)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, tenantID uuid.UUID) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	cards, err := s.cardRepo.FindByTenant(ctx, s.db, tenantID)
	if err != nil {
		logger.Error("Error listing cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カード一覧の取得に失敗しました。", "", model.ErrInternalServer)
	}
	return cards, nil
}
