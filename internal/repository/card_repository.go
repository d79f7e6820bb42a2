//go:generate mockery --name CardRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_flashcard_keep/internal/middleware"
	"go_5_flashcard_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CardRepository インターフェース。DB接続はService層からメソッド毎に渡される
// （トランザクション内ではtxを渡す）。
type CardRepository interface {
	Create(ctx context.Context, tx *gorm.DB, card *model.Card) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, cardID uuid.UUID) (*model.Card, error)
	// FindByIDForUpdate は行ロック付きで取得する。同一カードへの復習送信を
	// 直列化するため、recordReviewのトランザクション内からだけ呼ぶこと。
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, tenantID, cardID uuid.UUID) (*model.Card, error)
	// FindLatestByQuestion は問題文でカードを特定する互換経路。
	// 同じ問題文が複数ある場合は作成日時が最新の1枚を返す。
	FindLatestByQuestion(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, question string) (*model.Card, error)
	FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Card, error)
	FindDueByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, asOf time.Time, limit int) ([]*model.Card, error)
	CountDueByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, asOf time.Time) (int64, error)
	CheckQuestionExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, question string) (bool, error)
	// UpdateScheduling はスケジューリング3項目(interval, ease, next_review)だけを
	// まとめて更新する。カードの同一性(question/answer)はここからは触れない。
	UpdateScheduling(ctx context.Context, tx *gorm.DB, tenantID, cardID uuid.UUID, interval int, ease float64, nextReview time.Time) error
}

type gormCardRepository struct{}

func NewGormCardRepository() CardRepository {
	return &gormCardRepository{}
}

func (r *gormCardRepository) Create(ctx context.Context, tx *gorm.DB, card *model.Card) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(card)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Duplicate key error on create card",
				"error", result.Error,
				"tenant_id", card.TenantID.String(),
			)
			return model.ErrConflict
		}
		logger.Error("Error creating card in DB",
			"error", result.Error,
			"tenant_id", card.TenantID.String(),
		)
		return fmt.Errorf("gormCardRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCardRepository) FindByID(ctx context.Context, db *gorm.DB, tenantID, cardID uuid.UUID) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Card
	result := db.WithContext(ctx).Where("tenant_id = ? AND card_id = ?", tenantID, cardID).First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card by ID in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"card_id", cardID.String(),
		)
		return nil, fmt.Errorf("gormCardRepository.FindByID: %w", result.Error)
	}
	return &card, nil
}

func (r *gormCardRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, tenantID, cardID uuid.UUID) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Card
	// SELECT ... FOR UPDATE。同じカードに対する並行した復習送信はここで
	// 直列化される（別カード同士はロックを取り合わない）。
	result := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND card_id = ?", tenantID, cardID).
		First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card for update in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"card_id", cardID.String(),
		)
		return nil, fmt.Errorf("gormCardRepository.FindByIDForUpdate: %w", result.Error)
	}
	return &card, nil
}

func (r *gormCardRepository) FindLatestByQuestion(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, question string) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Card
	// 問題文は一意とは限らない。最新作成の1枚に解決するポリシー。
	result := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND question = ?", tenantID, question).
		Order("created_at DESC").
		First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card by question in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return nil, fmt.Errorf("gormCardRepository.FindLatestByQuestion: %w", result.Error)
	}
	return &card, nil
}

func (r *gormCardRepository) FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card
	result := db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding cards by tenant in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return nil, fmt.Errorf("gormCardRepository.FindByTenant: %w", result.Error)
	}
	return cards, nil
}

func (r *gormCardRepository) FindDueByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, asOf time.Time, limit int) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card

	// next_reviewは0時に正規化された日付で保存されているので、
	// 比較側も日付に切り落としてから比較する
	result := db.WithContext(ctx).
		Where("tenant_id = ? AND next_review <= ?", tenantID, dateOf(asOf)).
		Order("next_review ASC, created_at ASC").
		Limit(limit).
		Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding due cards in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return nil, fmt.Errorf("gormCardRepository.FindDueByTenant: %w", result.Error)
	}
	return cards, nil
}

func (r *gormCardRepository) CountDueByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, asOf time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Card{}).
		Where("tenant_id = ? AND next_review <= ?", tenantID, dateOf(asOf)).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting due cards in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return 0, fmt.Errorf("gormCardRepository.CountDueByTenant: %w", result.Error)
	}
	return count, nil
}

func (r *gormCardRepository) CheckQuestionExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, question string) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Card{}).
		Where("tenant_id = ? AND question = ?", tenantID, question).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error checking question existence in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return false, fmt.Errorf("gormCardRepository.CheckQuestionExists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormCardRepository) UpdateScheduling(ctx context.Context, tx *gorm.DB, tenantID, cardID uuid.UUID, interval int, ease float64, nextReview time.Time) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Card{}).
		Where("tenant_id = ? AND card_id = ?", tenantID, cardID).
		Updates(map[string]interface{}{
			"interval":    interval,
			"ease":        ease,
			"next_review": nextReview,
		})
	if result.Error != nil {
		logger.Error("Error updating card scheduling in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormCardRepository.UpdateScheduling: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// dateOf は時刻を0時に切り落とします（srs側の正規化と同じ規約）
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
