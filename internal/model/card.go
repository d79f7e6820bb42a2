// internal/model/card.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Card は1枚のフラッシュカード（問題・答え・復習スケジュール）を表します
type Card struct {
	CardID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"card_id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Question string    `gorm:"not null" json:"question"` // 問題文
	Answer   string    `gorm:"not null" json:"answer"`   // 答え
	// 選択式カードの場合のみ設定される（4択など）。通常のQ&Aカードでは空。
	Options []string `gorm:"serializer:json" json:"options,omitempty"`

	// スケジューリング状態。card_idとtenant_idとquestion/answerは作成後不変で、
	// 更新されるのはこの3つのフィールドだけ。
	Interval   int       `gorm:"not null;default:1" json:"interval"`     // 次回復習までの日数 (>= 1)
	Ease       float64   `gorm:"not null;default:2.5" json:"ease"`       // 間隔の伸び係数 (>= 1.3)
	NextReview time.Time `gorm:"not null;index" json:"next_review"`      // 次回復習日

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (Card) TableName() string {
	return "cards"
}

// カード作成リクエストDTO
type PostCardRequest struct {
	Question string   `json:"question" validate:"required"`
	Answer   string   `json:"answer" validate:"required"`
	Options  []string `json:"options,omitempty" validate:"omitempty,len=4"`
}

// CardContent は生成器（PDF+LLM側）から受け取る1件分のカード内容
type CardContent struct {
	Question string   `json:"question" validate:"required"`
	Answer   string   `json:"answer" validate:"required"`
	Options  []string `json:"options,omitempty" validate:"omitempty,len=4"`
}

// ImportCardsRequest は生成済みカードの一括登録リクエストDTO
type ImportCardsRequest struct {
	Cards []CardContent `json:"cards" validate:"required,min=1,dive"`
}
