// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewCardResponse は復習対象カードリストのレスポンスDTO
type ReviewCardResponse struct {
	CardID     uuid.UUID `json:"card_id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"` // 正解表示用に含める
	Options    []string  `json:"options,omitempty"`
	Interval   int       `json:"interval"`
	Ease       float64   `json:"ease"`
	NextReview time.Time `json:"next_review"`
}

// SubmitReviewRequest は復習結果送信リクエストのDTO。
// FeedbackとQualityはどちらか一方だけを指定する（両方・どちらも無しはエラー）。
//   - Feedback: again / hard / easy の3値
//   - Quality:  0〜5 の6段階（SuperMemo-2方式）
type SubmitReviewRequest struct {
	Feedback *string `json:"feedback,omitempty" validate:"omitempty,oneof=again hard easy"`
	Quality  *int    `json:"quality,omitempty"`
}

// SubmitReviewByQuestionRequest は問題文でカードを特定して復習結果を送るDTO。
// card_idを持たないクライアント向けの互換経路。同じ問題文のカードが複数ある
// 場合は「最後に作成されたカード」を対象とする。
type SubmitReviewByQuestionRequest struct {
	Question string  `json:"question" validate:"required"`
	Feedback *string `json:"feedback,omitempty" validate:"omitempty,oneof=again hard easy"`
	Quality  *int    `json:"quality,omitempty"`
}
