// internal/srs/scheduler.go
//
// srs はフラッシュカードの復習間隔を決める純粋な計算ロジックです。
// SuperMemo-2を簡略化したアルゴリズムで、DBにもロガーにも依存しません。
// 永続化はservice/repository側の責務。
package srs

import (
	"errors"
	"time"
)

// スケジューリングの既定値と境界値
const (
	InitialInterval = 1   // 作成直後の復習間隔（日）
	InitialEase     = 2.5 // 作成直後のease係数
	MinEase         = 1.3 // easeの下限。これを下回ると復習が短周期に暴走するため
	MaxEase         = 2.5 // 3値フィードバックモデルでの上限
	MinQuality      = 0   // 6段階評価の下限
	MaxQuality      = 5   // 6段階評価の上限
)

var (
	ErrInvalidFeedback = errors.New("srs: invalid feedback")
	ErrInvalidQuality  = errors.New("srs: quality out of range [0,5]")
)

// Feedback は3値の自己申告シグナル
type Feedback string

const (
	FeedbackAgain Feedback = "again"
	FeedbackHard  Feedback = "hard"
	FeedbackEasy  Feedback = "easy"
)

// ParseFeedback は文字列を検証してFeedbackに変換します
func ParseFeedback(s string) (Feedback, error) {
	switch Feedback(s) {
	case FeedbackAgain, FeedbackHard, FeedbackEasy:
		return Feedback(s), nil
	}
	return "", ErrInvalidFeedback
}

// State はカード1枚分のスケジューリング状態
type State struct {
	Interval   int       // 次回復習までの日数 (>= 1)
	Ease       float64   // 間隔の伸び係数 (>= 1.3)
	NextReview time.Time // 次回復習日（0時に正規化した日付）
}

// NewState はカード作成時の初期状態を返します（翌日が初回復習日）
func NewState(today time.Time) State {
	return State{
		Interval:   InitialInterval,
		Ease:       InitialEase,
		NextReview: dateOf(today).AddDate(0, 0, InitialInterval),
	}
}

// ApplyFeedback は3値フィードバックモデルで次の状態を計算します。
//   - again: interval=1に戻し、easeを0.2下げる
//   - hard:  interval×1.2（切り捨て）、easeを0.05下げる
//   - easy:  interval×ease（切り捨て）、easeを0.1上げる（上限2.5）
//
// interval=1でhardを付けると floor(1*1.2)=1 のまま進まないが、これは
// このモデルの仕様どおりの挙動（停滞しうることを許容している）。
func ApplyFeedback(st State, fb Feedback, today time.Time) (State, error) {
	switch fb {
	case FeedbackAgain:
		st.Interval = 1
		st.Ease = maxFloat(MinEase, st.Ease-0.2)
	case FeedbackHard:
		st.Interval = int(float64(st.Interval) * 1.2)
		st.Ease = maxFloat(MinEase, st.Ease-0.05)
	case FeedbackEasy:
		st.Interval = int(float64(st.Interval) * st.Ease)
		st.Ease = minFloat(MaxEase, st.Ease+0.1)
	default:
		return State{}, ErrInvalidFeedback
	}

	if st.Interval < 1 {
		st.Interval = 1
	}
	st.NextReview = dateOf(today).AddDate(0, 0, st.Interval)
	return st, nil
}

// ApplyQuality は0〜5の6段階評価モデル（SuperMemo-2方式）で次の状態を計算します。
//   - quality < 3: interval=1に戻す（easeは変更しない）
//   - quality >= 3: ease = max(1.3, ease + 0.1 - (5-q)*0.08)、interval×ease（切り捨て）
//
// 範囲外のqualityは丸めずエラーにする（呼び出し側の契約違反）。
// このモデルのeaseには上限がない。3値モデルとの非対称は元仕様のままで、
// 勝手に揃えない。
func ApplyQuality(st State, quality int, today time.Time) (State, error) {
	if quality < MinQuality || quality > MaxQuality {
		return State{}, ErrInvalidQuality
	}

	if quality < 3 {
		st.Interval = 1
	} else {
		st.Ease = maxFloat(MinEase, st.Ease+0.1-float64(5-quality)*0.08)
		st.Interval = int(float64(st.Interval) * st.Ease)
	}

	if st.Interval < 1 {
		st.Interval = 1
	}
	st.NextReview = dateOf(today).AddDate(0, 0, st.Interval)
	return st, nil
}

// dateOf は時刻を0時に切り落として「日付」にします。
// next_reviewは日付として比較するため、時刻成分を持たせない。
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
