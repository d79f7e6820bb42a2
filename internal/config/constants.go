// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "Memoca"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultAppReviewLimit = 20
	DefaultAccessTokenTTL = 24 * time.Hour
)
