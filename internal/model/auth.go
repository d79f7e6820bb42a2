package model

// 認証まわりのリクエスト/レスポンスDTO。
// トークンの発行・検証ロジック自体はservice/auth_service.goにある。

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス。
// アクセストークンはHS256署名のJWTで、subにtenant_idが入る。
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// ForgotPasswordRequest はパスワード再設定メールの送信依頼
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest はメール内リンクから遷移した後の再設定本体。
// パスワード長の上限72はbcryptの入力上限に合わせている。
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}
