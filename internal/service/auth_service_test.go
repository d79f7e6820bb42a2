// internal/service/auth_service_test.go
package service_test // メインコードとは別のパッケージにすることで、公開されているものしかテストできなくなり、より良いテストになる

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_5_flashcard_keep/internal/config"
	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/repository/mocks"
	"go_5_flashcard_keep/internal/service"
	servicemocks "go_5_flashcard_keep/internal/service/mocks" // Mailerのモック

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストスイートの定義 ---
// 関連するテストと、共通のセットアップをまとめる
type AuthServiceTestSuite struct {
	suite.Suite // testifyのSuiteを埋め込む

	db             *gorm.DB
	mockTenantRepo *mocks.TenantRepository
	mockTokenRepo  *mocks.TokenRepository
	mockMailer     *servicemocks.Mailer
	cfg            *config.Config
	authService    service.AuthService
}

// --- セットアップメソッド ---
// 各テスト(`TestXxx`)が実行される直前に呼ばれる
func (s *AuthServiceTestSuite) SetupTest() {
	// トランザクションを実際に流すためsqliteのインメモリDBを使う
	// （リポジトリはモックなのでテーブルはTenantだけあればよい）
	db, err := gorm.Open(sqlite.Open("file:authsvc?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&model.Tenant{}))
	s.db = db

	// 各テストの前に、モックを新しく生成してクリーンな状態にする
	s.mockTenantRepo = new(mocks.TenantRepository)
	s.mockTokenRepo = new(mocks.TokenRepository)
	s.mockMailer = new(servicemocks.Mailer)

	// テスト用のダミー設定
	s.cfg = &config.Config{
		App: config.AppConfig{Name: "memoca-test", FrontendURL: "http://localhost:3000"},
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 15 * time.Minute,
		},
	}

	// テスト対象のサービスにモックを注入してインスタンスを生成
	s.authService = service.NewAuthService(s.db, s.mockTenantRepo, s.mockTokenRepo, s.mockMailer, s.cfg)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	// cache=sharedなので他テストに残骸を持ち越さないように消しておく
	s.db.Exec("DELETE FROM tenants")
}

// --- テストランナー ---
// この関数が `go test` から実際に呼ばれる
func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

// --- Registerメソッドのテスト ---
func (s *AuthServiceTestSuite) TestRegister() {
	// テストケースをテーブルとして定義
	testCases := []struct {
		name        string // テストケース名
		req         *model.RegisterRequest
		setupMocks  func()                                // このケースのためのモック設定
		checkResult func(tenant *model.Tenant, err error) // 結果の検証
	}{
		{
			name: "Success - 正常に登録できる",
			req:  &model.RegisterRequest{Name: "test", Email: "test@example.com", Password: "password"},
			setupMocks: func() {
				// 正常系のモック設定
				s.mockTenantRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockTenantRepo.On("FindByName", mock.Anything, mock.Anything, "test").Return(nil, model.ErrNotFound).Once()
				s.mockTenantRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Tenant")).Return(nil).Once()
				s.mockTokenRepo.On("CreateVerificationToken", mock.Anything, mock.Anything, mock.AnythingOfType("*model.UserVerificationToken")).Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.Anything).Return(nil).Once()
			},
			checkResult: func(tenant *model.Tenant, err error) {
				s.NoError(err)
				s.Require().NotNil(tenant)
				s.Equal("test@example.com", tenant.Email)
				s.False(tenant.IsActive) // 有効化メールを踏むまでは無効
				// パスワードは平文で保存されない
				s.NotEqual("password", tenant.PasswordHash)
				s.NoError(bcrypt.CompareHashAndPassword([]byte(tenant.PasswordHash), []byte("password")))
			},
		},
		{
			name: "Failure - Emailが重複している",
			req:  &model.RegisterRequest{Name: "test", Email: "test@example.com", Password: "password"},
			setupMocks: func() {
				// Email重複時のモック設定
				s.mockTenantRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(&model.Tenant{}, nil).Once()
			},
			checkResult: func(tenant *model.Tenant, err error) {
				s.Nil(tenant)
				s.Error(err)
				var appErr *model.AppError
				s.ErrorAs(err, &appErr)
				s.Equal("DUPLICATE_EMAIL", appErr.Detail.Code)
				s.ErrorIs(err, model.ErrConflict)
			},
		},
		{
			name: "Failure - 名前が重複している",
			req:  &model.RegisterRequest{Name: "taken", Email: "new@example.com", Password: "password"},
			setupMocks: func() {
				s.mockTenantRepo.On("FindByEmail", mock.Anything, mock.Anything, "new@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockTenantRepo.On("FindByName", mock.Anything, mock.Anything, "taken").Return(&model.Tenant{}, nil).Once()
			},
			checkResult: func(tenant *model.Tenant, err error) {
				s.Nil(tenant)
				var appErr *model.AppError
				s.ErrorAs(err, &appErr)
				s.Equal("DUPLICATE_NAME", appErr.Detail.Code)
			},
		},
		{
			name: "Failure - Createで一意制約違反（レースコンディション）",
			req:  &model.RegisterRequest{Name: "test", Email: "test@example.com", Password: "password"},
			setupMocks: func() {
				s.mockTenantRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockTenantRepo.On("FindByName", mock.Anything, mock.Anything, "test").Return(nil, model.ErrNotFound).Once()
				s.mockTenantRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Tenant")).Return(model.ErrConflict).Once()
			},
			checkResult: func(tenant *model.Tenant, err error) {
				s.Nil(tenant)
				s.ErrorIs(err, model.ErrConflict)
			},
		},
		{
			name: "Failure - メール送信に失敗するとロールバックされる",
			req:  &model.RegisterRequest{Name: "test", Email: "test@example.com", Password: "password"},
			setupMocks: func() {
				s.mockTenantRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockTenantRepo.On("FindByName", mock.Anything, mock.Anything, "test").Return(nil, model.ErrNotFound).Once()
				s.mockTenantRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Tenant")).Return(nil).Once()
				s.mockTokenRepo.On("CreateVerificationToken", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
			},
			checkResult: func(tenant *model.Tenant, err error) {
				s.Nil(tenant)
				var appErr *model.AppError
				s.ErrorAs(err, &appErr)
				s.Equal("EMAIL_SEND_FAILED", appErr.Detail.Code)
			},
		},
	}

	// テーブルのループ実行
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// SetupTestが呼ばれてモックがリセットされる
			s.SetupTest()

			// 1. Arrange (準備)
			tc.setupMocks()

			// 2. Act (実行)
			createdTenant, err := s.authService.Register(context.Background(), tc.req)

			// 3. Assert (検証)
			tc.checkResult(createdTenant, err)

			// モックの呼び出しが期待通りだったか全体を検証
			s.mockTenantRepo.AssertExpectations(s.T())
			s.mockTokenRepo.AssertExpectations(s.T())
			s.mockMailer.AssertExpectations(s.T())
		})
	}
}

// --- Loginメソッドのテスト ---
func (s *AuthServiceTestSuite) TestLogin() {
	// 検証用に本物のbcryptハッシュを用意しておく
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	s.Require().NoError(err)

	tenantID := uuid.New()
	activeTenant := &model.Tenant{
		TenantID:     tenantID,
		Name:         "test",
		Email:        "test@example.com",
		PasswordHash: string(hashed),
		IsActive:     true,
	}

	testCases := []struct {
		name        string
		req         *model.LoginRequest
		setupMocks  func()
		checkResult func(res *model.LoginResponse, err error)
	}{
		{
			name: "Success - 正しい資格情報でJWTが返る",
			req:  &model.LoginRequest{Email: "test@example.com", Password: "correct-password"},
			setupMocks: func() {
				s.mockTenantRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(activeTenant, nil).Once()
			},
			checkResult: func(res *model.LoginResponse, err error) {
				s.NoError(err)
				s.Require().NotNil(res)
				s.NotEmpty(res.AccessToken)

				// 発行されたトークンの中身まで検証する
				parsed, err := jwt.ParseWithClaims(res.AccessToken, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
					return []byte(s.cfg.JWT.SecretKey), nil
				})
				s.Require().NoError(err)
				claims := parsed.Claims.(*jwt.RegisteredClaims)
				s.Equal(tenantID.String(), claims.Subject)
				s.Equal("memoca-test", claims.Issuer)
			},
		},
		{
			name: "Failure - ユーザーが存在しない",
			req:  &model.LoginRequest{Email: "unknown@example.com", Password: "whatever"},
			setupMocks: func() {
				s.mockTenantRepo.On("FindByEmail", mock.Anything, mock.Anything, "unknown@example.com").Return(nil, model.ErrNotFound).Once()
			},
			checkResult: func(res *model.LoginResponse, err error) {
				s.Nil(res)
				var appErr *model.AppError
				s.ErrorAs(err, &appErr)
				// ユーザーの有無を悟らせないため、パスワード不一致と同じコードを返す
				s.Equal("AUTHENTICATION_FAILED", appErr.Detail.Code)
			},
		},
		{
			name: "Failure - パスワードが一致しない",
			req:  &model.LoginRequest{Email: "test@example.com", Password: "wrong-password"},
			setupMocks: func() {
				s.mockTenantRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(activeTenant, nil).Once()
			},
			checkResult: func(res *model.LoginResponse, err error) {
				s.Nil(res)
				var appErr *model.AppError
				s.ErrorAs(err, &appErr)
				s.Equal("AUTHENTICATION_FAILED", appErr.Detail.Code)
			},
		},
		{
			name: "Failure - アカウントが未有効化",
			req:  &model.LoginRequest{Email: "test@example.com", Password: "correct-password"},
			setupMocks: func() {
				inactive := *activeTenant
				inactive.IsActive = false
				s.mockTenantRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(&inactive, nil).Once()
			},
			checkResult: func(res *model.LoginResponse, err error) {
				s.Nil(res)
				var appErr *model.AppError
				s.ErrorAs(err, &appErr)
				s.Equal("ACCOUNT_NOT_ACTIVE", appErr.Detail.Code)
				s.ErrorIs(err, model.ErrForbidden)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			res, err := s.authService.Login(context.Background(), tc.req)

			tc.checkResult(res, err)
			s.mockTenantRepo.AssertExpectations(s.T())
		})
	}
}

// --- VerifyAccountメソッドのテスト ---
func (s *AuthServiceTestSuite) TestVerifyAccount() {
	s.Run("Success - トークンが有効ならアカウントが有効化される", func() {
		s.SetupTest()

		// 有効化対象のテナントを実際にDBへ入れておく
		tenant := &model.Tenant{TenantID: uuid.New(), Name: "verify-me", Email: "verify@example.com", PasswordHash: "x", IsActive: false}
		s.Require().NoError(s.db.Create(tenant).Error)

		token := &model.UserVerificationToken{
			Token:     "valid-token",
			TenantID:  tenant.TenantID,
			ExpiresAt: time.Now().Add(1 * time.Hour),
		}
		s.mockTokenRepo.On("FindVerificationToken", mock.Anything, mock.Anything, "valid-token").Return(token, nil).Once()
		s.mockTokenRepo.On("DeleteVerificationToken", mock.Anything, mock.Anything, "valid-token").Return(nil).Once()

		err := s.authService.VerifyAccount(context.Background(), "valid-token")
		s.NoError(err)

		// DB上でis_activeが立っていること
		var updated model.Tenant
		s.Require().NoError(s.db.First(&updated, "tenant_id = ?", tenant.TenantID).Error)
		s.True(updated.IsActive)

		s.mockTokenRepo.AssertExpectations(s.T())
	})

	s.Run("Failure - トークンが存在しない", func() {
		s.SetupTest()
		s.mockTokenRepo.On("FindVerificationToken", mock.Anything, mock.Anything, "missing-token").Return(nil, model.ErrNotFound).Once()

		err := s.authService.VerifyAccount(context.Background(), "missing-token")

		var appErr *model.AppError
		s.ErrorAs(err, &appErr)
		s.Equal("INVALID_TOKEN", appErr.Detail.Code)
		s.mockTokenRepo.AssertExpectations(s.T())
	})

	s.Run("Failure - トークンの期限切れ（削除される）", func() {
		s.SetupTest()
		token := &model.UserVerificationToken{
			Token:     "expired-token",
			TenantID:  uuid.New(),
			ExpiresAt: time.Now().Add(-1 * time.Minute),
		}
		s.mockTokenRepo.On("FindVerificationToken", mock.Anything, mock.Anything, "expired-token").Return(token, nil).Once()
		s.mockTokenRepo.On("DeleteVerificationToken", mock.Anything, mock.Anything, "expired-token").Return(nil).Once()

		err := s.authService.VerifyAccount(context.Background(), "expired-token")

		var appErr *model.AppError
		s.ErrorAs(err, &appErr)
		s.Equal("INVALID_TOKEN", appErr.Detail.Code)
		s.mockTokenRepo.AssertExpectations(s.T())
	})
}

// --- RequestPasswordResetメソッドのテスト ---
func (s *AuthServiceTestSuite) TestRequestPasswordReset() {
	s.Run("Success - 登録済みメールアドレスにはリセットメールを送る", func() {
		s.SetupTest()
		tenant := &model.Tenant{TenantID: uuid.New(), Email: "test@example.com"}
		s.mockTenantRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(tenant, nil).Once()
		s.mockTokenRepo.On("CreatePasswordResetToken", mock.Anything, mock.Anything, mock.AnythingOfType("*model.PasswordResetToken")).Return(nil).Once()
		s.mockMailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.Anything).Return(nil).Once()

		err := s.authService.RequestPasswordReset(context.Background(), "test@example.com")
		s.NoError(err)
		s.mockMailer.AssertExpectations(s.T())
	})

	s.Run("Success - 未登録メールアドレスでもエラーにしない（情報漏洩対策）", func() {
		s.SetupTest()
		s.mockTenantRepo.On("FindByEmail", mock.Anything, mock.Anything, "unknown@example.com").Return(nil, model.ErrNotFound).Once()

		err := s.authService.RequestPasswordReset(context.Background(), "unknown@example.com")
		s.NoError(err)
		// メールは送られない
		s.mockMailer.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// --- GetTenantメソッドのテスト ---
func (s *AuthServiceTestSuite) TestGetTenant() {
	s.Run("Success - テナントを取得できる", func() {
		s.SetupTest()
		tenantID := uuid.New()
		tenant := &model.Tenant{TenantID: tenantID, Name: "me", Email: "me@example.com"}
		s.mockTenantRepo.On("FindByID", mock.Anything, mock.Anything, tenantID).Return(tenant, nil).Once()

		got, err := s.authService.GetTenant(context.Background(), tenantID)
		s.NoError(err)
		s.Equal(tenant, got)
	})

	s.Run("Failure - テナントが存在しない", func() {
		s.SetupTest()
		tenantID := uuid.New()
		s.mockTenantRepo.On("FindByID", mock.Anything, mock.Anything, tenantID).Return(nil, model.ErrNotFound).Once()

		got, err := s.authService.GetTenant(context.Background(), tenantID)
		s.Nil(got)
		s.ErrorIs(err, model.ErrNotFound)
	})
}
