// internal/service/mailer_ses.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"go_5_flashcard_keep/internal/config"
	"go_5_flashcard_keep/internal/middleware"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESMailer は AWS SES (v2 API) でメールを送信する本番用実装です
type SESMailer struct {
	client *sesv2.Client
	from   string
}

// NewSESMailer はSESクライアントを初期化します。認証情報が解決できない場合は
// 起動時にpanicして設定ミスを早期に露呈させる。
func NewSESMailer(cfg *config.Config) Mailer {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.SES.Region),
	}

	if provider, err := sesCredentials(&cfg.SES); err != nil {
		slog.Error("SES credential configuration error", "error", err)
		panic(err)
	} else if provider != nil {
		opts = append(opts, awsconfig.WithCredentialsProvider(provider))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		slog.Error("Failed to load AWS config for SES", "error", err)
		panic(err)
	}

	return &SESMailer{
		client: sesv2.NewFromConfig(awsCfg),
		from:   cfg.SES.From,
	}
}

// sesCredentials は設定のauth_typeに応じたクレデンシャルプロバイダを返します。
// iam_roleの場合はnilを返し、SDK標準の解決に任せる。
func sesCredentials(cfg *config.SESConfig) (aws.CredentialsProvider, error) {
	switch cfg.AuthType {
	case "static_credentials":
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return nil, fmt.Errorf("ses: auth_type is static_credentials but access_key_id or secret_access_key is empty")
		}
		return credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""), nil
	case "iam_role", "":
		return nil, nil
	default:
		slog.Warn("Unknown SES auth_type, falling back to IAM Role", "type", cfg.AuthType)
		return nil, nil
	}
}

// Send は1通のテキストメールをSES経由で送信します
func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)

	content := &types.EmailContent{
		Simple: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
			},
		},
	}

	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content:          content,
	})
	if err != nil {
		logger.Error("Failed to send email via SES", "error", err, "to", to)
		return fmt.Errorf("ses: send email: %w", err)
	}

	logger.Info("Email sent via SES", "to", to, "subject", subject)
	return nil
}
