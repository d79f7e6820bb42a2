//go:generate mockery --name TenantRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_flashcard_keep/internal/middleware"
	"go_5_flashcard_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantRepository interface {
	Create(ctx context.Context, db *gorm.DB, tenant *model.Tenant) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) (*model.Tenant, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Tenant, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Tenant, error)
}

type gormTenantRepository struct{}

func NewGormTenantRepository() TenantRepository {
	return &gormTenantRepository{}
}

func (r *gormTenantRepository) Create(ctx context.Context, db *gorm.DB, tenant *model.Tenant) error {
	logger := middleware.GetLogger(ctx)

	if err := db.WithContext(ctx).Create(tenant).Error; err != nil {
		// email/nameの一意制約違反は衝突として呼び出し元に返す
		if isUniqueViolation(err) {
			logger.Warn("Duplicate key error on create tenant", "error", err, "email", tenant.Email)
			return model.ErrConflict
		}
		logger.Error("Error creating tenant in DB", "error", err, "tenant_name", tenant.Name)
		return fmt.Errorf("gormTenantRepository.Create: %w", err)
	}
	return nil
}

func (r *gormTenantRepository) FindByID(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) (*model.Tenant, error) {
	return r.findOne(ctx, db, "tenant_id = ?", tenantID)
}

func (r *gormTenantRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Tenant, error) {
	return r.findOne(ctx, db, "name = ?", name)
}

func (r *gormTenantRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Tenant, error) {
	return r.findOne(ctx, db, "email = ?", email)
}

// findOne は単一条件でのテナント検索の共通処理。
// 見つからない場合はModelのErrNotFoundに寄せる（重複チェックの分岐で使うため）。
func (r *gormTenantRepository) findOne(ctx context.Context, db *gorm.DB, query string, arg interface{}) (*model.Tenant, error) {
	logger := middleware.GetLogger(ctx)
	var tenant model.Tenant

	result := db.WithContext(ctx).Where(query, arg).First(&tenant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding tenant in DB", "error", result.Error, "query", query)
		return nil, fmt.Errorf("gormTenantRepository.findOne(%s): %w", query, result.Error)
	}
	return &tenant, nil
}
