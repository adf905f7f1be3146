// Package adapters はexamplesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"facets_backend/internal/feature/examples/domain"
	"facets_backend/internal/feature/examples/domain/entity"
	"facets_backend/internal/feature/examples/usecase"
)

// likeEscape はLIKEパターンのエスケープ文字です。
// バックスラッシュはMySQLの文字列リテラルで特殊扱いされるため使いません。
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// exampleGorm はExampleRepositoryインターフェースのGORM実装です。
// SQLite / PostgreSQL / MySQL のいずれのダイアレクトでも動作します。
type exampleGorm struct {
	db *gorm.DB
}

// exampleGormがExampleRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ExampleRepository = (*exampleGorm)(nil)

// NewExampleRepository は指定されたDB接続でexampleGormの新しいインスタンスを生成します。
func NewExampleRepository(db *gorm.DB) *exampleGorm {
	return &exampleGorm{db: db}
}

// Create はレコードを追加します。タイムスタンプは呼び出し元で設定済みである必要があります。
func (r *exampleGorm) Create(ctx context.Context, e *entity.Example) error {
	// is_activeのfalseがDBデフォルト(true)で上書きされないよう、全列を明示します。
	return r.db.WithContext(ctx).
		Select("Name", "Description", "CreatedAt", "UpdatedAt", "IsActive").
		Create(e).Error
}

// FindByID はIDでレコードを取得します。
// 存在しない場合、domain.ErrExampleNotFoundを返します。
func (r *exampleGorm) FindByID(ctx context.Context, id uint) (*entity.Example, error) {
	var e entity.Example
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrExampleNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindForUpdate はFindByIDと同じくストアから直接読み込みます。
func (r *exampleGorm) FindForUpdate(ctx context.Context, id uint) (*entity.Example, error) {
	return r.FindByID(ctx, id)
}

// List はcreated_at降順（同値はid降順）で条件に一致するレコードを返します。
func (r *exampleGorm) List(ctx context.Context, filter usecase.ListFilter, page usecase.Page) ([]entity.Example, error) {
	q := r.scoped(ctx, filter).Order(entity.DefaultOrder)
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	if page.Offset > 0 {
		q = q.Offset(page.Offset)
	}

	examples := []entity.Example{}
	if err := q.Find(&examples).Error; err != nil {
		return nil, err
	}
	return examples, nil
}

// Count は条件に一致するレコード数を返します。
func (r *exampleGorm) Count(ctx context.Context, filter usecase.ListFilter) (int64, error) {
	var count int64
	err := r.scoped(ctx, filter).Count(&count).Error
	return count, err
}

// Save は可変フィールドを書き戻します。
// 存在しない場合、domain.ErrExampleNotFoundを返します。
func (r *exampleGorm) Save(ctx context.Context, e *entity.Example) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Example{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"name":        e.Name,
			"description": e.Description,
			"is_active":   e.IsActive,
			"updated_at":  e.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrExampleNotFound
	}
	return nil
}

// Delete はレコードを物理削除します。
// 存在しない場合、domain.ErrExampleNotFoundを返します。
func (r *exampleGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Example{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrExampleNotFound
	}
	return nil
}

// scoped はフィルタ条件を適用したクエリを返します。
func (r *exampleGorm) scoped(ctx context.Context, filter usecase.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.Example{})
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.Name != "" {
		// 両辺を同じLOWERで畳み込む（SQLiteのLOWERはASCIIのみ対象）
		pattern := "%" + likeReplacer.Replace(filter.Name) + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) ESCAPE '"+likeEscape+"'", pattern)
	}
	return q
}
