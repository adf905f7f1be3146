// Package usecase はexamplesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"facets_backend/internal/feature/examples/domain"
	"facets_backend/internal/feature/examples/domain/entity"
)

const msgRequired = "This field is required."

// ExampleRepository はExampleエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ExampleRepository interface {
	// Create は新しいレコードを永続化し、採番されたIDをeに設定します。
	Create(ctx context.Context, e *entity.Example) error

	// FindByID はIDでレコードを取得します。
	// 存在しない場合、domain.ErrExampleNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Example, error)

	// FindForUpdate は更新前の読み込み用にIDでレコードを取得します。
	// キャッシュを挟む実装でも必ずストアから読みます。
	FindForUpdate(ctx context.Context, id uint) (*entity.Example, error)

	// List はデフォルトの並び順で条件に一致するレコードを返します。
	List(ctx context.Context, filter ListFilter, page Page) ([]entity.Example, error)

	// Count は条件に一致するレコード数を返します。
	Count(ctx context.Context, filter ListFilter) (int64, error)

	// Save は可変フィールド（name, description, is_active, updated_at）を書き戻します。
	// 存在しない場合、domain.ErrExampleNotFoundを返します。
	Save(ctx context.Context, e *entity.Example) error

	// Delete はレコードを物理削除します。
	// 存在しない場合、domain.ErrExampleNotFoundを返します。
	Delete(ctx context.Context, id uint) error
}

// Option はexampleUsecaseの設定を変更します。
type Option func(*exampleUsecase)

// WithClock はタイムスタンプに使用する時刻関数を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(u *exampleUsecase) {
		if now != nil {
			u.now = now
		}
	}
}

// exampleUsecase はExampleリソースのCRUDとカスタム操作を実装します。
type exampleUsecase struct {
	repo ExampleRepository
	now  func() time.Time
}

// NewExampleUsecase はexampleUsecaseの新しいインスタンスを生成します。
func NewExampleUsecase(repo ExampleRepository, opts ...Option) *exampleUsecase {
	u := &exampleUsecase{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// List はフィルタ条件に一致するレコードの1ページ分と総件数を返します。
// 範囲外のページ番号はdomain.ErrInvalidPageになります。1ページ目は0件でも有効です。
func (u *exampleUsecase) List(ctx context.Context, filter ListFilter, req PageRequest) (ListResult, error) {
	total, err := u.repo.Count(ctx, filter)
	if err != nil {
		return ListResult{}, err
	}

	page := Page{}
	res := ListResult{Total: total, Number: 1, NumPages: 1}
	if req.Size > 0 {
		res.NumPages = numPages(total, req.Size)
		res.Number = req.Number
		if res.Number == LastPage {
			res.Number = res.NumPages
		}
		if res.Number < 1 || res.Number > res.NumPages {
			return ListResult{}, domain.ErrInvalidPage
		}
		page = Page{Limit: req.Size, Offset: (res.Number - 1) * req.Size}
	}

	items, err := u.repo.List(ctx, filter, page)
	if err != nil {
		return ListResult{}, err
	}
	res.Items = items
	return res, nil
}

func numPages(total int64, size int) int {
	n := int((total + int64(size) - 1) / int64(size))
	if n < 1 {
		return 1
	}
	return n
}

// Active は一覧と同じフィルタに is_active = true を加えた結果を全件返します。
func (u *exampleUsecase) Active(ctx context.Context, filter ListFilter) ([]entity.Example, error) {
	filter.ActiveOnly = true
	return u.repo.List(ctx, filter, Page{})
}

// Get はIDで1件取得します。
func (u *exampleUsecase) Get(ctx context.Context, id uint) (*entity.Example, error) {
	return u.repo.FindByID(ctx, id)
}

// Create はバリデーション後に新しいレコードを作成します。
// バリデーションエラーの場合は何も永続化しません。
func (u *exampleUsecase) Create(ctx context.Context, changes ExampleChanges) (*entity.Example, error) {
	e := &entity.Example{IsActive: true}
	if err := applyChanges(e, changes, true); err != nil {
		return nil, err
	}
	e.Stamp(u.now())

	if err := u.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create example: %w", err)
	}
	return e, nil
}

// Update はPUT相当の更新です。nameは必須です。
func (u *exampleUsecase) Update(ctx context.Context, id uint, changes ExampleChanges) (*entity.Example, error) {
	return u.modify(ctx, id, func(e *entity.Example) error {
		return applyChanges(e, changes, true)
	})
}

// PartialUpdate はPATCH相当の更新です。指定されたフィールドのみ検証・反映します。
func (u *exampleUsecase) PartialUpdate(ctx context.Context, id uint, changes ExampleChanges) (*entity.Example, error) {
	return u.modify(ctx, id, func(e *entity.Example) error {
		return applyChanges(e, changes, false)
	})
}

// ToggleActive はis_activeを反転して保存します。
func (u *exampleUsecase) ToggleActive(ctx context.Context, id uint) (*entity.Example, error) {
	return u.modify(ctx, id, func(e *entity.Example) error {
		e.IsActive = !e.IsActive
		return nil
	})
}

// Delete はレコードを物理削除します。存在しないIDはエラーになります。
func (u *exampleUsecase) Delete(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}

// Stats は総件数・有効件数・無効件数を返します。フィルタは適用しません。
// 無効件数は独立したクエリではなく total - active で算出します。
func (u *exampleUsecase) Stats(ctx context.Context) (Stats, error) {
	total, err := u.repo.Count(ctx, ListFilter{})
	if err != nil {
		return Stats{}, err
	}
	active, err := u.repo.Count(ctx, ListFilter{ActiveOnly: true})
	if err != nil {
		return Stats{}, err
	}
	return Stats{Total: total, Active: active, Inactive: total - active}, nil
}

// modify は読み込み→変更→保存を1回だけ行います。
// Saveは可変フィールドをすべて書き戻すため、読み込みはFindForUpdateで行います。
func (u *exampleUsecase) modify(ctx context.Context, id uint, mutate func(*entity.Example) error) (*entity.Example, error) {
	e, err := u.repo.FindForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(e); err != nil {
		return nil, err
	}
	e.Touch(u.now())

	if err := u.repo.Save(ctx, e); err != nil {
		if errors.Is(err, domain.ErrExampleNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save example %d: %w", id, err)
	}
	return e, nil
}

// applyChanges は指定されたフィールドを検証し、問題がなければeに反映します。
// エラーがある場合、eは変更されません。
func applyChanges(e *entity.Example, changes ExampleChanges, requireName bool) error {
	verr := domain.NewValidationError()

	var name string
	if changes.Name != nil {
		n, err := entity.NormalizeName(*changes.Name)
		if err != nil {
			verr.Add("name", err.Error())
		}
		name = n
	} else if requireName {
		verr.Add("name", msgRequired)
	}

	if err := verr.OrNil(); err != nil {
		return err
	}

	if changes.Name != nil {
		e.Name = name
	}
	if changes.Description != nil {
		e.Description = strings.TrimSpace(*changes.Description)
	}
	if changes.IsActive != nil {
		e.IsActive = *changes.IsActive
	}
	return nil
}
