package usecase

import "facets_backend/internal/feature/examples/domain/entity"

// ListFilter はクエリパラメータから組み立てられる検索条件です。
// 複数の条件はANDで結合されます。
type ListFilter struct {
	// IsActive が非nilの場合、is_active の完全一致で絞り込みます。
	IsActive *bool
	// Name が空でない場合、大文字小文字を区別しない部分一致で絞り込みます。
	Name string
	// ActiveOnly はIsActiveとは独立に is_active = true を追加します。
	ActiveOnly bool
}

// Page はLIMIT/OFFSETによるページ指定です。Limitが0以下なら全件を返します。
type Page struct {
	Limit  int
	Offset int
}

// ExampleChanges は書き込みリクエストで指定されたフィールドだけを保持します。
// nilのフィールドは「指定なし」を意味します。
type ExampleChanges struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// LastPage はPageRequest.Numberに指定すると最終ページを意味します。
const LastPage = -1

// PageRequest はページ番号（1始まり）とページサイズによる指定です。
// Sizeが0以下の場合はページングせず全件を1ページとして返します。
type PageRequest struct {
	Number int
	Size   int
}

// ListResult は一覧取得の結果と、ページングを無視した総件数です。
type ListResult struct {
	Items    []entity.Example
	Total    int64
	Number   int
	NumPages int
}

// Stats は集計エンドポイントのカウンタです。
type Stats struct {
	Total    int64
	Active   int64
	Inactive int64
}
