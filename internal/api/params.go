package api

import (
	"errors"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"
)

var (
	// ErrInvalidID はパスのidが正の整数でない場合に返されます。
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidPage はページ番号が整数として解釈できない場合に返されます。
	ErrInvalidPage = errors.New("invalid page")
)

// LastPageNumber は page=last を表す値です。
const LastPageNumber = -1

// ListExamplesParams は一覧・activeエンドポイントのクエリパラメータです。
type ListExamplesParams struct {
	// IsActive は指定された場合に小文字化して"true"と比較されます。
	IsActive *string
	Name     *string
	Page     *int
	PageSize *int
}

// BindExampleID はパスパラメータidを正の整数として解釈します。
func BindExampleID(raw string) (uint, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", raw, &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// BindListExamplesParams はクエリ文字列をListExamplesParamsに変換します。
// pageの形式エラーは呼び出し元で"Invalid page."として扱えるようエラーを返します。
// page_sizeの形式エラーは無視され、デフォルト値が使われます。
func BindListExamplesParams(query url.Values) (ListExamplesParams, error) {
	params := BindExampleFilterParams(query)

	if err := runtime.BindQueryParameter("form", true, false, "page_size", query, &params.PageSize); err != nil {
		params.PageSize = nil
	}
	if v := query.Get("page"); v == "last" {
		// "last"はページ数確定後に解決します
		last := LastPageNumber
		params.Page = &last
	} else if err := runtime.BindQueryParameter("form", true, false, "page", query, &params.Page); err != nil {
		return params, ErrInvalidPage
	}
	return params, nil
}

// BindExampleFilterParams はis_activeとnameのみをバインドします。
// どちらも文字列のため失敗しません。ページングしない一覧で使います。
func BindExampleFilterParams(query url.Values) ListExamplesParams {
	var params ListExamplesParams

	// 空文字や重複指定でも「指定あり」として扱います
	if err := runtime.BindQueryParameter("form", true, false, "is_active", query, &params.IsActive); err != nil || params.IsActive == nil {
		params.IsActive = lastValue(query, "is_active")
	}
	if err := runtime.BindQueryParameter("form", true, false, "name", query, &params.Name); err != nil || params.Name == nil {
		params.Name = lastValue(query, "name")
	}
	return params
}

// lastValue は同名パラメータが複数ある場合に最後の値を採用します。
func lastValue(query url.Values, name string) *string {
	vs := query[name]
	if len(vs) == 0 {
		return nil
	}
	v := vs[len(vs)-1]
	return &v
}

// IsActiveFilter はis_activeパラメータをフィルタ値に変換します。未指定ならnilです。
func (p ListExamplesParams) IsActiveFilter() *bool {
	if p.IsActive == nil {
		return nil
	}
	v := strings.ToLower(*p.IsActive) == "true"
	return &v
}

// NameFilter はnameパラメータを返します。未指定なら空文字です。
func (p ListExamplesParams) NameFilter() string {
	if p.Name == nil {
		return ""
	}
	return *p.Name
}
