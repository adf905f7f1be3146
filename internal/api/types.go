// Package api はHTTP APIのリクエスト/レスポンス型とパラメータバインディングを提供します。
package api

import "time"

// timestampLayout はマイクロ秒精度のRFC 3339形式です。
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// FormatTimestamp はUTCのRFC 3339文字列を返します。
// マイクロ秒が0の場合は秒までで出力します。
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(time.RFC3339)
	}
	return t.Format(timestampLayout)
}

// ExampleDetail はExampleの完全な表現です。
type ExampleDetail struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	IsActive    bool   `json:"is_active"`
}

// ExampleSummary は一覧用の簡略表現です。
type ExampleSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// ExamplePage はページネーションされた一覧レスポンスです。
type ExamplePage struct {
	Count    int64            `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []ExampleSummary `json:"results"`
}

// ExampleStats は集計レスポンスです。
type ExampleStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// ExampleWrite は書き込みリクエストのドキュメント用スキーマです。
// 実際のデコードはフィールドの有無を区別するため生のJSONマップで行います。
type ExampleWrite struct {
	Name        string `json:"name" example:"My example"`
	Description string `json:"description" example:"details"`
	IsActive    bool   `json:"is_active" example:"true"`
}

// ErrorDetail は{"detail": "..."}形式のエラーレスポンスです。
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// FieldErrors はフィールド名からエラーメッセージ一覧へのマップです。
type FieldErrors map[string][]string

// HealthResponse はヘルスチェックのレスポンスです。
type HealthResponse struct {
	Status string `json:"status"`
}

// Standard error details.
const (
	DetailNotFound    = "Not found."
	DetailInvalidPage = "Invalid page."
	DetailServerError = "A server error occurred."
	DetailAuthMissing = "Authentication credentials were not provided."
	DetailAuthInvalid = "Given token not valid for any token type"
	DetailThrottled   = "Request was throttled."
)
