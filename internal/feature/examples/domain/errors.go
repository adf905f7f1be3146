// Package domain defines domain-level errors for the examples feature.
package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrExampleNotFound は指定されたIDのレコードが存在しない場合に返されます。
var ErrExampleNotFound = errors.New("example not found")

// ErrInvalidPage は要求されたページ番号が範囲外の場合に返されます。
var ErrInvalidPage = errors.New("invalid page")

// NonFieldErrorsKey はフィールドに紐付かないバリデーションエラーのキーです。
const NonFieldErrorsKey = "non_field_errors"

// ValidationError はフィールド単位のバリデーションエラーを保持します。
// 何も永続化されていないことを呼び出し元に保証します。
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError は空のValidationErrorを生成します。
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add はフィールドにエラーメッセージを追加します。
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors はエラーが1件以上あるかを返します。
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns e when it carries errors, otherwise a nil error.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
