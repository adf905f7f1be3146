package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/gin-gonic/gin/binding"

	"facets_backend/internal/feature/examples/domain"
	"facets_backend/internal/feature/examples/domain/entity"
	"facets_backend/internal/feature/examples/usecase"
)

// Field error messages.
const (
	MsgRequired       = "This field is required."
	MsgNull           = "This field may not be null."
	MsgInvalidString  = "Not a valid string."
	MsgInvalidBoolean = "Must be a valid boolean."
)

var (
	trueValues  = map[string]bool{"t": true, "T": true, "y": true, "Y": true, "yes": true, "Yes": true, "YES": true, "true": true, "True": true, "TRUE": true, "on": true, "On": true, "ON": true, "1": true}
	falseValues = map[string]bool{"f": true, "F": true, "n": true, "N": true, "no": true, "No": true, "NO": true, "false": true, "False": true, "FALSE": true, "off": true, "Off": true, "OFF": true, "0": true}
)

// ParseError はリクエストボディがJSONとして解釈できない場合のエラーです。
type ParseError struct {
	cause error
}

// NewParseError はcauseをラップしたParseErrorを生成します。
func NewParseError(cause error) *ParseError {
	return &ParseError{cause: cause}
}

func (e *ParseError) Error() string {
	return "JSON parse error - " + e.cause.Error()
}

func (e *ParseError) Unwrap() error { return e.cause }

// DecodeExampleChanges は書き込みリクエストのボディを検証し、指定されたフィールドだけを返します。
// 空のボディは{}として扱います。id/created_at/updated_atと未知のフィールドは無視します。
// requireNameがtrueの場合、nameの欠落はフィールドエラーになります。
//
// 返すエラーは*ParseErrorまたは*domain.ValidationErrorです。
func DecodeExampleChanges(body []byte, requireName bool) (usecase.ExampleChanges, error) {
	var changes usecase.ExampleChanges

	fields, err := decodeObject(body)
	if err != nil {
		return changes, err
	}

	verr := domain.NewValidationError()

	if raw, ok := fields["name"]; ok {
		s, msg := decodeString(raw)
		if msg == "" {
			if _, nerr := entity.NormalizeName(s); nerr != nil {
				msg = nerr.Error()
			}
		}
		if msg != "" {
			verr.Add("name", msg)
		} else {
			changes.Name = &s
		}
	} else if requireName {
		verr.Add("name", MsgRequired)
	}

	if raw, ok := fields["description"]; ok {
		s, msg := decodeString(raw)
		if msg != "" {
			verr.Add("description", msg)
		} else {
			changes.Description = &s
		}
	}

	if raw, ok := fields["is_active"]; ok {
		b, msg := decodeBool(raw)
		if msg != "" {
			verr.Add("is_active", msg)
		} else {
			changes.IsActive = &b
		}
	}

	if err := verr.OrNil(); err != nil {
		return usecase.ExampleChanges{}, err
	}
	return changes, nil
}

// decodeObject はボディをトップレベルのJSONオブジェクトとして読み込みます。
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var probe any
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, &ParseError{cause: err}
	}

	if _, ok := probe.(map[string]any); !ok {
		verr := domain.NewValidationError()
		verr.Add(domain.NonFieldErrorsKey,
			fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", jsonTypeName(trimmed)))
		return nil, verr
	}

	fields := map[string]json.RawMessage{}
	if err := binding.JSON.BindBody(trimmed, &fields); err != nil {
		return nil, &ParseError{cause: err}
	}
	return fields, nil
}

// jsonTypeName は非オブジェクト値の型名をエラーメッセージ用に返します。
func jsonTypeName(v []byte) string {
	switch v[0] {
	case '[':
		return "list"
	case '"':
		return "str"
	case 't', 'f':
		return "bool"
	case 'n':
		return "NoneType"
	default:
		if bytes.ContainsAny(v, ".eE") {
			return "float"
		}
		return "int"
	}
}

// decodeValue はJSON値を汎用型に変換します。数値はjson.Numberのまま保持します。
func decodeValue(raw json.RawMessage) any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	_ = dec.Decode(&v)
	return v
}

// decodeString は文字列フィールドを前後の空白を除いて返します。
// 数値は文字列表現として受け付けます。
func decodeString(raw json.RawMessage) (string, string) {
	switch v := decodeValue(raw).(type) {
	case nil:
		return "", MsgNull
	case string:
		return strings.TrimSpace(v), ""
	case json.Number:
		return v.String(), ""
	default:
		return "", MsgInvalidString
	}
}

// decodeBool は真偽値フィールドを解釈します。"yes"/"off"や1/0などの表現も受け付けます。
func decodeBool(raw json.RawMessage) (bool, string) {
	switch v := decodeValue(raw).(type) {
	case nil:
		return false, MsgNull
	case bool:
		return v, ""
	case string:
		if trueValues[v] {
			return true, ""
		}
		if falseValues[v] {
			return false, ""
		}
	case json.Number:
		f, err := v.Float64()
		if err == nil && !math.IsNaN(f) {
			if f == 1 {
				return true, ""
			}
			if f == 0 {
				return false, ""
			}
		}
	}
	return false, MsgInvalidBoolean
}
