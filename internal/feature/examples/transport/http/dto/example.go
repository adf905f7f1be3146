// Package dto はexamplesフィーチャーのエンティティとAPI表現の変換を行います。
package dto

import (
	"net/http"
	"net/url"
	"strconv"

	"facets_backend/internal/api"
	"facets_backend/internal/feature/examples/domain/entity"
	"facets_backend/internal/feature/examples/usecase"
)

// ToDetail はエンティティを完全な表現に変換します。
func ToDetail(e *entity.Example) api.ExampleDetail {
	return api.ExampleDetail{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		CreatedAt:   api.FormatTimestamp(e.CreatedAt),
		UpdatedAt:   api.FormatTimestamp(e.UpdatedAt),
		IsActive:    e.IsActive,
	}
}

// ToSummaries はエンティティ一覧を一覧用表現に変換します。結果は常に非nilです。
func ToSummaries(items []entity.Example) []api.ExampleSummary {
	out := make([]api.ExampleSummary, 0, len(items))
	for _, e := range items {
		out = append(out, api.ExampleSummary{
			ID:        e.ID,
			Name:      e.Name,
			IsActive:  e.IsActive,
			CreatedAt: api.FormatTimestamp(e.CreatedAt),
		})
	}
	return out
}

// ToPage は一覧結果をページネーションのエンベロープに変換します。
// next/previousはリクエストURLのpageパラメータを差し替えた絶対URLです。
func ToPage(res usecase.ListResult, requestURL *url.URL) api.ExamplePage {
	page := api.ExamplePage{
		Count:   res.Total,
		Results: ToSummaries(res.Items),
	}
	if res.Number < res.NumPages {
		next := withPage(requestURL, res.Number+1)
		page.Next = &next
	}
	if res.Number > 1 {
		prev := withPage(requestURL, res.Number-1)
		page.Previous = &prev
	}
	return page
}

// ToStats は集計結果をレスポンスに変換します。
func ToStats(s usecase.Stats) api.ExampleStats {
	return api.ExampleStats{Total: s.Total, Active: s.Active, Inactive: s.Inactive}
}

// withPage はpageパラメータを差し替えたURLを返します。1ページ目はpageを省略します。
func withPage(u *url.URL, number int) string {
	cp := *u
	q := cp.Query()
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	cp.RawQuery = q.Encode()
	return cp.String()
}

// RequestURL はリクエストの絶対URLを組み立てます。
func RequestURL(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return &url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
	}
}
