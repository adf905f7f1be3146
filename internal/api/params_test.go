package api

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindExampleID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: "42", want: 42},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := BindExampleID(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindListExamplesParams(t *testing.T) {
	t.Parallel()

	t.Run("success: empty query", func(t *testing.T) {
		t.Parallel()

		p, err := BindListExamplesParams(url.Values{})
		require.NoError(t, err)
		assert.Nil(t, p.IsActive)
		assert.Nil(t, p.Name)
		assert.Nil(t, p.Page)
		assert.Nil(t, p.PageSize)
		assert.Nil(t, p.IsActiveFilter())
		assert.Equal(t, "", p.NameFilter())
	})

	t.Run("success: all parameters", func(t *testing.T) {
		t.Parallel()

		q, _ := url.ParseQuery("is_active=TRUE&name=Active&page=2&page_size=5")
		p, err := BindListExamplesParams(q)
		require.NoError(t, err)
		require.NotNil(t, p.IsActiveFilter())
		assert.True(t, *p.IsActiveFilter())
		assert.Equal(t, "Active", p.NameFilter())
		assert.Equal(t, 2, *p.Page)
		assert.Equal(t, 5, *p.PageSize)
	})

	t.Run("success: any other is_active value means false", func(t *testing.T) {
		t.Parallel()

		for _, v := range []string{"false", "0", "yes", ""} {
			p, err := BindListExamplesParams(url.Values{"is_active": {v}})
			require.NoError(t, err)
			require.NotNil(t, p.IsActiveFilter(), v)
			assert.False(t, *p.IsActiveFilter(), v)
		}
	})

	t.Run("success: repeated name uses the last value", func(t *testing.T) {
		t.Parallel()

		p, err := BindListExamplesParams(url.Values{"name": {"first", "second"}})
		require.NoError(t, err)
		assert.Equal(t, "second", p.NameFilter())
	})

	t.Run("success: page=last", func(t *testing.T) {
		t.Parallel()

		p, err := BindListExamplesParams(url.Values{"page": {"last"}})
		require.NoError(t, err)
		assert.Equal(t, LastPageNumber, *p.Page)
	})

	t.Run("success: malformed page_size is ignored", func(t *testing.T) {
		t.Parallel()

		p, err := BindListExamplesParams(url.Values{"page_size": {"many"}})
		require.NoError(t, err)
		assert.Nil(t, p.PageSize)
	})

	t.Run("failure: malformed page", func(t *testing.T) {
		t.Parallel()

		_, err := BindListExamplesParams(url.Values{"page": {"two"}})
		assert.ErrorIs(t, err, ErrInvalidPage)
	})
}

func TestBindExampleFilterParams(t *testing.T) {
	t.Parallel()

	params := BindExampleFilterParams(url.Values{"is_active": {""}, "name": {"a", "b"}, "page": {"abc"}})
	require.NotNil(t, params.IsActive)
	assert.Equal(t, "", *params.IsActive)
	assert.Equal(t, "b", params.NameFilter())
	assert.Nil(t, params.Page)
	assert.Nil(t, params.PageSize)

	empty := BindExampleFilterParams(url.Values{})
	assert.Nil(t, empty.IsActiveFilter())
	assert.Equal(t, "", empty.NameFilter())
}

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	jst := time.FixedZone("JST", 9*60*60)
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"whole seconds", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05Z"},
		{"microseconds", time.Date(2024, 1, 2, 3, 4, 5, 120000*1000, time.UTC), "2024-01-02T03:04:05.120000Z"},
		{"converted to UTC", time.Date(2024, 1, 2, 12, 0, 0, 0, jst), "2024-01-02T03:00:00Z"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatTimestamp(tt.in))
		})
	}
}
