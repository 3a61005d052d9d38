package shared_test

import (
	"agenda/shared"
	"agenda/shared/cache/mocks"
	"agenda/shared/constant"
	"agenda/shared/dto"
	"agenda/shared/failure"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric true", input: "1", expected: boolPtr(true)},
		{name: "upper false", input: "FALSE", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Name      string `db:"name"`
		Specialty string `db:"specialty"`
		Active    *bool  `db:"active"`
		Ignored   string
	}

	fields := shared.TransformFields(update{Name: "Dr. Ana", Active: boolPtr(false), Ignored: "x"})

	assert.Equal(t, "Dr. Ana", fields["name"])
	assert.Equal(t, false, fields["active"])
	assert.NotContains(t, fields, "specialty")
	assert.NotContains(t, fields, "Ignored")
	assert.IsType(t, time.Time{}, fields[constant.FieldUpdatedAt])
}

func TestParseID(t *testing.T) {
	id, err := shared.ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, value := range []string{"", "0", "-3", "abc", "4.2"} {
		_, err := shared.ParseID(value)
		assert.True(t, failure.IsKind(err, http.StatusBadRequest), value)
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID(int64(42), "id", "schedules")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(schedules.id = :id)", where)
	assert.Equal(t, map[string]any{"id": int64(42)}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "doctor:get", shared.BuildCacheKey("doctor:get"))
	assert.Equal(t, "doctor:get:7", shared.BuildCacheKey("doctor:get", 7))
	assert.Equal(t, "doctor:availability:7:2025-05-01", shared.BuildCacheKey("doctor:availability", 7, "2025-05-01"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: "active", Value: true, Operator: dto.FilterOperatorEq}},
	}

	first := shared.BuildCacheKeyWithQuery("doctor:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("doctor:gets", params, filter)
	other := shared.BuildCacheKeyWithQuery("doctor:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)

	assert.True(t, strings.HasPrefix(first, "doctor:gets:"))
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "doctor:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "doctor:gets")

	redisCache.EXPECT().Clear(gomock.Any(), "doctor:get*").Return(errors.New("redis down"))
	require.NotPanics(t, func() {
		shared.InvalidateCaches(context.Background(), redisCache, "doctor:get")
	})
}

func boolPtr(b bool) *bool {
	return &b
}
