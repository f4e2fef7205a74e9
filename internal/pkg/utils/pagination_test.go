package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/city-tourism-backend/internal/pkg/errors"
)

func TestNormalizePagination(t *testing.T) {
	t.Run("zero values take defaults", func(t *testing.T) {
		limit, page, err := NormalizePagination(0, 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultLimit, limit)
		assert.Equal(t, DefaultPage, page)
	})

	t.Run("explicit values pass through", func(t *testing.T) {
		limit, page, err := NormalizePagination(25, 3)
		require.NoError(t, err)
		assert.Equal(t, 25, limit)
		assert.Equal(t, 3, page)
	})

	t.Run("negative values are rejected", func(t *testing.T) {
		_, _, err := NormalizePagination(-1, 1)
		assert.ErrorIs(t, err, errors.ErrInvalidPagination)

		_, _, err = NormalizePagination(10, -2)
		assert.ErrorIs(t, err, errors.ErrInvalidPagination)
	})
}

func TestBuildPageLinks(t *testing.T) {
	t.Run("first page of many has only next", func(t *testing.T) {
		links := BuildPageLinks("/city-point-of-interest", 10, 1, 25)
		assert.Nil(t, links.Previous)
		require.NotNil(t, links.Next)
		assert.Equal(t, "/city-point-of-interest?limit=10&page=2", *links.Next)
	})

	t.Run("middle page has both", func(t *testing.T) {
		links := BuildPageLinks("/city-point-of-interest", 10, 2, 25)
		require.NotNil(t, links.Previous)
		require.NotNil(t, links.Next)
		assert.Equal(t, "/city-point-of-interest?limit=10&page=1", *links.Previous)
		assert.Equal(t, "/city-point-of-interest?limit=10&page=3", *links.Next)
	})

	t.Run("last page has only previous", func(t *testing.T) {
		links := BuildPageLinks("/city-point-of-interest", 10, 3, 25)
		assert.NotNil(t, links.Previous)
		assert.Nil(t, links.Next)
	})

	t.Run("exact boundary has no next", func(t *testing.T) {
		links := BuildPageLinks("/city-point-of-interest", 10, 2, 20)
		assert.Nil(t, links.Next)
	})

	t.Run("single page has neither", func(t *testing.T) {
		links := BuildPageLinks("/city-point-of-interest", 10, 1, 5)
		assert.Nil(t, links.Previous)
		assert.Nil(t, links.Next)
	})
}
