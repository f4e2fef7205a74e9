package handler

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/city-tourism-backend/internal/pkg/errors"
)

func queryCtx(t *testing.T, app *fiber.App, uri string) *fiber.Ctx {
	t.Helper()

	reqCtx := &fasthttp.RequestCtx{}
	reqCtx.Request.SetRequestURI(uri)

	c := app.AcquireCtx(reqCtx)
	t.Cleanup(func() { app.ReleaseCtx(c) })
	return c
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()

	t.Run("absent params defer to the defaults", func(t *testing.T) {
		limit, page, err := parsePagination(queryCtx(t, app, "/points"))
		require.NoError(t, err)
		assert.Equal(t, 0, limit)
		assert.Equal(t, 0, page)
	})

	t.Run("explicit values pass through", func(t *testing.T) {
		limit, page, err := parsePagination(queryCtx(t, app, "/points?limit=25&page=3"))
		require.NoError(t, err)
		assert.Equal(t, 25, limit)
		assert.Equal(t, 3, page)
	})

	t.Run("explicit zero is rejected", func(t *testing.T) {
		_, _, err := parsePagination(queryCtx(t, app, "/points?limit=0"))
		assert.ErrorIs(t, err, errors.ErrInvalidPagination)

		_, _, err = parsePagination(queryCtx(t, app, "/points?page=0"))
		assert.ErrorIs(t, err, errors.ErrInvalidPagination)
	})

	t.Run("negative and non-numeric values are rejected", func(t *testing.T) {
		_, _, err := parsePagination(queryCtx(t, app, "/points?limit=-5"))
		assert.ErrorIs(t, err, errors.ErrInvalidPagination)

		_, _, err = parsePagination(queryCtx(t, app, "/points?page=abc"))
		assert.ErrorIs(t, err, errors.ErrInvalidPagination)
	})
}
