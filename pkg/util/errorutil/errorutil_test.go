package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorKeepsDomainErrors(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewUnknownCase("abc"))

	domainErr := ToDomainError(err)
	require.Equal(t, CodeUnknownCase, domainErr.Code)
	require.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	require.True(t, errors.Is(err, NewUnknownCase("other")))
}

func TestToDomainErrorHidesForeignErrors(t *testing.T) {
	domainErr := ToDomainError(errors.New("connection refused"))
	require.Equal(t, CodeServerError, domainErr.Code)
	require.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	require.Equal(t, "internal server error", domainErr.Message)
}

func TestToDomainErrorMapsFiberErrors(t *testing.T) {
	tests := []struct {
		err    *fiber.Error
		code   string
		status int
	}{
		{fiber.ErrUnauthorized, CodeAuth, http.StatusUnauthorized},
		{fiber.ErrTooManyRequests, CodeBadRequest, http.StatusTooManyRequests},
		{fiber.ErrNotFound, CodeBadRequest, http.StatusNotFound},
		{fiber.ErrBadGateway, CodeServerError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		domainErr := ToDomainError(tt.err)
		require.Equal(t, tt.code, domainErr.Code, tt.err.Message)
		require.Equal(t, tt.status, domainErr.HTTPStatus, tt.err.Message)
	}
}

func TestToDomainErrorNil(t *testing.T) {
	require.Nil(t, ToDomainError(nil))
}
