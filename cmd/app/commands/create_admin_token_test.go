package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authService "github.com/allisson/catalog/internal/auth/service"
)

type failingTokenService struct {
	authService.AdminTokenService
}

func (f *failingTokenService) Generate() (string, string, error) {
	return "", "", errors.New("entropy exhausted")
}

func TestRunCreateAdminToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokenService := authService.NewAdminTokenService()

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunCreateAdminToken(tokenService, logger, &out, "text"))
		assert.Contains(t, out.String(), "TOKEN=\"")
		assert.Contains(t, out.String(), "ADMIN_TOKEN_HASH='$argon2id$")
	})

	t.Run("json-hash-verifies-token", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunCreateAdminToken(tokenService, logger, &out, "json"))

		var result adminTokenOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Len(t, result.Token, 43)
		assert.True(t, tokenService.Verify(result.Token, result.TokenHash))
	})

	t.Run("invalid-format", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCreateAdminToken(tokenService, logger, &out, "yaml")
		require.Error(t, err)
		assert.Empty(t, out.String())
	})

	t.Run("generate-error", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCreateAdminToken(&failingTokenService{}, logger, &out, "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to generate admin token")
	})
}
