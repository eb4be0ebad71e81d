package commands

import (
	"fmt"
	"io"
	"log/slog"

	authService "github.com/allisson/catalog/internal/auth/service"
)

type adminTokenOutput struct {
	Token     string `json:"token"`
	TokenHash string `json:"token_hash"`
}

// RunCreateAdminToken generates an admin bearer token and its Argon2id hash.
// The plain token is shown once; only ADMIN_TOKEN_HASH belongs in configuration.
func RunCreateAdminToken(
	tokenService authService.AdminTokenService,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	plainToken, tokenHash, err := tokenService.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate admin token: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, adminTokenOutput{Token: plainToken, TokenHash: tokenHash}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(writer, "# Admin Token")
		_, _ = fmt.Fprintln(writer, "# Send as \"Authorization: Bearer <token>\". It is not shown again.")
		_, _ = fmt.Fprintf(writer, "TOKEN=\"%s\"\n", plainToken)
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintln(writer, "# Add to your .env file or secrets manager")
		_, _ = fmt.Fprintf(writer, "ADMIN_TOKEN_HASH='%s'\n", tokenHash)
	}

	logger.Info("admin token generated")
	return nil
}
