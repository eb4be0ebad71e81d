package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	catalogUseCase "github.com/allisson/catalog/internal/catalog/usecase"
)

// Seeder is the part of the catalog seeder the seed command needs.
type Seeder interface {
	Seed(ctx context.Context) (*catalogUseCase.SeedResult, error)
}

type seedOutput struct {
	Skipped    bool `json:"skipped"`
	Categories int  `json:"categories"`
	Materials  int  `json:"materials"`
	Products   int  `json:"products"`
}

// RunSeed loads the sample catalog. An already populated catalog is left untouched.
//
// Requirements: Database must be migrated and SKU_ENCRYPTION_KEY configured.
func RunSeed(
	ctx context.Context,
	seeder Seeder,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	result, err := seeder.Seed(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	output := seedOutput{
		Skipped:    result.Skipped,
		Categories: result.Categories,
		Materials:  result.Materials,
		Products:   result.Products,
	}

	if format == "json" {
		if err := writeJSON(writer, output); err != nil {
			return err
		}
	} else if output.Skipped {
		_, _ = fmt.Fprintln(writer, "Catalog already has data, nothing seeded")
	} else {
		_, _ = fmt.Fprintf(writer, "Seeded %d categories, %d materials and %d products\n",
			output.Categories, output.Materials, output.Products)
	}

	logger.Info("seed completed",
		slog.Bool("skipped", output.Skipped),
		slog.Int("products", output.Products),
	)

	return nil
}
