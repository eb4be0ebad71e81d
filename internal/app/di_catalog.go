package app

import (
	"fmt"

	catalogHTTP "github.com/allisson/catalog/internal/catalog/http"
	catalogRepository "github.com/allisson/catalog/internal/catalog/repository"
	catalogUseCase "github.com/allisson/catalog/internal/catalog/usecase"
	"github.com/allisson/catalog/internal/database"
)

// ProductRepository returns the product repository for the configured driver.
func (c *Container) ProductRepository() (catalogUseCase.ProductRepository, error) {
	var err error
	c.productRepoInit.Do(func() {
		c.productRepo, err = c.initProductRepository()
		if err != nil {
			c.setInitError("productRepo", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("productRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.productRepo, nil
}

// CategoryRepository returns the category repository for the configured driver.
func (c *Container) CategoryRepository() (catalogUseCase.CategoryRepository, error) {
	var err error
	c.categoryRepoInit.Do(func() {
		c.categoryRepo, err = c.initCategoryRepository()
		if err != nil {
			c.setInitError("categoryRepo", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("categoryRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.categoryRepo, nil
}

// MaterialRepository returns the material repository for the configured driver.
func (c *Container) MaterialRepository() (catalogUseCase.MaterialRepository, error) {
	var err error
	c.materialRepoInit.Do(func() {
		c.materialRepo, err = c.initMaterialRepository()
		if err != nil {
			c.setInitError("materialRepo", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("materialRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.materialRepo, nil
}

// StatisticsRepository returns the statistics repository.
func (c *Container) StatisticsRepository() (catalogUseCase.StatisticsRepository, error) {
	var err error
	c.statisticsRepoInit.Do(func() {
		c.statisticsRepo, err = c.initStatisticsRepository()
		if err != nil {
			c.setInitError("statisticsRepo", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("statisticsRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.statisticsRepo, nil
}

// ProductUseCase returns the product use case, wrapped with metrics when enabled.
func (c *Container) ProductUseCase() (catalogUseCase.ProductUseCase, error) {
	var err error
	c.productUseCaseInit.Do(func() {
		c.productUseCase, err = c.initProductUseCase()
		if err != nil {
			c.setInitError("productUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("productUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.productUseCase, nil
}

// CategoryUseCase returns the category use case.
func (c *Container) CategoryUseCase() (catalogUseCase.CategoryUseCase, error) {
	var err error
	c.categoryUseCaseInit.Do(func() {
		var repo catalogUseCase.CategoryRepository
		repo, err = c.CategoryRepository()
		if err != nil {
			err = fmt.Errorf("failed to get category repository for category use case: %w", err)
			c.setInitError("categoryUseCase", err)
			return
		}
		c.categoryUseCase = catalogUseCase.NewCategoryUseCase(repo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("categoryUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.categoryUseCase, nil
}

// MaterialUseCase returns the material use case.
func (c *Container) MaterialUseCase() (catalogUseCase.MaterialUseCase, error) {
	var err error
	c.materialUseCaseInit.Do(func() {
		var repo catalogUseCase.MaterialRepository
		repo, err = c.MaterialRepository()
		if err != nil {
			err = fmt.Errorf("failed to get material repository for material use case: %w", err)
			c.setInitError("materialUseCase", err)
			return
		}
		c.materialUseCase = catalogUseCase.NewMaterialUseCase(repo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("materialUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.materialUseCase, nil
}

// Seeder returns the sample data seeder.
func (c *Container) Seeder() (*catalogUseCase.Seeder, error) {
	var err error
	c.seederInit.Do(func() {
		c.seeder, err = c.initSeeder()
		if err != nil {
			c.setInitError("seeder", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("seeder"); storedErr != nil {
		return nil, storedErr
	}
	return c.seeder, nil
}

// ProductHandler returns the product HTTP handler.
func (c *Container) ProductHandler() (*catalogHTTP.ProductHandler, error) {
	var err error
	c.productHandlerInit.Do(func() {
		var useCase catalogUseCase.ProductUseCase
		useCase, err = c.ProductUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get product use case for product handler: %w", err)
			c.setInitError("productHandler", err)
			return
		}
		c.productHandler = catalogHTTP.NewProductHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("productHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.productHandler, nil
}

// ReferenceHandler returns the category and material HTTP handler.
func (c *Container) ReferenceHandler() (*catalogHTTP.ReferenceHandler, error) {
	var err error
	c.referenceHandlerInit.Do(func() {
		c.referenceHandler, err = c.initReferenceHandler()
		if err != nil {
			c.setInitError("referenceHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("referenceHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.referenceHandler, nil
}

// initProductRepository selects the product repository based on the database driver.
func (c *Container) initProductRepository() (catalogUseCase.ProductRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for product repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return catalogRepository.NewMySQLProductRepository(db), nil
	case database.DriverPostgres:
		return catalogRepository.NewPostgreSQLProductRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initCategoryRepository() (catalogUseCase.CategoryRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for category repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return catalogRepository.NewMySQLCategoryRepository(db), nil
	case database.DriverPostgres:
		return catalogRepository.NewPostgreSQLCategoryRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initMaterialRepository() (catalogUseCase.MaterialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for material repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return catalogRepository.NewMySQLMaterialRepository(db), nil
	case database.DriverPostgres:
		return catalogRepository.NewPostgreSQLMaterialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initStatisticsRepository builds the statistics repository; its queries are
// portable across both drivers.
func (c *Container) initStatisticsRepository() (catalogUseCase.StatisticsRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for statistics repository: %w", err)
	}
	return catalogRepository.NewStatisticsRepository(db), nil
}

// initProductUseCase creates the product use case with all its dependencies.
// A missing SKU key fails here, which keeps the server from starting.
func (c *Container) initProductUseCase() (catalogUseCase.ProductUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for product use case: %w", err)
	}

	productRepo, err := c.ProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get product repository for product use case: %w", err)
	}

	categoryRepo, err := c.CategoryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get category repository for product use case: %w", err)
	}

	materialRepo, err := c.MaterialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get material repository for product use case: %w", err)
	}

	statisticsRepo, err := c.StatisticsRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics repository for product use case: %w", err)
	}

	codec, err := c.SKUCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get sku codec for product use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for product use case: %w", err)
	}

	baseUseCase := catalogUseCase.NewProductUseCase(
		txManager,
		productRepo,
		categoryRepo,
		materialRepo,
		statisticsRepo,
		codec,
		businessMetrics,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		return catalogUseCase.NewProductUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initSeeder() (*catalogUseCase.Seeder, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for seeder: %w", err)
	}

	categoryRepo, err := c.CategoryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get category repository for seeder: %w", err)
	}

	materialRepo, err := c.MaterialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get material repository for seeder: %w", err)
	}

	productUseCase, err := c.ProductUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get product use case for seeder: %w", err)
	}

	return catalogUseCase.NewSeeder(txManager, categoryRepo, materialRepo, productUseCase), nil
}

func (c *Container) initReferenceHandler() (*catalogHTTP.ReferenceHandler, error) {
	categoryUseCase, err := c.CategoryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get category use case for reference handler: %w", err)
	}

	materialUseCase, err := c.MaterialUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get material use case for reference handler: %w", err)
	}

	return catalogHTTP.NewReferenceHandler(categoryUseCase, materialUseCase, c.Logger()), nil
}
