// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/customer"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/size"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/supplier"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/variety"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/storage/postgres"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/logger"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("HORTITRACK_DATABASE_URL")
	if dbURL == "" {
		log.Fatal("HORTITRACK_DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	num := numerator.New(pool)

	varieties := variety.NewService(catalog_repo.NewVarietyRepo(txManager), txManager, num)
	sizes := size.NewService(catalog_repo.NewSizeRepo(txManager), txManager, num)
	suppliers := supplier.NewService(catalog_repo.NewSupplierRepo(txManager), txManager, num)
	customers := customer.NewService(catalog_repo.NewCustomerRepo(txManager), txManager, num)

	if err := seedVarieties(ctx, varieties, log); err != nil {
		log.Fatalw("failed to seed varieties", "error", err)
	}
	if err := seedSizes(ctx, sizes, log); err != nil {
		log.Fatalw("failed to seed sizes", "error", err)
	}
	if err := seedSuppliers(ctx, suppliers, log); err != nil {
		log.Fatalw("failed to seed suppliers", "error", err)
	}
	if err := seedCustomers(ctx, customers, log); err != nil {
		log.Fatalw("failed to seed customers", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedVarieties(ctx context.Context, svc *variety.Service, log *logger.Logger) error {
	items := []struct {
		code, name, genus string
	}{
		{"VAR-00001", "Erica carnea 'Challenger'", "Erica"},
		{"VAR-00002", "Erica darleyensis 'Kramer's Rote'", "Erica"},
		{"VAR-00003", "Calluna vulgaris 'Garden Girls'", "Calluna"},
		{"VAR-00004", "Hebe 'Donna Lena'", "Hebe"},
		{"VAR-00005", "Lavandula angustifolia 'Hidcote'", "Lavandula"},
	}

	for _, item := range items {
		if _, err := svc.GetByCode(ctx, item.code); err == nil {
			continue
		} else if !apperror.IsNotFound(err) {
			return err
		}
		v := variety.NewPlantVariety(item.code, item.name, item.genus)
		if err := svc.Create(ctx, v); err != nil {
			return err
		}
		log.Infow("seeded variety", "code", item.code, "name", item.name)
	}
	return nil
}

func seedSizes(ctx context.Context, svc *size.Service, log *logger.Logger) error {
	items := []struct {
		code, name    string
		containerType size.ContainerType
		cellMultiple  int
	}{
		{"SIZE-00001", "9cm Pot", size.ContainerPot, 0},
		{"SIZE-00002", "1L Pot", size.ContainerPot, 0},
		{"SIZE-00003", "2L Pot", size.ContainerPot, 0},
		{"SIZE-00004", "104 Cell Tray", size.ContainerTray, 104},
		{"SIZE-00005", "273 Cell Tray", size.ContainerTray, 273},
	}

	for _, item := range items {
		if _, err := svc.GetByCode(ctx, item.code); err == nil {
			continue
		} else if !apperror.IsNotFound(err) {
			return err
		}
		s := size.NewPlantSize(item.code, item.name, item.containerType)
		if item.cellMultiple > 0 {
			cells := item.cellMultiple
			s.CellMultiple = &cells
		}
		if err := svc.Create(ctx, s); err != nil {
			return err
		}
		log.Infow("seeded size", "code", item.code, "name", item.name)
	}
	return nil
}

func seedSuppliers(ctx context.Context, svc *supplier.Service, log *logger.Logger) error {
	items := []struct {
		code, name string
	}{
		{"SUP-00001", "Kernock Park Plants"},
		{"SUP-00002", "Sunnyside Young Plants"},
	}

	for _, item := range items {
		if _, err := svc.GetByCode(ctx, item.code); err == nil {
			continue
		} else if !apperror.IsNotFound(err) {
			return err
		}
		s := supplier.NewSupplier(item.code, item.name)
		if err := svc.Create(ctx, s); err != nil {
			return err
		}
		log.Infow("seeded supplier", "code", item.code, "name", item.name)
	}
	return nil
}

func seedCustomers(ctx context.Context, svc *customer.Service, log *logger.Logger) error {
	items := []struct {
		code, name string
	}{
		{"CUST-00001", "Garden Centre Group"},
		{"CUST-00002", "Roadside Farm Shop"},
	}

	for _, item := range items {
		if _, err := svc.GetByCode(ctx, item.code); err == nil {
			continue
		} else if !apperror.IsNotFound(err) {
			return err
		}
		c := customer.NewCustomer(item.code, item.name)
		if err := svc.Create(ctx, c); err != nil {
			return err
		}
		log.Infow("seeded customer", "code", item.code, "name", item.name)
	}
	return nil
}
