package main

import (
	"context" // Seed writes
	"flag"    // Command line flags

	"github.com/sirupsen/logrus" // Logging library

	"house_management/internal/config"               // Custom import path (Config)
	"house_management/internal/domain"               // Tariff
	"house_management/internal/tablestore/gormstore" // MySQL tables
	"house_management/internal/tree"                 // Seed data
)

// Main entry point for migration
func main() {
	seed := flag.Bool("seed", false, "insert the sample buildings, residents and accounts")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration

	db, err := gormstore.Open(gormstore.DSN(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err != nil {
		logrus.Fatal(err) // Log fatal error if connection fails
	}
	if err := gormstore.Migrate(db); err != nil {
		logrus.Fatal(err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration

	if !*seed {
		return
	}
	tariff := domain.Tariff{WaterUnitPrice: cfg.WaterUnitPrice, ElectricityUnitPrice: cfg.ElectricUnitPrice}
	if err := gormstore.New(db).Seed(context.Background(), tree.Seed(tariff).Snapshot()); err != nil {
		logrus.Fatalf("seeding failed: %v", err)
	}
	logrus.Info("Seed data inserted.")
}
