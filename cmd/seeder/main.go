// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/aeroparts-be/internal/adapters/db"
	"github.com/ammerola/aeroparts-be/internal/core/domain"
	"github.com/ammerola/aeroparts-be/internal/pkg/config"
	"github.com/ammerola/aeroparts-be/internal/pkg/logger"
)

// catalogPart is a template for generated inventory
type catalogPart struct {
	PartNumber  string
	Description string
	Condition   string
	BaseCost    float64
}

var catalog = []catalogPart{
	{"3214552-3", "Fuel control unit", "OH", 18450},
	{"2315M20-3", "Main landing gear wheel assembly", "SV", 6200},
	{"066-50008-0101", "Weather radar receiver/transmitter", "OH", 23800},
	{"1152682-2", "APU starter generator", "SV", 12750},
	{"822-1293-002", "Multi-mode receiver", "NE", 31200},
	{"C20195000", "Brake assembly", "OH", 9400},
	{"65-90305-17", "Hydraulic pump, engine driven", "AR", 7300},
	{"2117608-16", "Bleed air valve", "SV", 4150},
	{"4052508-971", "Air data computer", "OH", 15600},
	{"D23189000-5", "Integrated drive generator", "RP", 28900},
}

var locations = []string{"MIA-DEPOT-A3", "DFW-DEPOT-B1", "ORD-DEPOT-C7", "SEA-DEPOT-A1"}

// seedStates are the states generated items may start in, each reachable from the initial state
var seedStates = []domain.StatusPair{
	domain.InitialStatus,
	{Physical: domain.PhysicalDepot, Business: domain.BusinessReserved},
	{Physical: domain.PhysicalInRepair, Business: domain.BusinessAvailable},
	{Physical: domain.PhysicalInTransit, Business: domain.BusinessSold},
}

func main() {
	// Parse flags
	var (
		count    = flag.Int("count", 50, "Number of inventory items to create")
		mixed    = flag.Bool("mixed", false, "Spread items across reachable status combinations")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "Random seed for reproducible data")
		logLevel = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun   = flag.Bool("dry-run", false, "Preview changes without modifying database")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "json")

	cfg, err := config.LoadFromEnvironment(context.Background(), slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	items, err := generateItems(rand.New(rand.NewSource(*seed)), *count, *mixed)
	if err != nil {
		slogger.Error("failed to generate items", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *dryRun {
		for _, item := range items {
			fmt.Printf("%s  %-16s %-36s %s\n", item.InventoryID, item.PartNumber, item.Description, item.Status())
		}
		fmt.Println("\n[DRY RUN] No changes were made to the database")
		return
	}

	ctx := context.Background()

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     4,
		MinConnections:     1,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
	}, slogger.Logger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	repo := db.NewInventoryRepository(database, slogger.Logger)

	created := 0
	for i := range items {
		if err := repo.Create(ctx, &items[i]); err != nil {
			slogger.Error("failed to create item",
				slog.String("part_number", items[i].PartNumber),
				slog.String("error", err.Error()))
			continue
		}
		created++
	}

	// Summary
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SEEDING OPERATION SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Items requested: %d\n", len(items))
	fmt.Printf("Items created:   %d\n", created)

	slogger.Info("seed operation completed",
		slog.Int("items_created", created),
		slog.Int("items_failed", len(items)-created))

	if created < len(items) {
		os.Exit(1)
	}
}

func generateItems(rng *rand.Rand, count int, mixed bool) ([]domain.InventoryItem, error) {
	items := make([]domain.InventoryItem, 0, count)

	for i := 0; i < count; i++ {
		part := catalog[rng.Intn(len(catalog))]

		status := domain.InitialStatus
		if mixed {
			status = seedStates[rng.Intn(len(seedStates))]
			if err := domain.ValidateTransition(domain.InitialStatus, status); err != nil {
				return nil, err
			}
		}

		// +/- 15% around the catalog cost
		factor := 0.85 + rng.Float64()*0.3
		item := domain.InventoryItem{
			PartNumber:     part.PartNumber,
			SerialNumber:   fmt.Sprintf("SN-%06d", rng.Intn(1_000_000)),
			Description:    part.Description,
			Condition:      part.Condition,
			Quantity:       1,
			UnitCost:       decimal.NewFromFloat(part.BaseCost * factor).Round(2),
			Location:       locations[rng.Intn(len(locations))],
			PhysicalStatus: status.Physical,
			BusinessStatus: status.Business,
		}

		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("generated item %d: %w", i, err)
		}
		item.PrepareForStorage()

		items = append(items, item)
	}

	return items, nil
}
