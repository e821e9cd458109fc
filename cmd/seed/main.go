package main

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"movibus/internal/buses"
	"movibus/internal/pricing"
	"movibus/internal/routes"
	"movibus/internal/shared/config"
	"movibus/internal/shared/database"
	"movibus/internal/trips"
	"movibus/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Movibus Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"cancellations",
		"seat_holds",
		"tickets",
		"fare_rules",
		"trips",
		"stops",
		"routes",
		"buses",
		"users",
	}

	gdb := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := gdb.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.seedFleet(); err != nil {
		return fmt.Errorf("failed to seed fleet: %w", err)
	}
	if err := s.seedRoutes(); err != nil {
		return fmt.Errorf("failed to seed routes: %w", err)
	}
	if err := s.seedTrips(); err != nil {
		return fmt.Errorf("failed to seed trips: %w", err)
	}
	if err := s.seedFareRules(); err != nil {
		return fmt.Errorf("failed to seed fare rules: %w", err)
	}
	return nil
}

func (s *Seeder) seedUsers() error {
	demoUsers := []users.User{
		{FirstName: "Admin", LastName: "Movibus", Document: "CC-1000000001", Email: "admin@movibus.co", Role: users.RoleAdmin, Category: users.CategoryGeneral},
		{FirstName: "Camila", LastName: "Restrepo", Document: "CC-1000000002", Email: "camila@example.com", Role: users.RoleUser, Category: users.CategoryGeneral},
		{FirstName: "Andrés", LastName: "Quintero", Document: "TI-1000000003", Email: "andres@example.com", Role: users.RoleUser, Category: users.CategoryStudent},
		{FirstName: "Gloria", LastName: "Mejía", Document: "CC-1000000004", Email: "gloria@example.com", Role: users.RoleUser, Category: users.CategorySenior},
	}

	if err := s.db.GetPostgreSQL().Create(&demoUsers).Error; err != nil {
		return err
	}
	fmt.Printf("   👤 %d users\n", len(demoUsers))
	return nil
}

func (s *Seeder) seedFleet() error {
	fleet := []buses.Bus{
		{Plate: "WXY-123", Model: "Marcopolo Paradiso G8", Capacity: 40, Active: true},
		{Plate: "WXY-456", Model: "Busscar Vissta Buss", Capacity: 46, Active: true},
		{Plate: "WXY-789", Model: "Marcopolo Viaggio 1050", Capacity: 34, Active: true},
	}

	if err := s.db.GetPostgreSQL().Create(&fleet).Error; err != nil {
		return err
	}
	fmt.Printf("   🚌 %d buses\n", len(fleet))
	return nil
}

func (s *Seeder) seedRoutes() error {
	line := routes.Route{
		Name:     "Línea Dorada",
		Origin:   "Bogotá",
		Terminus: "Cali",
		Active:   true,
		Stops: []routes.Stop{
			{Name: "Bogotá", Order: 1},
			{Name: "Medellín", Order: 2},
			{Name: "Cali", Order: 3},
		},
	}

	coastal := routes.Route{
		Name:     "Ruta Caribe",
		Origin:   "Medellín",
		Terminus: "Cartagena",
		Active:   true,
		Stops: []routes.Stop{
			{Name: "Medellín", Order: 1},
			{Name: "Montería", Order: 2},
			{Name: "Sincelejo", Order: 3},
			{Name: "Cartagena", Order: 4},
		},
	}

	gdb := s.db.GetPostgreSQL()
	if err := gdb.Create(&line).Error; err != nil {
		return err
	}
	if err := gdb.Create(&coastal).Error; err != nil {
		return err
	}
	fmt.Println("   🗺️  2 routes with stops")
	return nil
}

func (s *Seeder) seedTrips() error {
	now := time.Now()
	departures := []trips.Trip{
		{RouteID: 1, BusID: 1, DepartureTime: now.Add(72 * time.Hour), Status: trips.StatusScheduled},
		{RouteID: 1, BusID: 2, DepartureTime: now.Add(96 * time.Hour), Status: trips.StatusScheduled},
		// Departs at 07:30 local, inside the morning peak window.
		{RouteID: 1, BusID: 3, DepartureTime: time.Date(now.Year(), now.Month(), now.Day(), 7, 30, 0, 0, time.Local).Add(120 * time.Hour), Status: trips.StatusScheduled},
		{RouteID: 2, BusID: 2, DepartureTime: now.Add(48 * time.Hour), Status: trips.StatusScheduled},
	}

	if err := s.db.GetPostgreSQL().Create(&departures).Error; err != nil {
		return err
	}
	fmt.Printf("   🕗 %d trips\n", len(departures))
	return nil
}

func (s *Seeder) seedFareRules() error {
	rules := []pricing.FareRule{
		{RouteID: 1, FromOrder: 1, ToOrder: 2, BasePrice: decimal.RequireFromString("95000.00")},
		{RouteID: 1, FromOrder: 2, ToOrder: 3, BasePrice: decimal.RequireFromString("85000.00")},
		{RouteID: 1, FromOrder: 1, ToOrder: 3, BasePrice: decimal.RequireFromString("160000.00")},
		{RouteID: 2, FromOrder: 1, ToOrder: 4, BasePrice: decimal.RequireFromString("180000.00")},
	}

	if err := s.db.GetPostgreSQL().Create(&rules).Error; err != nil {
		return err
	}
	fmt.Printf("   💰 %d fare rules\n", len(rules))
	return nil
}
