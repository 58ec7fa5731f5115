package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/internal/repository"
	"github.com/christianbugingo/ticket-website/pkg/config"
	"github.com/christianbugingo/ticket-website/pkg/database"
	"github.com/christianbugingo/ticket-website/pkg/logger"
)

type seedUser struct {
	email    string
	password string
	name     string
	phone    string
	role     domain.Role
}

type seedCompany struct {
	name        string
	contact     string
	description string
	ownerEmail  string
}

type seedBus struct {
	plate    string
	model    string
	capacity int
	company  string
}

type seedRoute struct {
	origin      string
	destination string
	distanceKM  float64
}

// Seeds the database with demo operators, fleets, routes and a week of
// schedules. Safe to re-run: existing rows are skipped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(&logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: "seed",
		Development: true,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLog := logger.Get()

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:          cfg.Database.Host,
		Port:          cfg.Database.Port,
		User:          cfg.Database.User,
		Password:      cfg.Database.Password,
		Database:      cfg.Database.DBName,
		SSLMode:       cfg.Database.SSLMode,
		MaxConns:      5,
		MinConns:      1,
		MaxRetries:    3,
		RetryInterval: time.Second,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()

	pool := db.Pool()
	userRepo := repository.NewPostgresUserRepository(pool)
	companyRepo := repository.NewPostgresCompanyRepository(pool)
	busRepo := repository.NewPostgresBusRepository(pool)
	routeRepo := repository.NewPostgresRouteRepository(pool)
	scheduleRepo := repository.NewPostgresScheduleRepository(pool)

	appLog.Info("Seeding database...")

	users := []seedUser{
		{"admin@itike.rw", "admin123", "Admin User", "", domain.RoleAdmin},
		{"operator1@itike.rw", "operator123", "Volcano Express Operator", "", domain.RoleBusOperator},
		{"operator2@itike.rw", "operator123", "Horizon Express Operator", "", domain.RoleBusOperator},
		{"operator3@itike.rw", "operator123", "Kigali Bus Services Operator", "", domain.RoleBusOperator},
		{"operator4@itike.rw", "operator123", "Virunga Express Operator", "", domain.RoleBusOperator},
		{"user@itike.rw", "user123", "Regular User", "+250788123456", domain.RolePassenger},
	}

	userIDs := make(map[string]string)
	for _, u := range users {
		existing, err := userRepo.GetByEmail(ctx, u.email)
		if err == nil {
			userIDs[u.email] = existing.ID
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			appLog.Fatal(fmt.Sprintf("Failed to look up user %s: %v", u.email, err))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			appLog.Fatal(fmt.Sprintf("Failed to hash password: %v", err))
		}
		user, err := domain.NewUser(u.email, string(hash), u.name, u.phone, u.role)
		if err != nil {
			appLog.Fatal(fmt.Sprintf("Invalid seed user %s: %v", u.email, err))
		}
		if err := userRepo.Create(ctx, user); err != nil {
			appLog.Fatal(fmt.Sprintf("Failed to create user %s: %v", u.email, err))
		}
		userIDs[u.email] = user.ID
		appLog.Info("Created user", zap.String("email", u.email), zap.String("role", string(u.role)))
	}

	companies := []seedCompany{
		{"Volcano Express", "+250788111222", "Premium bus service connecting major cities in Rwanda", "operator1@itike.rw"},
		{"Horizon Express", "+250788333444", "Affordable and reliable bus transportation", "operator2@itike.rw"},
		{"Kigali Bus Services", "+250788555666", "Serving routes in and around Kigali", "operator3@itike.rw"},
		{"Virunga Express", "+250788777888", "Connecting northern Rwanda destinations", "operator4@itike.rw"},
	}

	companyIDs := make(map[string]string)
	for _, c := range companies {
		ownerID := userIDs[c.ownerEmail]
		existing, err := companyRepo.GetByOwnerID(ctx, ownerID)
		if err == nil {
			companyIDs[c.name] = existing.ID
			continue
		}
		if !errors.Is(err, domain.ErrCompanyNotFound) {
			appLog.Fatal(fmt.Sprintf("Failed to look up company %s: %v", c.name, err))
		}

		company, err := domain.NewCompany(c.name, c.contact, c.description, "", ownerID)
		if err != nil {
			appLog.Fatal(fmt.Sprintf("Invalid seed company %s: %v", c.name, err))
		}
		// Demo companies are pre-approved so their trips are bookable
		company.Approve()
		if err := companyRepo.Create(ctx, company); err != nil {
			appLog.Fatal(fmt.Sprintf("Failed to create company %s: %v", c.name, err))
		}
		companyIDs[c.name] = company.ID
		appLog.Info("Created company", zap.String("name", c.name))
	}

	buses := []seedBus{
		{"RAD 001 A", "Yutong ZK6119H", 45, "Volcano Express"},
		{"RAD 002 A", "Mercedes Travego", 40, "Volcano Express"},
		{"RAD 003 B", "Scania K410", 50, "Horizon Express"},
		{"RAD 004 B", "Isuzu NPR", 35, "Horizon Express"},
		{"RAD 005 C", "MAN Lion", 42, "Kigali Bus Services"},
		{"RAD 006 D", "Volvo 9700", 38, "Virunga Express"},
	}

	var busList []*domain.Bus
	for _, b := range buses {
		bus, err := domain.NewBus(b.plate, b.model, b.capacity, companyIDs[b.company])
		if err != nil {
			appLog.Fatal(fmt.Sprintf("Invalid seed bus %s: %v", b.plate, err))
		}
		if err := busRepo.Create(ctx, bus); err != nil {
			if errors.Is(err, domain.ErrPlateAlreadyExists) {
				continue
			}
			appLog.Fatal(fmt.Sprintf("Failed to create bus %s: %v", b.plate, err))
		}
		busList = append(busList, bus)
		appLog.Info("Created bus", zap.String("plate", b.plate))
	}

	routes := []seedRoute{
		{"Kigali", "Musanze", 105},
		{"Kigali", "Huye", 135},
		{"Kigali", "Rubavu", 155},
		{"Kigali", "Muhanga", 50},
		{"Kigali", "Rwamagana", 55},
		{"Musanze", "Rubavu", 85},
		{"Huye", "Nyamagabe", 45},
	}

	existingRoutes, err := routeRepo.List(ctx)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to list routes: %v", err))
	}
	haveRoute := make(map[string]bool)
	for _, r := range existingRoutes {
		haveRoute[r.Origin+"-"+r.Destination] = true
	}

	var routeList []*domain.Route
	for _, r := range routes {
		if haveRoute[r.origin+"-"+r.destination] {
			continue
		}
		route, err := domain.NewRoute(r.origin, r.destination, r.distanceKM)
		if err != nil {
			appLog.Fatal(fmt.Sprintf("Invalid seed route %s-%s: %v", r.origin, r.destination, err))
		}
		if err := routeRepo.Create(ctx, route); err != nil {
			appLog.Fatal(fmt.Sprintf("Failed to create route %s-%s: %v", r.origin, r.destination, err))
		}
		routeList = append(routeList, route)
		appLog.Info("Created route", zap.String("origin", r.origin), zap.String("destination", r.destination))
	}

	if len(busList) == 0 || len(routeList) == 0 {
		appLog.Info("Fleet and routes already seeded, skipping schedules")
		return
	}

	// A week of departures per route, morning and afternoon slots
	slots := []struct {
		departure string
		arrival   string
	}{
		{"06:00", "08:30"},
		{"09:30", "12:00"},
		{"13:00", "15:30"},
		{"17:00", "19:30"},
	}

	created := 0
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for day := 1; day <= 7; day++ {
		date := today.AddDate(0, 0, day)
		for i, route := range routeList {
			for j, slot := range slots {
				bus := busList[(i*2+j)%len(busList)]

				dep, _ := time.Parse("15:04", slot.departure)
				arr, _ := time.Parse("15:04", slot.arrival)
				departure := date.Add(time.Duration(dep.Hour())*time.Hour + time.Duration(dep.Minute())*time.Minute)
				arrival := date.Add(time.Duration(arr.Hour())*time.Hour + time.Duration(arr.Minute())*time.Minute)

				price := float64(2500 + rand.Intn(2000))

				schedule, err := domain.NewSchedule(bus.ID, route.ID, departure, arrival, price, bus.Capacity)
				if err != nil {
					appLog.Fatal(fmt.Sprintf("Invalid seed schedule: %v", err))
				}
				if err := scheduleRepo.Create(ctx, schedule); err != nil {
					appLog.Fatal(fmt.Sprintf("Failed to create schedule: %v", err))
				}
				created++
			}
		}
	}

	appLog.Info("Database seeding completed",
		zap.Int("schedules_created", created))
	appLog.Info("Test accounts: admin@itike.rw/admin123, operator1@itike.rw/operator123, user@itike.rw/user123")
}
