package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"contactbook/internal/auth"
	"contactbook/internal/config"
	"contactbook/internal/db"
	apperrors "contactbook/internal/errors"
	"contactbook/internal/logger"
	"contactbook/internal/model"
	"contactbook/internal/service"
)

// seedConfig selects the demo account and where its contacts come from.
type seedConfig struct {
	Email    string `env:"SEED_EMAIL" envDefault:"demo@contactbook.local"`
	Password string `env:"SEED_PASSWORD" envDefault:"demo1234"`
	// Source is an http(s) URL or a file path holding a JSON contact array.
	Source string `env:"SEED_SOURCE"`
}

// SeedContactData is the JSON shape accepted from SEED_SOURCE.
type SeedContactData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

var defaultContacts = []SeedContactData{
	{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100", Message: "Met at the analytical engine meetup"},
	{Name: "Grace Hopper", Email: "grace@example.com", Phone: "555-0101"},
	{Name: "Alan Turing", Email: "alan@example.com", Phone: "555-0102", Message: "Chess on Thursdays"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	var sc seedConfig
	if err := env.Parse(&sc); err != nil {
		log.Fatalf("seed config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()
	store, err := db.Open(ctx, cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = store.Close(ctx) }()
	zlog.Info("connected to database", zap.String("driver", cfg.DatabaseDriver))

	contacts := defaultContacts
	if sc.Source != "" {
		zlog.Info("loading contacts", zap.String("source", sc.Source))
		contacts, err = loadContacts(sc.Source)
		if err != nil {
			zlog.Fatal("failed to load contacts", zap.Error(err))
		}
	}

	authService := service.NewAuthService(store.Users, auth.NewJWTService(cfg.JWTSecret), auth.NewTokenStore(nil), zlog)
	contactService := service.NewContactService(store.Contacts, nil, zlog)

	created, skipped, err := seedContacts(ctx, authService, contactService, sc.Email, sc.Password, contacts)
	if err != nil {
		zlog.Fatal("seed failed", zap.Error(err))
	}

	zlog.Info("seed completed",
		zap.String("email", sc.Email),
		zap.Int("created", created),
		zap.Int("skipped", skipped),
	)
}

// loadContacts reads a JSON contact array from a URL or a local file.
func loadContacts(source string) ([]SeedContactData, error) {
	var body []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("source returned status code: %d", resp.StatusCode)
		}
		if body, err = io.ReadAll(resp.Body); err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}
	} else {
		var err error
		if body, err = os.ReadFile(source); err != nil {
			return nil, fmt.Errorf("read %s: %w", source, err)
		}
	}

	var contacts []SeedContactData
	if err := json.Unmarshal(body, &contacts); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return contacts, nil
}

// seedContacts makes sure the demo user exists and owns every contact.
// Contacts whose email the user already has are skipped, so reruns are safe.
func seedContacts(ctx context.Context, authService service.AuthService, contactService service.ContactService,
	email, password string, contacts []SeedContactData) (created int, skipped int, err error) {
	if err := authService.Register(ctx, email, password); err != nil && !errors.Is(err, apperrors.ErrDuplicateEmail) {
		return 0, 0, fmt.Errorf("register %s: %w", email, err)
	}
	user, err := authService.Verify(ctx, email, password)
	if err != nil {
		return 0, 0, fmt.Errorf("verify %s: %w", email, err)
	}

	existing, err := contactService.List(ctx, user.ID)
	if err != nil {
		return 0, 0, err
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[strings.ToLower(c.Email)] = true
	}

	for _, item := range contacts {
		if item.Name == "" || item.Email == "" || item.Phone == "" || known[strings.ToLower(item.Email)] {
			skipped++
			continue
		}
		_, err := contactService.Create(ctx, user.ID, model.ContactFields{
			Name:    item.Name,
			Email:   item.Email,
			Phone:   item.Phone,
			Message: item.Message,
		})
		if err != nil {
			return created, skipped, fmt.Errorf("create contact %s: %w", item.Email, err)
		}
		known[strings.ToLower(item.Email)] = true
		created++
	}
	return created, skipped, nil
}
