package store

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/avetisov/modera/internal/models"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(fmt.Sprintf("store: bad seed timestamp %q: %v", s, err))
	}
	return t
}

// Seed returns the built-in listing fixture set used when no seed file is
// configured. Statuses are mixed so the moderation queue has work in it.
func Seed() []models.Listing {
	return []models.Listing{
		{
			ID:          "1",
			Title:       "Luxury BMW X5 - Perfect for Business Trips",
			Description: "Spacious and comfortable SUV with premium features",
			Brand:       "BMW",
			Model:       "X5",
			Year:        2023,
			PricePerDay: 120,
			Location:    "Kakcutta, India",
			ImageURL:    "/car1.jpg",
			Status:      models.StatusPending,
			SubmittedBy: "user1@example.com",
			SubmittedAt: ts("2024-01-15T10:30:00Z"),
			UpdatedAt:   ts("2024-01-15T10:30:00Z"),
		},
		{
			ID:          "2",
			Title:       "Eco-Friendly Tesla Model 3",
			Description: "Electric vehicle with autopilot features",
			Brand:       "Tesla",
			Model:       "Model 3",
			Year:        2024,
			PricePerDay: 95,
			Location:    "Bhopal, India",
			ImageURL:    "/car2.jpg",
			Status:      models.StatusApproved,
			SubmittedBy: "user2@example.com",
			SubmittedAt: ts("2024-01-14T14:20:00Z"),
			UpdatedAt:   ts("2024-01-14T16:45:00Z"),
		},
		{
			ID:          "3",
			Title:       "Classic Ford Mustang Convertible",
			Description: "Vintage convertible for special occasions",
			Brand:       "Ford",
			Model:       "Mustang",
			Year:        2022,
			PricePerDay: 85,
			Location:    "Rampur, India",
			ImageURL:    "/car2.jpg",
			Status:      models.StatusRejected,
			SubmittedBy: "user3@example.com",
			SubmittedAt: ts("2024-01-13T09:15:00Z"),
			UpdatedAt:   ts("2024-01-13T11:30:00Z"),
		},
		{
			ID:          "4",
			Title:       "Family-Friendly Honda CR-V",
			Description: "Reliable SUV perfect for family trips",
			Brand:       "Honda",
			Model:       "CR-V",
			Year:        2023,
			PricePerDay: 75,
			Location:    "Bengaluru, India",
			ImageURL:    "/car1.jpg",
			Status:      models.StatusPending,
			SubmittedBy: "user4@example.com",
			SubmittedAt: ts("2024-01-12T16:45:00Z"),
			UpdatedAt:   ts("2024-01-12T16:45:00Z"),
		},
		{
			ID:          "5",
			Title:       "Sporty Audi A4 Sedan",
			Description: "Performance sedan with luxury interior",
			Brand:       "Audi",
			Model:       "A4",
			Year:        2023,
			PricePerDay: 100,
			Location:    "Delhi, India",
			ImageURL:    "/car2.jpg",
			Status:      models.StatusApproved,
			SubmittedBy: "user5@example.com",
			SubmittedAt: ts("2024-01-11T13:20:00Z"),
			UpdatedAt:   ts("2024-01-11T15:10:00Z"),
		},
		{
			ID:          "6",
			Title:       "Compact Toyota Corolla",
			Description: "Fuel-efficient car for city driving",
			Brand:       "Toyota",
			Model:       "Corolla",
			Year:        2023,
			PricePerDay: 45,
			Location:    "Dehradun, India",
			ImageURL:    "/car1.jpg",
			Status:      models.StatusPending,
			SubmittedBy: "user6@example.com",
			SubmittedAt: ts("2024-01-10T11:15:00Z"),
			UpdatedAt:   ts("2024-01-10T11:15:00Z"),
		},
		{
			ID:          "7",
			Title:       "Luxury Mercedes-Benz S-Class",
			Description: "Premium sedan with advanced features",
			Brand:       "Mercedes-Benz",
			Model:       "S-Class",
			Year:        2024,
			PricePerDay: 180,
			Location:    "Jaipur, India",
			ImageURL:    "/car2.jpg",
			Status:      models.StatusApproved,
			SubmittedBy: "user7@example.com",
			SubmittedAt: ts("2024-01-09T14:30:00Z"),
			UpdatedAt:   ts("2024-01-09T16:20:00Z"),
		},
		{
			ID:          "8",
			Title:       "Rugged Jeep Wrangler",
			Description: "Off-road capable SUV for adventures",
			Brand:       "Jeep",
			Model:       "Wrangler",
			Year:        2023,
			PricePerDay: 90,
			Location:    "Pune, India",
			ImageURL:    "/car1.jpg",
			Status:      models.StatusPending,
			SubmittedBy: "user8@example.com",
			SubmittedAt: ts("2024-01-08T09:45:00Z"),
			UpdatedAt:   ts("2024-01-08T09:45:00Z"),
		},
	}
}

// LoadSeed reads listings from a YAML file. Used when the config points at a
// custom seed set instead of the built-in fixtures.
func LoadSeed(path string) ([]models.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read seed file: %w", err)
	}
	var doc struct {
		Listings []models.Listing `yaml:"listings"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: parse seed file %s: %w", path, err)
	}
	seen := make(map[string]struct{}, len(doc.Listings))
	for _, l := range doc.Listings {
		if l.ID == "" {
			return nil, fmt.Errorf("store: seed listing without id in %s", path)
		}
		if _, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("store: duplicate seed id %q in %s", l.ID, path)
		}
		if !l.Status.Valid() {
			return nil, fmt.Errorf("store: seed listing %q has invalid status %q", l.ID, l.Status)
		}
		seen[l.ID] = struct{}{}
	}
	return doc.Listings, nil
}
