package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/cityteam/guests-api/internal/auth"
	"github.com/cityteam/guests-api/internal/config"
	"github.com/cityteam/guests-api/internal/database"
	"github.com/cityteam/guests-api/internal/handlers"
	"github.com/cityteam/guests-api/models"
	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestClient(t *testing.T, devMode bool) *Client {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	cfg := &config.Config{DevMode: devMode, JWTSecret: "test-secret"}
	r := chi.NewRouter()
	handlers.RegisterRoutes(r,
		auth.NewAuthHandler(cfg, db),
		handlers.NewFacilityHandler(db, nil),
		handlers.NewGuestHandler(db),
		handlers.NewRegistrationHandler(db),
		handlers.NewBanHandler(db, nil),
		handlers.NewTemplateHandler(db),
		handlers.NewDevModeHandler(db, cfg),
	)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return New(server.URL)
}

func insertFacility(t *testing.T, c *Client, name string) *models.Facility {
	t.Helper()
	facility, err := c.Facilities().Insert(context.Background(), &models.Facility{
		City: name, Name: name, State: "US",
	})
	if err != nil {
		t.Fatalf("failed to insert facility: %v", err)
	}
	return facility
}

func TestDevModeLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, true)

	if err := c.DevMode().Populate(ctx); err != nil {
		t.Fatalf("populate failed: %v", err)
	}

	facilities, err := c.Facilities().FindAll(ctx)
	if err != nil {
		t.Fatalf("findAll failed: %v", err)
	}
	if len(facilities) != 5 {
		t.Fatalf("expected 5 seeded facilities, got %d", len(facilities))
	}
	if facilities[0].Name != "Chester" {
		t.Errorf("expected Chester first, got %s", facilities[0].Name)
	}

	sf, err := c.Facilities().FindByNameExact(ctx, "San Francisco")
	if err != nil {
		t.Fatalf("findByNameExact failed: %v", err)
	}
	guests, err := c.Facilities().FindGuestsByFacilityID(ctx, sf.ID)
	if err != nil {
		t.Fatalf("guest lookup failed: %v", err)
	}
	if len(guests) != 4 {
		t.Errorf("expected 4 seeded guests, got %d", len(guests))
	}

	// Seeded San Francisco guests carry an August ban window
	fred, err := c.Facilities().FindGuestsByNameExact(ctx, sf.ID, "Fred", "Flintstone")
	if err != nil {
		t.Fatalf("exact guest lookup failed: %v", err)
	}
	bans, err := c.Guests().FindBansByGuestIDAndRegistrationDate(ctx, fred.ID, "2020-08-15")
	if err != nil {
		t.Fatalf("ban lookup failed: %v", err)
	}
	if len(bans) != 1 || !bans[0].Active {
		t.Errorf("expected one active August ban, got %v", bans)
	}
	_, err = c.Guests().FindBansByGuestIDAndRegistrationDate(ctx, fred.ID, "2020-09-15")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for uncovered date, got %v", err)
	}

	if err := c.DevMode().Depopulate(ctx); err != nil {
		t.Fatalf("depopulate failed: %v", err)
	}
	facilities, err = c.Facilities().FindAll(ctx)
	if err != nil {
		t.Fatalf("findAll failed: %v", err)
	}
	if len(facilities) != 0 {
		t.Errorf("expected empty store after depopulate, got %d facilities", len(facilities))
	}
}

func TestDevModeForbidden(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, false)

	if err := c.DevMode().Populate(ctx); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden from populate, got %v", err)
	}
	if err := c.DevMode().Depopulate(ctx); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden from depopulate, got %v", err)
	}
}

func TestImportFlow(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, false)
	facility := insertFacility(t, c, "San Jose")

	fred, err := c.Guests().Insert(ctx, &models.Guest{
		FacilityID: facility.ID, FirstName: "Fred", LastName: "Flintstone",
	})
	if err != nil {
		t.Fatalf("failed to insert guest: %v", err)
	}

	payment := models.PaymentCash
	requests := []models.ImportRequest{
		{MatNumber: 1, Features: models.FeatureList{models.FeatureHandicap}},
		{MatNumber: 2},
		{MatNumber: 3, FirstName: "Fred", LastName: "Flintstone", PaymentType: &payment},
		{MatNumber: 4, FirstName: "New", LastName: "Person", PaymentType: &payment},
	}
	results, err := c.Facilities().ImportRegistrationsByFacilityAndDate(
		ctx, facility.ID, "2020-07-06", requests)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(results.Registrations) != 4 {
		t.Fatalf("expected 4 registrations, got %d", len(results.Registrations))
	}
	for i, registration := range results.Registrations {
		if registration.MatNumber != requests[i].MatNumber {
			t.Errorf("position %d: expected mat %d, got %d",
				i, requests[i].MatNumber, registration.MatNumber)
		}
	}
	if got := results.Registrations[2].GuestID; got == nil || *got != fred.ID {
		t.Errorf("expected mat 3 assigned to guest %d, got %v", fred.ID, got)
	}
	if results.Registrations[3].GuestID == nil {
		t.Errorf("expected mat 4 assigned to a newly created guest")
	}
	if !results.Registrations[0].Features.Contains(models.FeatureHandicap) {
		t.Errorf("expected mat 1 to keep feature H")
	}

	// A colliding batch commits nothing
	_, err = c.Facilities().ImportRegistrationsByFacilityAndDate(
		ctx, facility.ID, "2020-07-06",
		[]models.ImportRequest{{MatNumber: 3}, {MatNumber: 9}})
	if !errors.Is(err, ErrNotUnique) {
		t.Errorf("expected ErrNotUnique from colliding import, got %v", err)
	}
	registrations, err := c.Facilities().FindRegistrationsByFacilityAndDate(
		ctx, facility.ID, "2020-07-06")
	if err != nil {
		t.Fatalf("registration lookup failed: %v", err)
	}
	if len(registrations) != 4 {
		t.Errorf("expected 4 registrations after failed import, got %d", len(registrations))
	}
}

func TestGenerateFlow(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, false)
	facility := insertFacility(t, c, "San Francisco")

	template, err := c.Templates().Insert(ctx, &models.Template{
		AllMats:    "1-12",
		FacilityID: facility.ID,
		FeatureMap: models.FeatureMap{
			1: {models.FeatureHandicap},
			3: {models.FeatureHandicap, models.FeatureShower},
			5: {models.FeatureShower},
		},
		Name: "San Francisco COVID",
	})
	if err != nil {
		t.Fatalf("failed to insert template: %v", err)
	}

	registrations, err := c.Templates().Generate(ctx, template.ID, "2020-07-07")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(registrations) != 12 {
		t.Fatalf("expected 12 registrations, got %d", len(registrations))
	}
	for i, registration := range registrations {
		if registration.MatNumber != i+1 {
			t.Errorf("position %d: expected mat %d, got %d", i, i+1, registration.MatNumber)
		}
		if registration.GuestID != nil {
			t.Errorf("mat %d: expected unassigned mat", registration.MatNumber)
		}
	}

	_, err = c.Templates().Generate(ctx, template.ID, "2020-07-07")
	if !errors.Is(err, ErrNotUnique) {
		t.Errorf("expected ErrNotUnique from regenerate, got %v", err)
	}

	deleted, err := c.Facilities().DeleteRegistrationsByFacilityAndDate(
		ctx, facility.ID, "2020-07-07")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(deleted) != 12 {
		t.Errorf("expected 12 deleted registrations, got %d", len(deleted))
	}
	if _, err := c.Templates().Generate(ctx, template.ID, "2020-07-07"); err != nil {
		t.Fatalf("regenerate after clear failed: %v", err)
	}
}

func TestAssignDeassignFlow(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, false)
	facility := insertFacility(t, c, "Oakland")

	guest, err := c.Guests().Insert(ctx, &models.Guest{
		FacilityID: facility.ID, FirstName: "Fred", LastName: "Flintstone",
	})
	if err != nil {
		t.Fatalf("failed to insert guest: %v", err)
	}
	registration, err := c.Registrations().Insert(ctx, &models.Registration{
		FacilityID: facility.ID, MatNumber: 1, RegistrationDate: "2020-07-04",
	})
	if err != nil {
		t.Fatalf("failed to insert registration: %v", err)
	}

	payment := models.PaymentCityTeam
	assigned, err := c.Registrations().Assign(ctx, registration.ID, &models.Assign{
		GuestID: guest.ID, PaymentType: &payment,
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if assigned.GuestID == nil || *assigned.GuestID != guest.ID {
		t.Errorf("expected guest %d on mat, got %v", guest.ID, assigned.GuestID)
	}

	released, err := c.Registrations().Deassign(ctx, registration.ID)
	if err != nil {
		t.Fatalf("deassign failed: %v", err)
	}
	if released.GuestID != nil || released.PaymentType != nil {
		t.Errorf("expected cleared assignment, got %+v", released)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, false)

	_, err := c.Facilities().Find(ctx, 12345)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = c.Facilities().Insert(ctx, &models.Facility{})
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}

	insertFacility(t, c, "Chester")
	_, err = c.Facilities().Insert(ctx, &models.Facility{Name: "Chester"})
	if !errors.Is(err, ErrNotUnique) {
		t.Errorf("expected ErrNotUnique, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 409 {
		t.Errorf("expected 409 APIError, got %v", err)
	}
}
