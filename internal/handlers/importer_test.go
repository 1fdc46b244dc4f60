package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/cityteam/guests-api/internal/database"
	"github.com/cityteam/guests-api/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createFacility(t *testing.T, db *gorm.DB, name string) models.Facility {
	t.Helper()
	facility := models.Facility{Name: name, City: name}
	if err := db.Create(&facility).Error; err != nil {
		t.Fatalf("failed to create facility %s: %v", name, err)
	}
	return facility
}

func createGuest(t *testing.T, db *gorm.DB, facilityID uint, firstName, lastName string) models.Guest {
	t.Helper()
	guest := models.Guest{FacilityID: facilityID, FirstName: firstName, LastName: lastName}
	if err := db.Create(&guest).Error; err != nil {
		t.Fatalf("failed to create guest %s %s: %v", firstName, lastName, err)
	}
	return guest
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected status %d error, got nil", status)
	}
	var statusErr huma.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected huma status error, got %v", err)
	}
	if statusErr.GetStatus() != status {
		t.Fatalf("expected status %d, got %d (%v)", status, statusErr.GetStatus(), err)
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestResolveGuest_Idempotent(t *testing.T) {
	db := setupDB(t)
	facility := createFacility(t, db, "Oakland")

	first, err := resolveGuest(db, facility.ID, "Fred", "Flintstone")
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if first.Version != 0 {
		t.Errorf("expected version 0 on created guest, got %d", first.Version)
	}

	second, err := resolveGuest(db, facility.ID, "Fred", "Flintstone")
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected same guest id, got %d then %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.Guest{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 guest in DB, got %d", count)
	}
}

func TestResolveGuest_ExistingUnchanged(t *testing.T) {
	db := setupDB(t)
	facility := createFacility(t, db, "Oakland")
	existing := createGuest(t, db, facility.ID, "Barney", "Rubble")

	resolved, err := resolveGuest(db, facility.ID, "Barney", "Rubble")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.ID != existing.ID {
		t.Errorf("expected existing guest %d, got %d", existing.ID, resolved.ID)
	}
	if resolved.Version != existing.Version {
		t.Errorf("resolve mutated the guest: version %d -> %d", existing.Version, resolved.Version)
	}
}

func TestResolveGuest_CaseSensitive(t *testing.T) {
	db := setupDB(t)
	facility := createFacility(t, db, "Oakland")
	existing := createGuest(t, db, facility.ID, "Fred", "Flintstone")

	resolved, err := resolveGuest(db, facility.ID, "fred", "flintstone")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.ID == existing.ID {
		t.Errorf("expected a distinct guest for differently-cased name")
	}
}

func TestResolveGuest_MissingName(t *testing.T) {
	db := setupDB(t)
	facility := createFacility(t, db, "Oakland")

	_, err := resolveGuest(db, facility.ID, "  ", "Flintstone")
	assertStatus(t, err, 400)
}

func TestImportRegistrations_Happy(t *testing.T) {
	db := setupDB(t)
	facility := createFacility(t, db, "San Jose")
	fred := createGuest(t, db, facility.ID, "Fred", "Flintstone")
	bamBam := createGuest(t, db, facility.ID, "Bam Bam", "Rubble")
	barney := createGuest(t, db, facility.ID, "Barney", "Rubble")

	showerTime := "04:00"
	wakeupTime := "03:30"
	requests := []models.ImportRequest{
		{MatNumber: 1, Features: models.FeatureList{models.FeatureHandicap}},
		{MatNumber: 2, Features: models.FeatureList{models.FeatureShower}},
		{MatNumber: 3, Features: models.FeatureList{models.FeatureHandicap, models.FeatureShower}},
		{
			MatNumber: 4, Features: models.FeatureList{models.FeatureHandicap},
			FirstName: "Fred", LastName: "Flintstone",
			PaymentType: ptr(models.PaymentAgency), ShowerTime: &showerTime,
		},
		{
			MatNumber: 5, Features: models.FeatureList{models.FeatureShower},
			FirstName: "Bam Bam", LastName: "Rubble",
			PaymentType: ptr(models.PaymentCash), WakeupTime: &wakeupTime,
		},
		{
			MatNumber: 6, Features: models.FeatureList{models.FeatureHandicap, models.FeatureShower},
			FirstName: "Barney", LastName: "Rubble",
			PaymentType: ptr(models.PaymentMedicalMat),
			ShowerTime:  &showerTime, WakeupTime: &wakeupTime,
		},
		{
			MatNumber: 7,
			FirstName: "New", LastName: "Person",
			PaymentType: ptr(models.PaymentCityTeam),
		},
	}

	results, err := importRegistrations(db, facility.ID, "2020-07-06", requests)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(results.Registrations) != len(requests) {
		t.Fatalf("expected %d registrations, got %d", len(requests), len(results.Registrations))
	}

	// Positional correspondence with the input list
	for i, registration := range results.Registrations {
		if registration.MatNumber != requests[i].MatNumber {
			t.Errorf("result %d: expected mat %d, got %d", i, requests[i].MatNumber, registration.MatNumber)
		}
		if registration.RegistrationDate != "2020-07-06" {
			t.Errorf("result %d: unexpected date %s", i, registration.RegistrationDate)
		}
		if registration.Version != 0 {
			t.Errorf("result %d: expected version 0, got %d", i, registration.Version)
		}
	}

	// Unassigned mats carry features only
	for i := 0; i < 3; i++ {
		if results.Registrations[i].GuestID != nil {
			t.Errorf("mat %d should be unassigned", i+1)
		}
	}
	if !results.Registrations[2].Features.Contains(models.FeatureHandicap) ||
		!results.Registrations[2].Features.Contains(models.FeatureShower) {
		t.Errorf("mat 3 features wrong: %v", results.Registrations[2].Features)
	}

	// Existing guests were resolved, not duplicated
	if got := *results.Registrations[3].GuestID; got != fred.ID {
		t.Errorf("mat 4: expected guest %d, got %d", fred.ID, got)
	}
	if got := *results.Registrations[4].GuestID; got != bamBam.ID {
		t.Errorf("mat 5: expected guest %d, got %d", bamBam.ID, got)
	}
	if got := *results.Registrations[5].GuestID; got != barney.ID {
		t.Errorf("mat 6: expected guest %d, got %d", barney.ID, got)
	}
	if *results.Registrations[3].ShowerTime != showerTime {
		t.Errorf("mat 4: expected showerTime %s", showerTime)
	}
	if *results.Registrations[4].WakeupTime != wakeupTime {
		t.Errorf("mat 5: expected wakeupTime %s", wakeupTime)
	}
	if *results.Registrations[5].PaymentType != models.PaymentMedicalMat {
		t.Errorf("mat 6: expected paymentType MM")
	}

	// Exactly one brand-new guest
	var guestCount int64
	db.Model(&models.Guest{}).Count(&guestCount)
	if guestCount != 4 {
		t.Errorf("expected 4 guests after import, got %d", guestCount)
	}
	newGuest := results.Registrations[6].GuestID
	if newGuest == nil {
		t.Fatal("mat 7 should be assigned to the new guest")
	}
	var person models.Guest
	if err := db.First(&person, *newGuest).Error; err != nil {
		t.Fatalf("new guest not persisted: %v", err)
	}
	if person.FirstName != "New" || person.LastName != "Person" {
		t.Errorf("unexpected new guest %s %s", person.FirstName, person.LastName)
	}

	// Re-fetching returns the same records in mat order
	handler := NewFacilityHandler(db, nil)
	fetched, err := handler.FindRegistrationsByFacilityAndDate(context.Background(),
		&FacilityDateInput{FacilityID: facility.ID, RegistrationDate: "2020-07-06"})
	if err != nil {
		t.Fatalf("refetch failed: %v", err)
	}
	if len(fetched.Body) != len(results.Registrations) {
		t.Fatalf("expected %d fetched registrations, got %d", len(results.Registrations), len(fetched.Body))
	}
	for i := range fetched.Body {
		if fetched.Body[i].ID != results.Registrations[i].ID {
			t.Errorf("fetched %d: expected id %d, got %d",
				i, results.Registrations[i].ID, fetched.Body[i].ID)
		}
	}
}

func TestImportRegistrations_DuplicateMat(t *testing.T) {
	db := setupDB(t)
	facility := createFacility(t, db, "Chester")

	requests := []models.ImportRequest{
		{MatNumber: 1},
		{MatNumber: 2},
		{MatNumber: 1},
	}
	_, err := importRegistrations(db, facility.ID, "2020-07-06", requests)
	assertStatus(t, err, 400)

	var count int64
	db.Model(&models.Registration{}).Count(&count)
	if count != 0 {
		t.Errorf("expected zero committed registrations, got %d", count)
	}
}

func TestImportRegistrations_MatCollision(t *testing.T) {
	db := setupDB(t)
	facility := createFacility(t, db, "Chester")

	occupied := models.Registration{
		FacilityID: facility.ID, MatNumber: 2, RegistrationDate: "2020-07-06",
	}
	if err := db.Create(&occupied).Error; err != nil {
		t.Fatalf("failed to seed registration: %v", err)
	}

	requests := []models.ImportRequest{
		{MatNumber: 1},
		{MatNumber: 2},
		{MatNumber: 3, FirstName: "New", LastName: "Person", PaymentType: ptr(models.PaymentCash)},
	}
	_, err := importRegistrations(db, facility.ID, "2020-07-06", requests)
	assertStatus(t, err, 409)

	// Nothing from the rejected batch exists, guest included
	var registrationCount, guestCount int64
	db.Model(&models.Registration{}).Count(&registrationCount)
	db.Model(&models.Guest{}).Count(&guestCount)
	if registrationCount != 1 {
		t.Errorf("expected only the pre-existing registration, got %d", registrationCount)
	}
	if guestCount != 0 {
		t.Errorf("expected no guests created by rejected batch, got %d", guestCount)
	}
}

func TestImportRegistrations_Validation(t *testing.T) {
	db := setupDB(t)
	facility := createFacility(t, db, "Portland")

	_, err := importRegistrations(db, facility.ID+100, "2020-07-06",
		[]models.ImportRequest{{MatNumber: 1}})
	assertStatus(t, err, 404)

	_, err = importRegistrations(db, facility.ID, "07/06/2020",
		[]models.ImportRequest{{MatNumber: 1}})
	assertStatus(t, err, 400)

	_, err = importRegistrations(db, facility.ID, "2020-07-06", nil)
	assertStatus(t, err, 400)

	_, err = importRegistrations(db, facility.ID, "2020-07-06",
		[]models.ImportRequest{{MatNumber: 0}})
	assertStatus(t, err, 400)

	_, err = importRegistrations(db, facility.ID, "2020-07-06",
		[]models.ImportRequest{{MatNumber: 1, Features: models.FeatureList{"X"}}})
	assertStatus(t, err, 400)

	// Assigned mat missing paymentType
	_, err = importRegistrations(db, facility.ID, "2020-07-06",
		[]models.ImportRequest{{MatNumber: 1, FirstName: "Fred", LastName: "Flintstone"}})
	assertStatus(t, err, 400)

	// Assigned mat with half a name
	_, err = importRegistrations(db, facility.ID, "2020-07-06",
		[]models.ImportRequest{{MatNumber: 1, FirstName: "Fred",
			PaymentType: ptr(models.PaymentCash)}})
	assertStatus(t, err, 400)

	var count int64
	db.Model(&models.Registration{}).Count(&count)
	if count != 0 {
		t.Errorf("expected zero committed registrations, got %d", count)
	}
}

func TestImportRegistrations_EmptyFeaturesStayDistinctFromNull(t *testing.T) {
	db := setupDB(t)
	facility := createFacility(t, db, "Portland")

	requests := []models.ImportRequest{
		{MatNumber: 1, Features: models.FeatureList{}},
		{MatNumber: 2},
	}
	results, err := importRegistrations(db, facility.ID, "2020-07-06", requests)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(results.Registrations) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(results.Registrations))
	}

	var reloaded []models.Registration
	if err := db.Order("mat_number asc").Find(&reloaded).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded[0].Features == nil {
		t.Errorf("mat 1: empty feature list collapsed to null")
	}
	if reloaded[1].Features != nil {
		t.Errorf("mat 2: expected null features, got %v", reloaded[1].Features)
	}
}
