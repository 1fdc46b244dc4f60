package database

import (
	"fmt"

	"github.com/cityteam/guests-api/models"
	"gorm.io/gorm"
)

// Fixture data for dev mode. Every facility gets the same cast of guests
// and the same pair of templates; San Francisco guests additionally carry
// ban windows so ban lookups have something to find.

var seedFacilities = []models.Facility{
	{
		Address1: "634 Sproul Street",
		City:     "Chester",
		Email:    "chester@cityteam.org",
		Name:     "Chester",
		Phone:    "610-872-6865",
		State:    "PA",
		ZipCode:  "19013",
	},
	{
		Address1: "722 Washington Street",
		City:     "Oakland",
		Email:    "oakland@cityteam.org",
		Name:     "Oakland",
		Phone:    "510-452-3758",
		State:    "CA",
		ZipCode:  "94607",
	},
	{
		Address1: "526 SE Grand Avenue",
		City:     "Portland",
		Email:    "portland@cityteam.org",
		Name:     "Portland",
		Phone:    "503-231-9334",
		State:    "OR",
		ZipCode:  "97214",
	},
	{
		Address1: "164 6th Street",
		City:     "San Francisco",
		Email:    "sanfrancisco@cityteam.org",
		Name:     "San Francisco",
		Phone:    "415-861-8688",
		State:    "CA",
		ZipCode:  "94103",
	},
	{
		Address1: "2306 Zanker Road",
		City:     "San Jose",
		Email:    "sanjose@cityteam.org",
		Name:     "San Jose",
		Phone:    "408-232-5600",
		State:    "CA",
		ZipCode:  "95131",
	},
}

var seedGuestNames = []struct {
	firstName string
	lastName  string
}{
	{"Fred", "Flintstone"},
	{"Wilma", "Flintstone"},
	{"Barney", "Rubble"},
	{"Bam Bam", "Rubble"},
}

// Populate installs the dev-mode fixture. It assumes an empty store; run
// Depopulate first when resetting between scenarios.
func Populate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i := range seedFacilities {
			facility := seedFacilities[i]
			if err := tx.Create(&facility).Error; err != nil {
				return err
			}
			if err := populateFacility(tx, &facility); err != nil {
				return err
			}
		}
		return nil
	})
}

func populateFacility(tx *gorm.DB, facility *models.Facility) error {

	guests := make([]models.Guest, 0, len(seedGuestNames))
	for _, name := range seedGuestNames {
		guest := models.Guest{
			Comments:   fmt.Sprintf("%s %s %s", facility.Name, name.firstName, name.lastName),
			FacilityID: facility.ID,
			FirstName:  name.firstName,
			LastName:   name.lastName,
		}
		if err := tx.Create(&guest).Error; err != nil {
			return err
		}
		guests = append(guests, guest)
	}

	// Mats 1-6 for the fourth of July, the back three already assigned.
	payments := []models.PaymentType{
		models.PaymentCash,
		models.PaymentAgency,
		models.PaymentCityTeam,
	}
	for mat := 1; mat <= 6; mat++ {
		registration := models.Registration{
			FacilityID:       facility.ID,
			MatNumber:        mat,
			RegistrationDate: "2020-07-04",
		}
		if mat >= 4 {
			guest := guests[mat-4]
			payment := payments[mat-4]
			registration.GuestID = &guest.ID
			registration.PaymentType = &payment
		}
		if err := tx.Create(&registration).Error; err != nil {
			return err
		}
	}

	if facility.Name == "San Francisco" {
		for i := range guests {
			bans := []models.Ban{
				{
					Active:   true,
					BanFrom:  "2020-08-01",
					BanTo:    "2020-08-31",
					Comments: fmt.Sprintf("%s August ban", facility.Name),
					GuestID:  guests[i].ID,
					Staff:    "Manager",
				},
				{
					Active:   false,
					BanFrom:  "2020-10-01",
					BanTo:    "2020-10-31",
					Comments: fmt.Sprintf("%s October ban", facility.Name),
					GuestID:  guests[i].ID,
					Staff:    "Manager",
				},
			}
			for j := range bans {
				if err := tx.Create(&bans[j]).Error; err != nil {
					return err
				}
			}
		}
	}

	templates := []models.Template{
		{
			AllMats:    "1-12",
			Comments:   "Socially distanced layout",
			FacilityID: facility.ID,
			FeatureMap: models.FeatureMap{
				1: {models.FeatureHandicap},
				3: {models.FeatureHandicap, models.FeatureShower},
				5: {models.FeatureShower},
			},
			Name: facility.Name + " COVID",
		},
		{
			AllMats:    "1-58",
			Comments:   "Full capacity layout",
			FacilityID: facility.ID,
			FeatureMap: models.FeatureMap{
				1: {models.FeatureHandicap},
				3: {models.FeatureHandicap, models.FeatureShower},
				5: {models.FeatureShower},
			},
			Name: facility.Name + " Standard",
		},
	}
	for i := range templates {
		if err := tx.Create(&templates[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// Depopulate removes every fixture-managed row. Children go first so that
// nothing ever references a missing parent.
func Depopulate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Ban{},
			&models.Registration{},
			&models.Guest{},
			&models.Template{},
			&models.Facility{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
