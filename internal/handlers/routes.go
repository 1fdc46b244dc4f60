package handlers

import (
	"net/http"

	"github.com/cityteam/guests-api/internal/auth"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(
	r *chi.Mux,
	authHandler *auth.AuthHandler,
	facilityHandler *FacilityHandler,
	guestHandler *GuestHandler,
	registrationHandler *RegistrationHandler,
	banHandler *BanHandler,
	templateHandler *TemplateHandler,
	devModeHandler *DevModeHandler,
) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("CityTeam Guests API", "1.0.0")
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	r.Get("/auth/login", authHandler.HandleLogin)
	r.Get("/auth/callback", authHandler.HandleCallback)
	r.Group(func(r chi.Router) {
		r.Use(authHandler.AuthMiddleware)
		r.Get("/me", authHandler.HandleMe)
	})

	// Dev mode fixture reset
	r.Post("/devmode/populate", devModeHandler.HandlePopulate)
	r.Post("/devmode/depopulate", devModeHandler.HandleDepopulate)

	// Facilities
	huma.Get(api, "/facilities", facilityHandler.FindAll)
	huma.Post(api, "/facilities", facilityHandler.Insert)
	huma.Get(api, "/facilities/name/{name}", facilityHandler.FindByName)
	huma.Get(api, "/facilities/nameExact/{name}", facilityHandler.FindByNameExact)
	huma.Get(api, "/facilities/{facilityId}", facilityHandler.Find)
	huma.Put(api, "/facilities/{facilityId}", facilityHandler.Update)
	huma.Delete(api, "/facilities/{facilityId}", facilityHandler.Delete)
	huma.Get(api, "/facilities/{facilityId}/guests", facilityHandler.FindGuestsByFacilityID)
	huma.Get(api, "/facilities/{facilityId}/guests/name/{name}", facilityHandler.FindGuestsByName)
	huma.Get(api, "/facilities/{facilityId}/guests/nameExact/{firstName}/{lastName}", facilityHandler.FindGuestsByNameExact)
	huma.Get(api, "/facilities/{facilityId}/registrations/{registrationDate}", facilityHandler.FindRegistrationsByFacilityAndDate)
	huma.Delete(api, "/facilities/{facilityId}/registrations/{registrationDate}", facilityHandler.DeleteRegistrationsByFacilityAndDate)
	huma.Post(api, "/facilities/{facilityId}/registrations/{registrationDate}/imports", facilityHandler.ImportRegistrations)
	huma.Get(api, "/facilities/{facilityId}/templates", facilityHandler.FindTemplatesByFacilityID)
	huma.Get(api, "/facilities/{facilityId}/templates/name/{name}", facilityHandler.FindTemplatesByName)
	huma.Get(api, "/facilities/{facilityId}/templates/nameExact/{name}", facilityHandler.FindTemplatesByNameExact)

	// Guests
	huma.Get(api, "/guests", guestHandler.FindAll)
	huma.Post(api, "/guests", guestHandler.Insert)
	huma.Get(api, "/guests/{guestId}", guestHandler.Find)
	huma.Put(api, "/guests/{guestId}", guestHandler.Update)
	huma.Delete(api, "/guests/{guestId}", guestHandler.Delete)
	huma.Get(api, "/guests/{guestId}/bans", guestHandler.FindBansByGuestID)
	huma.Get(api, "/guests/{guestId}/bans/{registrationDate}", guestHandler.FindBansByGuestIDAndRegistrationDate)

	// Registrations
	huma.Get(api, "/registrations", registrationHandler.FindAll)
	huma.Post(api, "/registrations", registrationHandler.Insert)
	huma.Get(api, "/registrations/{registrationId}", registrationHandler.Find)
	huma.Put(api, "/registrations/{registrationId}", registrationHandler.Update)
	huma.Delete(api, "/registrations/{registrationId}", registrationHandler.Delete)
	huma.Post(api, "/registrations/{registrationId}/assign", registrationHandler.Assign)
	huma.Post(api, "/registrations/{registrationId}/deassign", registrationHandler.Deassign)

	// Bans
	huma.Get(api, "/bans", banHandler.FindAll)
	huma.Post(api, "/bans", banHandler.Insert)
	huma.Get(api, "/bans/{banId}", banHandler.Find)
	huma.Put(api, "/bans/{banId}", banHandler.Update)
	huma.Delete(api, "/bans/{banId}", banHandler.Delete)

	// Templates
	huma.Get(api, "/templates", templateHandler.FindAll)
	huma.Post(api, "/templates", templateHandler.Insert)
	huma.Get(api, "/templates/{templateId}", templateHandler.Find)
	huma.Put(api, "/templates/{templateId}", templateHandler.Update)
	huma.Delete(api, "/templates/{templateId}", templateHandler.Delete)
	huma.Post(api, "/templates/{templateId}/generate/{registrationDate}", templateHandler.Generate)
}
