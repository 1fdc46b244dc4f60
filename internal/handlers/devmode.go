package handlers

import (
	"log"
	"net/http"

	"github.com/cityteam/guests-api/internal/config"
	"github.com/cityteam/guests-api/internal/database"
	"gorm.io/gorm"
)

// DevModeHandler exposes the populate/depopulate fixture reset used by
// integration tests. Both endpoints answer 403 unless DEV_MODE is enabled,
// so a production deployment can never be wiped by a stray test run.
type DevModeHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewDevModeHandler(db *gorm.DB, cfg *config.Config) *DevModeHandler {
	return &DevModeHandler{db: db, cfg: cfg}
}

func (h *DevModeHandler) HandlePopulate(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.DevMode {
		http.Error(w, "Dev mode is not enabled", http.StatusForbidden)
		return
	}
	if err := database.Populate(h.db); err != nil {
		log.Printf("Populate failed: %v", err)
		http.Error(w, "Populate failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DevModeHandler) HandleDepopulate(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.DevMode {
		http.Error(w, "Dev mode is not enabled", http.StatusForbidden)
		return
	}
	if err := database.Depopulate(h.db); err != nil {
		log.Printf("Depopulate failed: %v", err)
		http.Error(w, "Depopulate failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
