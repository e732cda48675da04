package session

import (
	"log/slog"
	"sync"

	"github.com/khushal-mali/ai-workout-tracker/internal/models"
)

// Manager hands out the canonical session store for each user, creating it
// on first access with the user's persisted weight unit. Stores live for
// the process lifetime; an in-progress workout does not survive a restart.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	prefs  *PrefsDB
	log    *slog.Logger
}

// NewManager creates a Manager backed by the given preferences database.
func NewManager(prefs *PrefsDB, log *slog.Logger) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		prefs:  prefs,
		log:    log,
	}
}

// ForUser returns the user's session store, creating it if needed.
func (m *Manager) ForUser(userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[userID]; ok {
		return store
	}

	unit := models.DefaultWeightUnit
	if m.prefs != nil {
		stored, err := m.prefs.WeightUnit(userID)
		if err != nil {
			m.log.Warn("loading weight unit preference", "user", userID, "error", err)
		} else {
			unit = stored
		}
	}

	store := NewStore(unit, func(u models.WeightUnit) {
		if m.prefs == nil {
			return
		}
		if err := m.prefs.SetWeightUnit(userID, u); err != nil {
			m.log.Warn("persisting weight unit preference", "user", userID, "error", err)
		}
	})
	m.stores[userID] = store
	return store
}
