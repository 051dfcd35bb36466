package services

import (
	"errors"

	"matchup-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// Theme display modes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrInvalidTheme is returned for a theme value other than light/dark.
var ErrInvalidTheme = errors.New("theme must be light or dark")

// SettingsService holds user preferences in the local storage slot. The
// theme is purely cosmetic and does not interact with the session or
// feed state.
type SettingsService struct {
	store *repository.LocalStore
}

// NewSettingsService creates a settings service.
func NewSettingsService(store *repository.LocalStore) *SettingsService {
	return &SettingsService{store: store}
}

// Theme returns the stored display mode, defaulting to light when absent
// or unreadable.
func (s *SettingsService) Theme() string {
	var theme string
	ok, err := s.store.Get(repository.KeyTheme, &theme)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read stored theme")
		return ThemeLight
	}
	if !ok || (theme != ThemeLight && theme != ThemeDark) {
		return ThemeLight
	}
	return theme
}

// SetTheme stores the display mode.
func (s *SettingsService) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return ErrInvalidTheme
	}
	return s.store.Set(repository.KeyTheme, theme)
}
