//go:build !ebiten

package ui

import "cellsim/internal/session"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(*session.Session, *session.Settings, int) *HUD { return nil }

// Rebind is a no-op in the headless build.
func (h *HUD) Rebind() {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Adjust is a no-op in the headless build.
func (h *HUD) Adjust(string, int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
