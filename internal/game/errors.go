package game

import "errors"

var (
	ErrInvalidUsername      = errors.New("username must be 3-15 characters")
	ErrSettingOutOfRange    = errors.New("setting out of range")
	ErrInsufficientScore    = errors.New("not enough score")
	ErrPrestigeLocked       = errors.New("prestige needs auto-clicker level 20")
	ErrPrestigeNotConfirmed = errors.New("prestige not confirmed")
	ErrInvalidAdminValue    = errors.New("invalid admin value")
	ErrDevModeDisabled      = errors.New("developer mode is disabled")
	ErrOmegaLocked          = errors.New("omega panel is locked")
	ErrNoUsername           = errors.New("choose a username first")
)
