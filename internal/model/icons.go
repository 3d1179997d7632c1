package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconLocked  = "⚿" // Locked alias (shipped default, not deletable)
	IconFound   = "✓" // Map resolved to an existing file
	IconMissing = "✗" // No candidate file found for this map type
	IconFlagOn  = "■" // Settings toggle enabled
	IconFlagOff = "□" // Settings toggle disabled
)
