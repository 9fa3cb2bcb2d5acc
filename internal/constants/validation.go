package constants

// Field Length Limits
const (
	MaxNameLength        = 150
	MaxDescLength        = 2000
	MaxURLLength         = 2048
	MaxUsernameLength    = 50
	MaxDisplayNameLength = 100
	MaxBioLength         = 500
	MaxRegionLength      = 50
	MaxTitleLength       = 200
	MaxNoteLength        = 500
	MaxLanguageCode      = 10
	MaxTeamSize          = 100
	MaxSearchLength      = 100
)

// Validation Patterns
const (
	UsernamePattern = `^[a-zA-Z0-9_.-]+$`
)
