package game

import (
	game_constants "Stop/constants/game"
	game_models "Stop/models/game"
	"strings"
	"unicode/utf8"
)

// ValidateSettings checks and normalizes room settings in place (name
// and categories are trimmed). Used as-is on createRoom; the
// update path layers extra checks on top (see Room.UpdateSettings).
func ValidateSettings(settings *game_models.RoomSettings) error {
	settings.Name = strings.TrimSpace(settings.Name)
	if settings.Name == "" {
		return ErrValidation("room name cannot be empty")
	}

	normalized, err := normalizeCategories(settings.Categories)
	if err != nil {
		return err
	}
	settings.Categories = normalized

	if !isSupportedRoomSize(settings.MaxPlayers) {
		return ErrValidation("unsupported number of max players: %d", settings.MaxPlayers)
	}

	if settings.TotalRounds < 1 || settings.TotalRounds > game_constants.MaxGameRounds {
		return ErrValidation("total rounds must be between 1 and %d", game_constants.MaxGameRounds)
	}

	if settings.Private && strings.TrimSpace(settings.Password) == "" {
		return ErrValidation("private rooms need a password")
	}

	return nil
}

func normalizeCategories(categories []string) ([]string, error) {
	if len(categories) < game_constants.MinCategories {
		return nil, ErrValidation("at least %d category is required", game_constants.MinCategories)
	}
	if len(categories) > game_constants.MaxCategories {
		return nil, ErrValidation("a room can have at most %d categories", game_constants.MaxCategories)
	}

	normalized := make([]string, 0, len(categories))
	seen := make(map[string]bool, len(categories))
	for _, category := range categories {
		category = strings.TrimSpace(category)
		if category == "" {
			return nil, ErrValidation("categories cannot be empty")
		}
		if utf8.RuneCountInString(category) > game_constants.MaxCategoryLength {
			return nil, ErrValidation("category %q is longer than %d characters",
				category, game_constants.MaxCategoryLength)
		}
		lower := strings.ToLower(category)
		if seen[lower] {
			return nil, ErrValidation("duplicated category: %q", category)
		}
		seen[lower] = true
		normalized = append(normalized, category)
	}
	return normalized, nil
}

func isSupportedRoomSize(size int) bool {
	for _, allowed := range game_constants.SupportedRoomSizes {
		if size == allowed {
			return true
		}
	}
	return false
}
