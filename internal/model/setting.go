package model

// Theme is the appearance chosen on the theme page.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
	ThemeAuto  Theme = "auto"
)

// Notification setting ids shown on the notifications page.
const (
	NotificationLessonSoon     = "lesson_soon"
	NotificationScheduleChange = "schedule_change"
	NotificationGradeAdded     = "grade_added"
)

// NotificationSetting is a single toggle on the notifications page.
type NotificationSetting struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// Preferences holds per-user client settings.
type Preferences struct {
	UserID        int64                 `json:"user_id"`
	Theme         Theme                 `json:"theme"`
	Notifications []NotificationSetting `json:"notifications"`
}

// DefaultNotificationSettings returns every known toggle, all enabled.
func DefaultNotificationSettings() []NotificationSetting {
	return []NotificationSetting{
		{
			ID:          NotificationLessonSoon,
			Title:       "Уведомление что скоро пара",
			Description: "Получать уведомления перед началом занятий",
			Enabled:     true,
		},
		{
			ID:          NotificationScheduleChange,
			Title:       "Уведомление об изменении в расписании",
			Description: "Получать уведомления при изменении расписания",
			Enabled:     true,
		},
		{
			ID:          NotificationGradeAdded,
			Title:       "Уведомление о выставлении оценки в зачётку",
			Description: "Получать уведомления при добавлении новых оценок",
			Enabled:     true,
		},
	}
}

// MergeNotificationSettings overlays stored enabled flags onto the defaults.
// Unknown ids are dropped and missing ones keep their default.
func MergeNotificationSettings(stored map[string]bool) []NotificationSetting {
	settings := DefaultNotificationSettings()
	for i := range settings {
		if enabled, ok := stored[settings[i].ID]; ok {
			settings[i].Enabled = enabled
		}
	}
	return settings
}

// UpdatePreferencesRequest is the payload for saving preferences.
type UpdatePreferencesRequest struct {
	Theme         *Theme          `json:"theme" binding:"omitempty,oneof=dark light auto"`
	Notifications map[string]bool `json:"notifications"`
}
