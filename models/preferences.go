package models

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences is the UI state a session carries between requests.
type Preferences struct {
	Theme    string `json:"theme"`
	Category string `json:"category"`
	Language string `json:"language"`
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, Language: "en"}
}
