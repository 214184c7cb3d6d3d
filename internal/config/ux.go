package config

// Theme names accepted by ui.theme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	// Theme selects the color palette (light/dark)
	Theme string `yaml:"theme"`

	// Color disables all styling when false (also forced off by NO_COLOR)
	Color bool `yaml:"color"`
}
