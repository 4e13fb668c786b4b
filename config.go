package lamina

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig represents the lamina.toml configuration file.
type AppConfig struct {
	Window  WindowConfig  `toml:"window"`
	Scene   SceneConfig   `toml:"scene"`
	Preview PreviewConfig `toml:"preview"`
}

// WindowConfig configures the GPU-backed window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// SceneConfig points at the scene document and sizes the arenas up
// front so a loaded document mutates without reallocation.
type SceneConfig struct {
	Path          string `toml:"path"`
	ReserveNodes  int    `toml:"reserve_nodes"`
	ReserveLayers int    `toml:"reserve_layers"`
}

// PreviewConfig configures the terminal viewer.
type PreviewConfig struct {
	TargetFPS int  `toml:"target_fps"`
	ShowStats bool `toml:"show_stats"`
}

// DefaultAppConfig returns sensible defaults for a new project.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Window: WindowConfig{
			Title:  "lamina",
			Width:  800,
			Height: 600,
		},
		Scene: SceneConfig{
			Path:          "scene.toml",
			ReserveNodes:  256,
			ReserveLayers: 8,
		},
		Preview: PreviewConfig{
			TargetFPS: 30,
			ShowStats: true,
		},
	}
}

// LoadAppConfig loads the configuration from path.
// If the file doesn't exist, returns the default config.
func LoadAppConfig(path string) (AppConfig, error) {
	config := DefaultAppConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if config.Window.Width <= 0 || config.Window.Height <= 0 {
		return config, fmt.Errorf("%s: window size %dx%d is not positive",
			path, config.Window.Width, config.Window.Height)
	}
	if config.Preview.TargetFPS <= 0 {
		config.Preview.TargetFPS = DefaultAppConfig().Preview.TargetFPS
	}

	return config, nil
}

// SaveAppConfig writes the configuration to path.
func SaveAppConfig(path string, config AppConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
