package gekko

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type RenderConfig struct {
	SampleCount   uint32  `yaml:"sample_count"`
	ShadowMapSize uint32  `yaml:"shadow_map_size"`
	ShadowLift    float32 `yaml:"shadow_lift"`
}

type Config struct {
	Window    WindowConfig `yaml:"window"`
	Render    RenderConfig `yaml:"render"`
	AssetsDir string       `yaml:"assets_dir"`
	LogLevel  LogLevel     `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Gekko Labs",
		},
		Render: RenderConfig{
			SampleCount:   4,
			ShadowMapSize: 1024,
			ShadowLift:    0.1,
		},
		AssetsDir: "assets",
		LogLevel:  LogInfo,
	}
}

// LoadConfig overlays the YAML file at path on DefaultConfig. A missing
// file is not an error when optional is set.
func LoadConfig(path string, optional bool) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := ParseConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	switch c.Render.SampleCount {
	case 1, 4:
	default:
		errs = append(errs, fmt.Errorf("sample_count %d: only 1 and 4 are supported", c.Render.SampleCount))
	}
	if s := c.Render.ShadowMapSize; s == 0 || s&(s-1) != 0 {
		errs = append(errs, fmt.Errorf("shadow_map_size %d must be a power of two", s))
	}
	if c.Render.ShadowLift < 0 {
		errs = append(errs, fmt.Errorf("shadow_lift %g must not be negative", c.Render.ShadowLift))
	}
	return errors.Join(errs...)
}
