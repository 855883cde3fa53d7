// Package config loads the renderer and demo settings from a YAML file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Renderer RendererConfig `yaml:"renderer"`
	Camera   CameraConfig   `yaml:"camera"`
	World    WorldConfig    `yaml:"world"`
	Time     TimeConfig     `yaml:"time"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowScale  int    `yaml:"window_scale"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

type RendererConfig struct {
	// 0 (one thread) through 5 (all hardware threads).
	RenderThreadsMode int `yaml:"render_threads_mode"`
	// 0 nearest, 1 linear.
	FilterMode  int     `yaml:"filter_mode"`
	FogDistance float64 `yaml:"fog_distance"`
	ParallaxSky bool    `yaml:"parallax_sky"`
	// Whether summed point-light contribution saturates at full intensity.
	LightCap bool `yaml:"light_cap"`
}

type CameraConfig struct {
	FieldOfView float64 `yaml:"field_of_view"`
	MoveSpeed   float64 `yaml:"move_speed"`
	TurnSpeed   float64 `yaml:"turn_speed"`
}

type WorldConfig struct {
	CeilingHeight float64 `yaml:"ceiling_height"`
	Exterior      bool    `yaml:"exterior"`
	AmbientDay    float64 `yaml:"ambient_day"`
	AmbientNight  float64 `yaml:"ambient_night"`
}

type TimeConfig struct {
	// Fraction of the day at startup; 0.50 is noon.
	StartDaytimePercent float64 `yaml:"start_daytime_percent"`
	DayLengthSeconds    float64 `yaml:"day_length_seconds"`
	// Latitude in original angle units of 0 to 100.
	Latitude float64 `yaml:"latitude"`
}

var GlobalConfig *Config

// LoadConfig loads the configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	// Set global config for easy access
	GlobalConfig = &config

	return &config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetCameraFOV() float64 {
	return c.Camera.FieldOfView
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Camera.MoveSpeed
}

func (c *Config) GetTurnSpeed() float64 {
	return c.Camera.TurnSpeed
}

func (c *Config) GetFogDistance() float64 {
	return c.Renderer.FogDistance
}
