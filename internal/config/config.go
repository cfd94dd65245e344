// Package config provides configuration types and defaults for refgraph.
package config

import "time"

// Config holds all configuration for refgraph.
type Config struct {
	Catalog     CatalogConfig     `yaml:"catalog" mapstructure:"catalog"`
	Layout      LayoutConfig      `yaml:"layout" mapstructure:"layout"`
	Viewport    ViewportConfig    `yaml:"viewport" mapstructure:"viewport"`
	Interaction InteractionConfig `yaml:"interaction" mapstructure:"interaction"`
	Render      RenderConfig      `yaml:"render" mapstructure:"render"`
	Browser     BrowserConfig     `yaml:"browser" mapstructure:"browser"`
	Export      ExportConfig      `yaml:"export" mapstructure:"export"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
}

// CatalogConfig selects the reference catalog and how it is watched.
type CatalogConfig struct {
	Path     string        `yaml:"path" mapstructure:"path"`         // YAML or JSON catalog; empty uses the built-in catalog
	Watch    bool          `yaml:"watch" mapstructure:"watch"`       // Reload the catalog when the file changes
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"` // Quiet period before a reload fires
}

// LayoutConfig holds the force simulation parameters.
type LayoutConfig struct {
	LinkDistance    float64 `yaml:"link_distance" mapstructure:"link_distance"` // Base distance K; an edge of weight w rests at K/sqrt(w)
	ChargeStrength  float64 `yaml:"charge_strength" mapstructure:"charge_strength"`
	CenterStrength  float64 `yaml:"center_strength" mapstructure:"center_strength"`
	CollideRadius   float64 `yaml:"collide_radius" mapstructure:"collide_radius"`
	CollideStrength float64 `yaml:"collide_strength" mapstructure:"collide_strength"`
	VelocityDecay   float64 `yaml:"velocity_decay" mapstructure:"velocity_decay"`
	AlphaMin        float64 `yaml:"alpha_min" mapstructure:"alpha_min"`
	AlphaDecay      float64 `yaml:"alpha_decay" mapstructure:"alpha_decay"`
	WarmupTicks     int     `yaml:"warmup_ticks" mapstructure:"warmup_ticks"`
	DragAlphaTarget float64 `yaml:"drag_alpha_target" mapstructure:"drag_alpha_target"` // Energy held while a node is dragged
	SelectAlpha     float64 `yaml:"select_alpha" mapstructure:"select_alpha"`           // Energy injected when the selection changes
	ResizeAlpha     float64 `yaml:"resize_alpha" mapstructure:"resize_alpha"`           // Energy injected when the surface is resized
	Seed            uint64  `yaml:"seed" mapstructure:"seed"`                           // Seed for the jiggle source
}

// ViewportConfig holds pan and zoom limits.
type ViewportConfig struct {
	MinScale        float64 `yaml:"min_scale" mapstructure:"min_scale"`
	MaxScale        float64 `yaml:"max_scale" mapstructure:"max_scale"`
	ZoomSensitivity float64 `yaml:"zoom_sensitivity" mapstructure:"zoom_sensitivity"`
	WheelDelta      float64 `yaml:"wheel_delta" mapstructure:"wheel_delta"` // Delta reported for one terminal wheel notch
	KeyZoomFactor   float64 `yaml:"key_zoom_factor" mapstructure:"key_zoom_factor"`
	FitPadding      float64 `yaml:"fit_padding" mapstructure:"fit_padding"`
}

// InteractionConfig holds pointer hit-testing and drag settings.
type InteractionConfig struct {
	DragThreshold       float64 `yaml:"drag_threshold" mapstructure:"drag_threshold"`               // Screen pixels; a shorter press-release is a click
	HoverRadius         float64 `yaml:"hover_radius" mapstructure:"hover_radius"`                   // World units
	SelectedHoverRadius float64 `yaml:"selected_hover_radius" mapstructure:"selected_hover_radius"` // World units, for the selected node
	PressRadius         float64 `yaml:"press_radius" mapstructure:"press_radius"`                   // World units, for starting a drag
}

// RenderConfig holds visual encoding settings.
type RenderConfig struct {
	MinRadius       float64       `yaml:"min_radius" mapstructure:"min_radius"`
	MaxRadius       float64       `yaml:"max_radius" mapstructure:"max_radius"`
	FocusRadius     float64       `yaml:"focus_radius" mapstructure:"focus_radius"`
	BreathAmplitude float64       `yaml:"breath_amplitude" mapstructure:"breath_amplitude"`
	BreathRate      float64       `yaml:"breath_rate" mapstructure:"breath_rate"` // Radians per frame
	EdgeAlpha       uint8         `yaml:"edge_alpha" mapstructure:"edge_alpha"`
	EdgeDimAlpha    uint8         `yaml:"edge_dim_alpha" mapstructure:"edge_dim_alpha"`
	EdgeFocusAlpha  uint8         `yaml:"edge_focus_alpha" mapstructure:"edge_focus_alpha"`
	NodeDimAlpha    uint8         `yaml:"node_dim_alpha" mapstructure:"node_dim_alpha"`
	LabelOffset     float64       `yaml:"label_offset" mapstructure:"label_offset"` // Screen pixels below the node edge
	LabelSize       float64       `yaml:"label_size" mapstructure:"label_size"`     // Screen pixels
	Background      string        `yaml:"background" mapstructure:"background"`
	FrameInterval   time.Duration `yaml:"frame_interval" mapstructure:"frame_interval"`
	CellWidth       int           `yaml:"cell_width" mapstructure:"cell_width"`   // Screen pixels per terminal column
	CellHeight      int           `yaml:"cell_height" mapstructure:"cell_height"` // Screen pixels per terminal row
}

// BrowserConfig controls how reference URLs are opened.
type BrowserConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Command string `yaml:"command" mapstructure:"command"` // Overrides the platform opener (xdg-open, open)
}

// ExportConfig holds static snapshot settings.
type ExportConfig struct {
	Width       int    `yaml:"width" mapstructure:"width"`
	Height      int    `yaml:"height" mapstructure:"height"`
	SettleTicks int    `yaml:"settle_ticks" mapstructure:"settle_ticks"` // Upper bound on simulation steps before rendering
	Padding     int    `yaml:"padding" mapstructure:"padding"`
	Path        string `yaml:"path" mapstructure:"path"` // Target for the in-app snapshot key
}

// PathsConfig holds file paths.
type PathsConfig struct {
	Log string `yaml:"log" mapstructure:"log"`
}

// LogRotationConfig holds settings for log file rotation.
// Used for the TUI debug log (lumberjack-based automatic rotation).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// Default returns a Config with the stock visual and physical tuning.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path:     "",
			Watch:    false,
			Debounce: 150 * time.Millisecond,
		},
		Layout: LayoutConfig{
			LinkDistance:    120,
			ChargeStrength:  -200,
			CenterStrength:  1,
			CollideRadius:   25,
			CollideStrength: 0.7,
			VelocityDecay:   0.4,
			AlphaMin:        0.001,
			AlphaDecay:      0.0228, // 1 - 0.001^(1/300)
			WarmupTicks:     50,
			DragAlphaTarget: 0.3,
			SelectAlpha:     0.3,
			ResizeAlpha:     1,
			Seed:            1,
		},
		Viewport: ViewportConfig{
			MinScale:        0.5,
			MaxScale:        3.0,
			ZoomSensitivity: 0.001,
			WheelDelta:      100,
			KeyZoomFactor:   1.2,
			FitPadding:      40,
		},
		Interaction: InteractionConfig{
			DragThreshold:       5,
			HoverRadius:         15,
			SelectedHoverRadius: 25,
			PressRadius:         20,
		},
		Render: RenderConfig{
			MinRadius:       8,
			MaxRadius:       12,
			FocusRadius:     15,
			BreathAmplitude: 2,
			BreathRate:      0.03,
			EdgeAlpha:       60,
			EdgeDimAlpha:    30,
			EdgeFocusAlpha:  180,
			NodeDimAlpha:    40,
			LabelOffset:     15,
			LabelSize:       12,
			Background:      "#0a0a0a",
			FrameInterval:   33 * time.Millisecond,
			CellWidth:       8,
			CellHeight:      16,
		},
		Browser: BrowserConfig{
			Enabled: true,
			Command: "",
		},
		Export: ExportConfig{
			Width:       960,
			Height:      720,
			SettleTicks: 300,
			Padding:     40,
			Path:        ".refgraph/snapshot.png",
		},
		Paths: PathsConfig{
			Log: ".refgraph/refgraph.log",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
