package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Backend   BackendConfig   `json:"backend" yaml:"backend"`
	Selection SelectionConfig `json:"selection" yaml:"selection"`
	Handoff   HandoffConfig   `json:"handoff" yaml:"handoff"`
	Providers ProvidersConfig `json:"providers" yaml:"providers"`
	UI        UIConfig        `json:"ui" yaml:"ui"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
}

type BackendConfig struct {
	BaseURL        string `json:"base_url" yaml:"base_url"`               // Default: http://localhost:8000
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"` // Default: 30
}

type SelectionConfig struct {
	MaxSelect int `json:"max_select" yaml:"max_select"` // Default: 5
}

// Handoff store kinds.
const (
	StoreFile   = "file"
	StoreBadger = "badger"
)

type HandoffConfig struct {
	Store string `json:"store" yaml:"store"` // Default: "file"
	// Path overrides the store location. Empty means under the config dir.
	Path string `json:"path" yaml:"path"`
}

type ProvidersConfig struct {
	// Empty disables the provider even when its API key is set.
	GeminiModel   string `json:"gemini_model" yaml:"gemini_model"`       // Default: gemini-2.5-flash
	OpenAIModel   string `json:"openai_model" yaml:"openai_model"`       // Default: gpt-4o-mini
	OpenAIBaseURL string `json:"openai_base_url" yaml:"openai_base_url"` // Default: "" (library default)

	MaxOutputTokens   int `json:"max_output_tokens" yaml:"max_output_tokens"`       // Default: 8192
	MaxPromptFileSize int `json:"max_prompt_file_size" yaml:"max_prompt_file_size"` // Default: 20000 bytes per file
}

type UIConfig struct {
	ColorPrimary   string `json:"color_primary" yaml:"color_primary"`       // Default: "63"
	ColorMuted     string `json:"color_muted" yaml:"color_muted"`           // Default: "241"
	ColorSuccess   string `json:"color_success" yaml:"color_success"`       // Default: "42"
	ColorError     string `json:"color_error" yaml:"color_error"`           // Default: "196"
	TickIntervalMs int    `json:"tick_interval_ms" yaml:"tick_interval_ms"` // Default: 300
}

type MetricsConfig struct {
	// Addr serves /metrics when non-empty, e.g. ":9090".
	Addr string `json:"addr" yaml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Selection: SelectionConfig{
			MaxSelect: 5,
		},
		Handoff: HandoffConfig{
			Store: StoreFile,
		},
		Providers: ProvidersConfig{
			GeminiModel:       "gemini-2.5-flash",
			OpenAIModel:       "gpt-4o-mini",
			MaxOutputTokens:   8192,
			MaxPromptFileSize: 20000,
		},
		UI: UIConfig{
			ColorPrimary:   "63",
			ColorMuted:     "241",
			ColorSuccess:   "42",
			ColorError:     "196",
			TickIntervalMs: 300,
		},
	}
}
