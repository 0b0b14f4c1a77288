package internal

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Config holds application settings
type Config struct {
	// Server
	ListenAddr string
	UseProxy   bool

	// Upstream retrieval tuning. Proxied paths get longer timeouts and more
	// retries because relays add latency and transient failures.
	Proxies          []string
	DirectTimeout    time.Duration
	ProxyTimeout     time.Duration
	DirectRetries    int
	ProxyRetries     int
	DirectRetryDelay time.Duration
	ProxyRetryDelay  time.Duration
	ProbeTimeout     time.Duration

	// Summarization
	SummaryProvider string // "openai", "gemini" or "" for extractive only
	SummaryModel    string
	SummaryTimeout  time.Duration
	OpenAIAPIKey    string
	GeminiAPIKey    string
	Prompt          string

	// Behavior
	CacheTranscripts bool
	Verbose          bool
	Quiet            bool

	// Fixed XDG paths (not configurable)
	ConfigDir      string
	DataDir        string
	CacheDir       string
	TranscriptsDir string
	CookiesFile    string
}

//go:embed config.toml prompt.txt
var defaultFS embed.FS

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Printf("Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig checks if a config file exists in the XDG config
// directory and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompt checks if a prompt.txt file exists in the XDG config
// directory and creates it from the embedded default if it doesn't exist
func EnsureDefaultPrompt(configDir string) error {
	return ensureDefaultFile(configDir, "prompt.txt", "prompt template")
}

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "ytscribe")
	dataDir := filepath.Join(xdg.DataHome, "ytscribe")
	cacheDir := filepath.Join(xdg.CacheHome, "ytscribe")
	transcriptsDir := filepath.Join(dataDir, "transcripts")

	v := viper.New()

	// Set default values for configurable settings
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("use_proxy", false)
	v.SetDefault("proxies", []string{})
	v.SetDefault("direct_timeout", 30*time.Second)
	v.SetDefault("proxy_timeout", 45*time.Second)
	v.SetDefault("direct_retries", 2)
	v.SetDefault("proxy_retries", 3)
	v.SetDefault("direct_retry_delay", 500*time.Millisecond)
	v.SetDefault("proxy_retry_delay", time.Second)
	v.SetDefault("probe_timeout", 5*time.Second)
	v.SetDefault("summary_provider", "openai")
	v.SetDefault("summary_model", "gpt-4o-mini")
	v.SetDefault("summary_timeout", 2*time.Minute)
	v.SetDefault("cache_transcripts", true)
	v.SetDefault("verbose", false)
	v.SetDefault("prompt", "") // if empty will use default prompt template
	v.SetDefault("cookies_file", filepath.Join(configDir, "cookies.txt"))

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("YTSCRIBE")
	v.AutomaticEnv()

	// API keys are commonly set via their vendor's usual env var
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := &Config{
		ListenAddr:       v.GetString("listen_addr"),
		UseProxy:         v.GetBool("use_proxy"),
		Proxies:          parseProxyList(v),
		DirectTimeout:    v.GetDuration("direct_timeout"),
		ProxyTimeout:     v.GetDuration("proxy_timeout"),
		DirectRetries:    v.GetInt("direct_retries"),
		ProxyRetries:     v.GetInt("proxy_retries"),
		DirectRetryDelay: v.GetDuration("direct_retry_delay"),
		ProxyRetryDelay:  v.GetDuration("proxy_retry_delay"),
		ProbeTimeout:     v.GetDuration("probe_timeout"),
		SummaryProvider:  v.GetString("summary_provider"),
		SummaryModel:     v.GetString("summary_model"),
		SummaryTimeout:   v.GetDuration("summary_timeout"),
		OpenAIAPIKey:     v.GetString("openai_api_key"),
		GeminiAPIKey:     v.GetString("gemini_api_key"),
		Prompt:           v.GetString("prompt"),
		CacheTranscripts: v.GetBool("cache_transcripts"),
		Verbose:          v.GetBool("verbose"),
		CookiesFile:      v.GetString("cookies_file"),

		// Fixed XDG paths
		ConfigDir:      configDir,
		DataDir:        dataDir,
		CacheDir:       cacheDir,
		TranscriptsDir: transcriptsDir,
	}

	if config.Verbose {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}

// parseProxyList reads proxies either as a TOML array or as a
// comma-separated YTSCRIBE_PROXIES env value.
func parseProxyList(v *viper.Viper) []string {
	raw := v.GetStringSlice("proxies")
	if len(raw) == 1 && strings.Contains(raw[0], ",") {
		raw = strings.Split(raw[0], ",")
	}

	proxies := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}
