package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultOCRLanguage = "chi_sim"
	DefaultCacheTTL    = 30 // minutes
)

// Config holds all configuration for the complaint extraction service,
// including the tunable thresholds of the layout and noise heuristics.
// The threshold defaults are the values that behaved best on the
// observed filing corpus; recalibrating them needs a labeled set.
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Document configuration
	DocumentDirectory string
	MaxFileSize       int64 // Maximum input file size in bytes

	// One-shot extraction; when InputFile is set the process extracts
	// and exits instead of serving
	InputFile  string
	OutputFile string // .csv, .json, or .xlsx; stdout JSON when empty

	// OCR fallback configuration
	OCREnabled  bool
	OCRLanguage string

	// Heuristic thresholds
	CharBucketHeight  float64 // line bucket for text-layer character boxes
	WordBucketHeight  float64 // line bucket for OCR word boxes
	RepeatRunLength   int     // identical-character run marking noise
	DominantCharRatio float64 // dominant-character noise fraction
	MaxDefendantLen   int     // defendant value truncation, in runes

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
	CacheTTL   int // extraction result cache lifetime, minutes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:              ModeStdio, // Default to stdio mode for MCP compatibility
		Host:              DefaultHost,
		Port:              DefaultPort,
		DocumentDirectory: currentDir,
		MaxFileSize:       DefaultMaxFileSize,
		OCREnabled:        false,
		OCRLanguage:       DefaultOCRLanguage,
		CharBucketHeight:  4,
		WordBucketHeight:  20,
		RepeatRunLength:   3,
		DominantCharRatio: 0.45,
		MaxDefendantLen:   50,
		Version:           "1.0.0",
		ServerName:        "complaint-extract",
		LogLevel:          DefaultLogLevel,
		CacheTTL:          DefaultCacheTTL,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.DocumentDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DocumentDirectory); err == nil {
			cfg.DocumentDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("COMPLAINT")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.DocumentDirectory)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("input", cfg.InputFile)
	viper.SetDefault("output", cfg.OutputFile)
	viper.SetDefault("ocr", cfg.OCREnabled)
	viper.SetDefault("ocrlang", cfg.OCRLanguage)
	viper.SetDefault("charbucket", cfg.CharBucketHeight)
	viper.SetDefault("wordbucket", cfg.WordBucketHeight)
	viper.SetDefault("repeatrun", cfg.RepeatRunLength)
	viper.SetDefault("dominantratio", cfg.DominantCharRatio)
	viper.SetDefault("maxdefendant", cfg.MaxDefendantLen)
	viper.SetDefault("cachettl", cfg.CacheTTL)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.DocumentDirectory, "Directory containing complaint documents")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum input file size in bytes")
	pflag.String("input", cfg.InputFile, "Extract one document and exit instead of serving")
	pflag.String("output", cfg.OutputFile, "Output file for one-shot extraction (.csv, .json, .xlsx); stdout JSON when empty")
	pflag.Bool("ocr", cfg.OCREnabled, "Enable the OCR fallback source for scanned documents")
	pflag.String("ocrlang", cfg.OCRLanguage, "Tesseract language for the OCR fallback")
	pflag.Float64("charbucket", cfg.CharBucketHeight, "Line bucket height for text-layer character boxes")
	pflag.Float64("wordbucket", cfg.WordBucketHeight, "Line bucket height for OCR word boxes")
	pflag.Int("repeatrun", cfg.RepeatRunLength, "Identical-character run length treated as watermark noise")
	pflag.Float64("dominantratio", cfg.DominantCharRatio, "Dominant-character fraction treated as watermark noise")
	pflag.Int("maxdefendant", cfg.MaxDefendantLen, "Maximum defendant field length in characters")
	pflag.Int("cachettl", cfg.CacheTTL, "Extraction result cache lifetime in minutes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"mode", "host", "port", "dir", "loglevel", "maxfilesize",
		"input", "output", "ocr", "ocrlang", "charbucket", "wordbucket",
		"repeatrun", "dominantratio", "maxdefendant", "cachettl",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ncomplaint-extract - structured case extraction from legal complaint filings\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/filings                   # stdio MCP mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --input=case.pdf --output=records.csv    # one-shot extraction\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --ocr --input=scanned.pdf                # with OCR fallback\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  COMPLAINT_MODE         Server mode\n")
		fmt.Fprintf(os.Stderr, "  COMPLAINT_DIR          Document directory\n")
		fmt.Fprintf(os.Stderr, "  COMPLAINT_OCR          Enable OCR fallback\n")
		fmt.Fprintf(os.Stderr, "  COMPLAINT_OCRLANG      OCR language\n")
		fmt.Fprintf(os.Stderr, "  COMPLAINT_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  COMPLAINT_MAXFILESIZE  Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.DocumentDirectory = viper.GetString("dir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.InputFile = viper.GetString("input")
	cfg.OutputFile = viper.GetString("output")
	cfg.OCREnabled = viper.GetBool("ocr")
	cfg.OCRLanguage = viper.GetString("ocrlang")
	cfg.CharBucketHeight = viper.GetFloat64("charbucket")
	cfg.WordBucketHeight = viper.GetFloat64("wordbucket")
	cfg.RepeatRunLength = viper.GetInt("repeatrun")
	cfg.DominantCharRatio = viper.GetFloat64("dominantratio")
	cfg.MaxDefendantLen = viper.GetInt("maxdefendant")
	cfg.CacheTTL = viper.GetInt("cachettl")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.DocumentDirectory == "" {
		return errors.New("document directory cannot be empty")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.CharBucketHeight <= 0 || c.WordBucketHeight <= 0 {
		return errors.New("line bucket heights must be positive")
	}

	if c.RepeatRunLength < 2 {
		return errors.New("repeat run length must be at least 2")
	}

	if c.DominantCharRatio <= 0 || c.DominantCharRatio >= 1 {
		return errors.New("dominant character ratio must be between 0 and 1")
	}

	if c.MaxDefendantLen <= 0 {
		return errors.New("maximum defendant length must be positive")
	}

	if c.OCREnabled && c.OCRLanguage == "" {
		return errors.New("OCR language cannot be empty when OCR is enabled")
	}

	if c.CacheTTL <= 0 {
		return errors.New("cache TTL must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, DocumentDirectory: %s, LogLevel: %s, OCR: %t, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.DocumentDirectory, c.LogLevel, c.OCREnabled, c.MaxFileSize)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
