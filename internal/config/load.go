package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/phrazzld/crablang/internal/domain"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CRABLANG"

// ErrValidation is returned when the loaded configuration fails validation.
var ErrValidation = errors.New("validation failed")

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigFile is read when set; it is an error for it to be missing.
	ConfigFile string
	// SearchPaths are searched for crablang.yaml when ConfigFile is empty.
	// Nil means the working directory and $HOME/.config/crablang.
	SearchPaths []string
	// EnvFile is loaded into the environment before reading it. Empty means
	// ".env". A missing file is ignored.
	EnvFile string
	// Flags are bound by Bindings, a map of config key to flag name. Only
	// flags that were set on the command line override other sources.
	Flags    *pflag.FlagSet
	Bindings map[string]string
}

func setDefaults(v *viper.Viper) {
	limits := domain.DefaultLimits()

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("detect.threshold", 0.5)
	v.SetDefault("detect.candidates", []string{"tsv", "csv", "semicolon", "double_hash", "pipe"})

	v.SetDefault("parse.strip_quotes", true)
	v.SetDefault("parse.strip_markup", false)
	v.SetDefault("parse.max_term_length", limits.MaxTermLength)
	v.SetDefault("parse.max_definition_length", limits.MaxDefinitionLength)
	v.SetDefault("parse.comment_prefix", "#")

	v.SetDefault("session.mode", "study")
	v.SetDefault("session.reverse", false)
	v.SetDefault("session.shuffle", false)
	v.SetDefault("session.seed", 0)
	v.SetDefault("session.quit_command", ":q")
}

// Load builds the configuration. Flags take precedence over environment
// variables, which take precedence over the config file, which takes
// precedence over defaults.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if err := readConfigFile(v, opts); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range opts.Bindings {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				return nil, fmt.Errorf("no flag %q to bind to %s", name, key)
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(v *viper.Viper, opts LoadOptions) error {
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
		return nil
	}

	paths := opts.SearchPaths
	if paths == nil {
		paths = []string{"."}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, ".config", "crablang"))
		}
	}

	v.SetConfigName("crablang")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
