package config

// Config holds all application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Detect  DetectConfig  `mapstructure:"detect"`
	Parse   ParseConfig   `mapstructure:"parse"`
	Session SessionConfig `mapstructure:"session"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// DetectConfig controls delimiter detection.
type DetectConfig struct {
	// Threshold is the fraction of data lines a format must exceed to win.
	// At 1 every data line must match.
	Threshold float64 `mapstructure:"threshold" validate:"gt=0,lte=1"`
	// Candidates lists format names in the order they are tried.
	Candidates []string `mapstructure:"candidates" validate:"required,min=1,dive,oneof=tsv csv semicolon double_hash pipe"`
}

// ParseConfig controls how lines become cards.
type ParseConfig struct {
	StripQuotes         bool   `mapstructure:"strip_quotes"`
	StripMarkup         bool   `mapstructure:"strip_markup"`
	MaxTermLength       int    `mapstructure:"max_term_length" validate:"gte=0"`
	MaxDefinitionLength int    `mapstructure:"max_definition_length" validate:"gte=0"`
	CommentPrefix       string `mapstructure:"comment_prefix"`
}

// SessionConfig controls the review session.
type SessionConfig struct {
	Mode    string `mapstructure:"mode" validate:"required,oneof=study quiz"`
	Reverse bool   `mapstructure:"reverse"`
	Shuffle bool   `mapstructure:"shuffle"`
	// Seed fixes the shuffle order. Zero seeds from the clock.
	Seed        int64  `mapstructure:"seed"`
	QuitCommand string `mapstructure:"quit_command"`
}
