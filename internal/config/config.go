package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Dataset      DatasetConfig      `mapstructure:"dataset"`
	Logger       LoggerConfig       `mapstructure:"logger"`
	Security     SecurityConfig     `mapstructure:"security"`
	Presentation PresentationConfig `mapstructure:"presentation"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host" validate:"required"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type DatasetConfig struct {
	File string `mapstructure:"file" validate:"required,dataset_ext"`

	// ReferenceDate overrides the date RFM recency is measured from.
	ReferenceDate string        `mapstructure:"reference_date" validate:"omitempty,datetime=2006-01-02"`
	LoadTimeout   time.Duration `mapstructure:"load_timeout" validate:"gt=0"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

type SecurityConfig struct {
	EnableRateLimit bool     `mapstructure:"rate_limit_enabled"`
	RateLimitRPS    int      `mapstructure:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst  int      `mapstructure:"rate_limit_burst" validate:"gt=0"`
	AllowedOrigins  []string `mapstructure:"allowed_origins" validate:"dive,eq=*|url"`
	TrustedProxies  []string `mapstructure:"trusted_proxies" validate:"dive,ip|cidr"`
}

type PresentationConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol" validate:"required"`
	CurrencyLocale string `mapstructure:"currency_locale" validate:"required,bcp47_language_tag"`
	HighlightColor string `mapstructure:"highlight_color" validate:"hexcolor"`
	BaseColor      string `mapstructure:"base_color" validate:"hexcolor"`
}

// key, environment variables, default
var settings = []struct {
	key string
	env []string
	def any
}{
	{"server.host", []string{"SERVER_HOST"}, "localhost"},
	{"server.port", []string{"SERVER_PORT"}, 8084},
	{"server.read_timeout", []string{"SERVER_READ_TIMEOUT"}, 10 * time.Second},
	{"server.write_timeout", []string{"SERVER_WRITE_TIMEOUT"}, 30 * time.Second},
	{"server.idle_timeout", []string{"SERVER_IDLE_TIMEOUT"}, 60 * time.Second},
	{"server.shutdown_timeout", []string{"SERVER_SHUTDOWN_TIMEOUT"}, 30 * time.Second},
	{"dataset.file", []string{"DATASET_FILE", "CSV_FILE"}, "all_data.csv"},
	{"dataset.reference_date", []string{"RFM_REFERENCE_DATE"}, ""},
	{"dataset.load_timeout", []string{"DATASET_LOAD_TIMEOUT"}, 60 * time.Second},
	{"logger.level", []string{"LOG_LEVEL"}, "info"},
	{"logger.format", []string{"LOG_FORMAT"}, "json"},
	{"security.rate_limit_enabled", []string{"SECURITY_RATE_LIMIT_ENABLED"}, true},
	{"security.rate_limit_rps", []string{"SECURITY_RATE_LIMIT_RPS"}, 100},
	{"security.rate_limit_burst", []string{"SECURITY_RATE_LIMIT_BURST"}, 10},
	{"security.allowed_origins", []string{"SECURITY_ALLOWED_ORIGINS"}, []string{"http://localhost:8084"}},
	{"security.trusted_proxies", []string{"SECURITY_TRUSTED_PROXIES"}, []string{"127.0.0.1"}},
	{"presentation.currency_symbol", []string{"CURRENCY_SYMBOL"}, "R$"},
	{"presentation.currency_locale", []string{"CURRENCY_LOCALE"}, "es-CO"},
	{"presentation.highlight_color", []string{"CHART_HIGHLIGHT_COLOR"}, "#1F4E9A"},
	{"presentation.base_color", []string{"CHART_BASE_COLOR"}, "#72BCD4"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("dataset_ext", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(filepath.Ext(fl.Field().String())) {
		case "", ".csv", ".xlsx", ".xlsm":
			return true
		}
		return false
	})
	return v
}

// Load reads the configuration from the environment and, when CONFIG_FILE
// is set, from that file.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads the configuration through v, so callers can bind
// command-line flags to the same keys first.
func LoadFrom(v *viper.Viper) (*Config, error) {
	for _, s := range settings {
		v.SetDefault(s.key, s.def)
		if err := v.BindEnv(append([]string{s.key}, s.env...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", s.key, err)
		}
	}

	if err := v.BindEnv("config_file", "CONFIG_FILE"); err != nil {
		return nil, fmt.Errorf("bind config_file: %w", err)
	}
	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Reference returns the configured RFM reference date, or the zero time.
func (d DatasetConfig) Reference() time.Time {
	t, err := time.Parse(time.DateOnly, d.ReferenceDate)
	if err != nil {
		return time.Time{}
	}
	return t
}
