package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	StorageBolt   = "bolt"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type Config struct {
	Env          string `mapstructure:"env"`
	Debug        bool   `mapstructure:"debug"`
	TestMode     bool   `mapstructure:"testMode"`
	AppName      string `mapstructure:"appName"`
	Build        string `mapstructure:"build"`
	Timezone     string `mapstructure:"timezone"`
	StudentName  string `mapstructure:"studentName"`
	RollbarToken string `mapstructure:"rollbarToken"`

	Server struct {
		Address         string        `mapstructure:"address"`
		ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
		DisableReqLogs  bool          `mapstructure:"disableReqLogs"`
		DebugAddress    string        `mapstructure:"debugAddress"` // expvar & pprof; empty disables it
	} `mapstructure:"server"`

	Storage struct {
		Driver string `mapstructure:"driver"` // bolt (default), sqlite, memory
		Path   string `mapstructure:"path"`
	} `mapstructure:"storage"`

	Reminder struct {
		WindowDays int    `mapstructure:"windowDays"`
		Email      string `mapstructure:"email"` // digest recipient; empty disables the digest
	} `mapstructure:"reminder"`

	Mail struct {
		DefaultFromEmail string `mapstructure:"defaultFromEmail"`
		SendgridAPIKey   string `mapstructure:"sendgridApiKey"`
	} `mapstructure:"mail"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // console | json
	} `mapstructure:"log"`
}

// NewConfig reads the configuration from defaults, the optional `config/.env.<env>` file and the environment.
// Environment variables are prefixed with the upper-cased env name, eg. DEV_SERVER_ADDRESS.
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Kazi")
	v.SetDefault("build", "develop")
	v.SetDefault("timezone", "Local")
	v.SetDefault("studentName", "Current Student")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("server.debugAddress", "")
	v.SetDefault("storage.driver", StorageBolt)
	v.SetDefault("storage.path", filepath.Join("data", "kazi.db"))
	v.SetDefault("reminder.windowDays", 3)
	v.SetDefault("reminder.email", "")
	v.SetDefault("mail.defaultFromEmail", "noreply@localhost")
	v.SetDefault("mail.sendgridApiKey", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetDefault("env", env)
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}
	if conf.Reminder.WindowDays < 0 {
		return nil, NewValidationError(errors.New("reminder.windowDays cannot be negative"))
	}
	return conf, nil
}

// Location returns the time zone used to compute "today".
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "loading timezone %q", c.Timezone)
	}
	return loc, nil
}

// DefaultFromEmail returns the sender used for outgoing emails.
func (c *Config) DefaultFromEmail() string {
	return c.Mail.DefaultFromEmail
}
