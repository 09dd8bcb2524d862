package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageBolt     = "bolt"
)

// Email backends
const (
	EmailConsole  = "console"
	EmailSendgrid = "sendgrid"
)

type (
	Config struct {
		AppName      string
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		Debug        bool
		TestMode     bool
		WorkDir      string
		RollbarToken string

		Server   ServerConfig
		Storage  StorageConfig
		Database DatabaseConfig
		Grading  GradingConfig
		Email    EmailConfig
	}

	ServerConfig struct {
		Address         string
		Host            string
		ShutdownTimeout time.Duration
	}

	StorageConfig struct {
		Driver   string
		BoltPath string
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	EmailConfig struct {
		Backend        string
		SendgridAPIKey string
		FromName       string
		FromAddress    string
	}

	GradingConfig struct {
		SoonWindowDays          int
		WarningWindowDays       int
		DefaultAssignmentWeight float64
		Timezone                string
	}
)

func (dbc DatabaseConfig) Address() string {
	return net.JoinHostPort(dbc.Host, dbc.Port)
}

// Location resolves the configured grading timezone. Day boundaries (due today, overdue...) are computed in it.
func (gc GradingConfig) Location() *time.Location {
	if gc.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(gc.Timezone)
	if err != nil {
		log.Printf("config: unknown grading timezone %q, using local time", gc.Timezone)
		return time.Local
	}
	return loc
}

func (ec EmailConfig) From() mail.Address {
	return mail.Address{Name: ec.FromName, Address: ec.FromAddress}
}

func newViper() *viper.Viper {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "StudyFlow")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.shutdownTimeout", 10*time.Second)

	conf.SetDefault("storage.driver", StorageMemory)
	conf.SetDefault("storage.boltPath", filepath.Join("data", "studyflow.db"))

	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.name", "studyflow")
	conf.SetDefault("database.user", "studyflow")
	conf.SetDefault("database.password", "")
	conf.SetDefault("database.adminUser", "")
	conf.SetDefault("database.adminPassword", "")
	conf.SetDefault("database.disableTLS", true)

	conf.SetDefault("grading.soonWindowDays", 7)
	conf.SetDefault("grading.warningWindowDays", 3)
	conf.SetDefault("grading.defaultAssignmentWeight", 1.0)
	conf.SetDefault("grading.timezone", "")

	conf.SetDefault("email.backend", EmailConsole)
	conf.SetDefault("email.sendgridApiKey", "")
	conf.SetDefault("email.fromName", "StudyFlow")
	conf.SetDefault("email.fromAddress", "noreply@localhost")

	return conf
}

// NewConfig loads the configuration from defaults, `config/.env.<env>` and the environment.
// Environment variables are prefixed with the uppercased env name, eg. `PROD_DATABASE_HOST`.
func NewConfig() *Config {
	conf := newViper()

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		WorkDir:      wd,
		RollbarToken: conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:         conf.GetString("server.address"),
			Host:            conf.GetString("server.host"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
		},
		Storage: StorageConfig{
			Driver:   CleanString(conf.GetString("storage.driver"), true /* lower */),
			BoltPath: conf.GetString("storage.boltPath"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("database.engine"),
			Host:          conf.GetString("database.host"),
			Port:          conf.GetString("database.port"),
			Name:          conf.GetString("database.name"),
			User:          conf.GetString("database.user"),
			Password:      conf.GetString("database.password"),
			AdminUser:     conf.GetString("database.adminUser"),
			AdminPassword: conf.GetString("database.adminPassword"),
			DisableTLS:    conf.GetBool("database.disableTLS"),
		},
		Grading: GradingConfig{
			SoonWindowDays:          conf.GetInt("grading.soonWindowDays"),
			WarningWindowDays:       conf.GetInt("grading.warningWindowDays"),
			DefaultAssignmentWeight: conf.GetFloat64("grading.defaultAssignmentWeight"),
			Timezone:                conf.GetString("grading.timezone"),
		},
		Email: EmailConfig{
			Backend:        CleanString(conf.GetString("email.backend"), true /* lower */),
			SendgridAPIKey: conf.GetString("email.sendgridApiKey"),
			FromName:       conf.GetString("email.fromName"),
			FromAddress:    conf.GetString("email.fromAddress"),
		},
	}
}
