package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *Config

type (
	ServerConfig struct {
		Addr            string
		Host            string
		ShutdownTimeout time.Duration
	}

	GradebookConfig struct {
		Format string // "json" | "csv"
		Path   string // defaults to <workDir>/grades.<format>
	}

	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (local; default), TEST, QA, PROD
		AppName  string
		Build    string
		WorkDir  string

		Server    ServerConfig
		Gradebook GradebookConfig

		defaultFromEmail string
		ReportRecipients []string

		SendgridApiKey string
		RollbarToken   string
	}
)

func init() {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Alama")
	v.SetDefault("build", "dev")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("reportRecipients", []string{})
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.shutdownTimeout", 20*time.Second)
	v.SetDefault("gradebook.format", "json")
	v.SetDefault("gradebook.path", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	workDir := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Env:              env,
		AppName:          v.GetString("appName"),
		Build:            v.GetString("build"),
		WorkDir:          workDir,
		defaultFromEmail: v.GetString("defaultFromEmail"),
		ReportRecipients: v.GetStringSlice("reportRecipients"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			Host:            v.GetString("server.host"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Gradebook: GradebookConfig{
			Format: CleanString(v.GetString("gradebook.format"), true /* lower */),
			Path:   v.GetString("gradebook.path"),
		},
	}
}

// DefaultFromEmail returns the configured sender address.
func (c *Config) DefaultFromEmail() mail.Address {
	if addr, err := mail.ParseAddress(c.defaultFromEmail); err == nil {
		return *addr
	}
	return mail.Address{Name: c.AppName, Address: c.defaultFromEmail}
}

// ReportAddresses returns the configured gradebook report recipients.
func (c *Config) ReportAddresses() []mail.Address {
	addrs := make([]mail.Address, 0, len(c.ReportRecipients))
	for _, rec := range c.ReportRecipients {
		if addr, err := mail.ParseAddress(rec); err == nil {
			addrs = append(addrs, *addr)
		} else {
			addrs = append(addrs, mail.Address{Address: rec})
		}
	}
	return addrs
}

// GradebookPath returns the backing file path, defaulting to grades.<format>
// in the project root.
func (c *Config) GradebookPath() string {
	if c.Gradebook.Path != "" {
		return c.Gradebook.Path
	}
	return filepath.Join(c.WorkDir, "grades."+c.Gradebook.Format)
}
