package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/caarlos0/env"
)

const (
	DefaultServerAddr = ":8080"
	DefaultFilePath   = "presets.json"
	DefaultLogLevel   = "info"
)

// Config содержит конфигурацию приложения
type Config struct {
	ServerAddr string `json:"server_address" env:"SERVER_ADDRESS"`
	FilePath   string `json:"file_storage_path" env:"FILE_STORAGE_PATH"`
	DBurl      string `json:"database_dsn" env:"DATABASE_DSN"`
	AuditFile  string `json:"audit_file" env:"AUDIT_FILE"`
	AuditURL   string `json:"audit_url" env:"AUDIT_URL"`
	LogLevel   string `json:"log_level" env:"LOG_LEVEL"`
}

// NewConfig собирает конфигурацию: значения по умолчанию, файл, окружение, флаги
func NewConfig() *Config {
	c := defaultConfig()

	configFile := getConfigPath(os.Args[1:])
	c.loadFromFile(configFile)
	c.getArgsFromEnv()
	c.getArgsFromCli(flag.CommandLine, os.Args[1:])

	return c
}

func defaultConfig() *Config {
	return &Config{
		ServerAddr: DefaultServerAddr,
		FilePath:   DefaultFilePath,
		LogLevel:   DefaultLogLevel,
	}
}

func getConfigPath(args []string) string {
	for i, arg := range args {
		if (arg == "-c" || arg == "-config") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("CONFIG")
}

func (c *Config) loadFromFile(filename string) {
	if filename == "" {
		return
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return
	}
	json.Unmarshal(data, c)
}

func (c *Config) getArgsFromCli(fs *flag.FlagSet, args []string) {
	fs.StringVar(&c.ServerAddr, "a", c.ServerAddr, "server host")
	fs.StringVar(&c.FilePath, "f", c.FilePath, "preset file storage path")
	fs.StringVar(&c.DBurl, "d", c.DBurl, "database DSN")
	fs.StringVar(&c.AuditFile, "audit-file", c.AuditFile, "audit file path")
	fs.StringVar(&c.AuditURL, "audit-url", c.AuditURL, "audit server URL")
	fs.StringVar(&c.LogLevel, "l", c.LogLevel, "log level")
	fs.String("c", "", "config file path")
	fs.String("config", "", "config file path")
	fs.Parse(args)
}

func (c *Config) getArgsFromEnv() {
	if err := env.Parse(c); err != nil {
		log.Fatal(err)
	}
}

func (c Config) GetAddress() string {
	return c.ServerAddr
}

func (c Config) GetFilePath() string {
	return c.FilePath
}

func (c Config) GetAuditFile() string {
	return c.AuditFile
}

func (c Config) GetAuditURL() string {
	return c.AuditURL
}
