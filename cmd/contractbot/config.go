package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bytedance/sonic"

	"github.com/tashfin/contractbot/docgen"
)

// Config is the runner configuration. Templates points the document
// assembler at the .docx sources; RedisAddr is optional, sessions stay
// in memory when it is empty.
type Config struct {
	Token     string        `json:"token"`
	RedisAddr string        `json:"redis_addr"`
	LogLevel  string        `json:"log_level"`
	Templates docgen.Config `json:"templates"`
}

func loadConfig(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Config
	if err := sonic.Unmarshal(file, &conf); err != nil {
		return nil, err
	}
	if conf.Token == "" {
		return nil, fmt.Errorf("config %s: token is required", path)
	}
	if len(conf.Templates.MurabahaTemplates) == 0 && len(conf.Templates.IstisnaTemplates) == 0 {
		return nil, fmt.Errorf("config %s: no templates configured", path)
	}
	if conf.Templates.OutputDir == "" {
		conf.Templates.OutputDir = os.TempDir()
	}
	return &conf, nil
}

func (c *Config) slogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
