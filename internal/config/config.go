package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath = "./config"
	defaultConfigName = "config.yaml"
)

// MustLoad читает .env (если есть), затем yaml-конфиг, затем переменные
// окружения. При любой ошибке останавливает процесс.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("cannot load .env file: %s", err)
	}

	configPath := resolveConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	cfg.configPath = configPath

	return &cfg
}

func resolveConfigPath() string {
	path := os.Getenv("CONFIG_FILEPATH")
	if path == "" {
		path = defaultConfigPath
	}
	name := os.Getenv("CONFIG_FILENAME")
	if name == "" {
		name = defaultConfigName
	}
	return filepath.Join(path, name)
}

// Write сохраняет текущий конфиг в файл, из которого он был загружен.
func (c *Config) Write() error {
	op := "config.Write()"

	if c.configPath == "" {
		return fmt.Errorf("%s: config path is not set", op)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.WriteFile(filepath.Clean(c.configPath), data, 0644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ReadPromptFromFile заменяет системный промпт содержимым файла из конфига.
// Без настроек остаётся промпт из конфига.
func (c *Config) ReadPromptFromFile() error {
	op := "config.ReadPromptFromFile()"

	if c.AI.PromptFileName == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(c.AI.PromptFilePath, c.AI.PromptFileName))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.AI.SystemRolePrompt = string(data)
	return nil
}
