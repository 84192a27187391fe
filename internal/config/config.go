package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"atolonline/pkg/atol"
)

// Config — конфигурация atolctl
type Config struct {
	API     APIConfig     `yaml:"api"`
	Group   string        `yaml:"group"`   // Код группы ККТ
	Service ServiceConfig `yaml:"service"` // Данные организации для блока service
	Journal string        `yaml:"journal"` // Путь к журналу документов
	Log     LogConfig     `yaml:"log"`
}

// APIConfig — подключение к АТОЛ Онлайн
type APIConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Login    string        `yaml:"login"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ServiceConfig — данные организации
type ServiceConfig struct {
	INN            string `yaml:"inn"`
	PaymentAddress string `yaml:"payment_address"`
	CallbackURL    string `yaml:"callback_url"`
}

// LogConfig — параметры логирования
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Переменные окружения, перекрывающие файл
const (
	EnvBaseURL  = "ATOL_BASE_URL"
	EnvLogin    = "ATOL_LOGIN"
	EnvPassword = "ATOL_PASSWORD"
	EnvGroup    = "ATOL_GROUP"
)

// DefaultPath — файл конфигурации, который ищется без флага --config
const DefaultPath = "atolctl.yaml"

// Load читает YAML-файл, применяет переменные окружения и значения по умолчанию.
// Пустой path или отсутствующий DefaultPath — только окружение и умолчания.
// Учетные данные API здесь не проверяются, см. ValidateAPI.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
		default:
			return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.API.BaseURL = getEnv(EnvBaseURL, c.API.BaseURL)
	c.API.Login = getEnv(EnvLogin, c.API.Login)
	c.API.Password = getEnv(EnvPassword, c.API.Password)
	c.Group = getEnv(EnvGroup, c.Group)
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = atol.DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.Journal == "" {
		c.Journal = "journal.json"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate проверяет параметры, общие для всех команд
func (c *Config) Validate() error {
	if c.API.Timeout < 0 {
		return fmt.Errorf("отрицательный api.timeout: %s", c.API.Timeout)
	}
	return nil
}

// ValidateAPI проверяет параметры, без которых нельзя обратиться к API
func (c *Config) ValidateAPI() error {
	var errs []error
	if c.API.Login == "" {
		errs = append(errs, fmt.Errorf("не задан api.login (%s)", EnvLogin))
	}
	if c.API.Password == "" {
		errs = append(errs, fmt.Errorf("не задан api.password (%s)", EnvPassword))
	}
	if c.Group == "" {
		errs = append(errs, fmt.Errorf("не задан group (%s)", EnvGroup))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
