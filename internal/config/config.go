package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPattern формат ${VAR} или ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults расширяет переменные окружения с поддержкой дефолтных значений
// Формат: ${VAR:-default}
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		matches := envPattern.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}

		varName := matches[1]
		defaultValue := ""
		if len(matches) > 2 {
			defaultValue = matches[2]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}

// newViper создает экземпляр viper и читает конфигурационный файл
func newViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	ext := strings.TrimLeft(filepath.Ext(configFile), ".")

	v.SetConfigFile(configFile)
	v.SetConfigType(ext)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig: %w", err)
	}

	return v, nil
}

// decode раскрывает переменные окружения и декодирует настройки в C.
// Значения копируются в отдельный экземпляр viper, чтобы повторное чтение файла не упиралось в старые override.
func decode[C any](v *viper.Viper) (*C, error) {
	expandedViper := viper.New()

	for _, k := range v.AllKeys() {
		value := v.Get(k)
		str, ok := value.(string)
		if !ok {
			expandedViper.Set(k, value)
			continue
		}

		expanded := expandEnvWithDefaults(str)

		// Если значение выглядит как число или boolean, пытаемся распарсить
		if expanded == "true" || expanded == "false" {
			boolValue, _ := strconv.ParseBool(expanded)
			expandedViper.Set(k, boolValue)
		} else if intValue, err := strconv.Atoi(expanded); err == nil {
			expandedViper.Set(k, intValue)
		} else {
			expandedViper.Set(k, expanded)
		}
	}

	cfg := new(C)
	if err := expandedViper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}

// InitConfig читает конфигурационный файл и возвращает экземпляр конфигурации
// Использует generic для работы с произвольным типом конфигурации
func InitConfig[C any](configFile string) (*C, error) {
	v, err := newViper(configFile)
	if err != nil {
		return nil, err
	}

	return decode[C](v)
}

// WatchConfig следит за изменениями конфигурационного файла (fsnotify) и вызывает onChange
// с перечитанной конфигурацией или ошибкой декодирования
func WatchConfig[C any](configFile string, onChange func(cfg *C, err error)) error {
	v, err := newViper(configFile)
	if err != nil {
		return err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		onChange(decode[C](v))
	})
	v.WatchConfig()

	return nil
}

// Load читает Config из файла и применяет значения по умолчанию
func Load(configFile string) (*Config, error) {
	cfg, err := InitConfig[Config](configFile)
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	return cfg, nil
}
