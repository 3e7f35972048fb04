package resource

import (
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const defaultPropertiesPath = "configs/application.yml"

var (
	properties = viper.New()
	mutex      sync.RWMutex
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
)

// Load reads the properties file pointed by PROPERTIES_FILE_PATH, falling back to configs/application.yml.
func Load() error {
	path, ok := os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		path = defaultPropertiesPath
	}
	return Init(path)
}

// Init loads application properties from a YAML file, resolving ${ENV:default} placeholders.
func Init(filepath string) error {
	loaded := viper.New()
	loaded.SetConfigFile(filepath)
	loaded.SetConfigType("yml")

	if err := loaded.ReadInConfig(); err != nil {
		return fmt.Errorf("fail to read properties %s: %w", filepath, err)
	}

	resolved := make(map[string]any)
	parsePropertiesMap("", loaded.AllSettings(), resolved)
	for key, value := range resolved {
		loaded.Set(key, value)
	}

	mutex.Lock()
	properties = loaded
	mutex.Unlock()
	return nil
}

// parsePropertiesMap flattens the YAML tree, resolving placeholders on string leaves
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			result[fullKey] = v
		}
	}
}

// resolveEnvVariable replaces every ${NAME:default} occurrence with the environment value or its default
func resolveEnvVariable(value string) string {
	return envPattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := envPattern.FindStringSubmatch(match)
		if envValue, exists := os.LookupEnv(groups[1]); exists {
			return envValue
		}
		return groups[2]
	})
}

func current() *viper.Viper {
	mutex.RLock()
	defer mutex.RUnlock()
	return properties
}

// Set overrides a single property. Mostly useful in tests.
func Set(key string, value any) {
	current().Set(key, value)
}

func IsSet(key string) bool {
	return current().IsSet(key)
}

func Get(key string) any {
	return current().Get(key)
}

func GetString(key string) string {
	return current().GetString(key)
}

// GetStringOrDefault returns the property or defaultValue when it is missing or blank.
func GetStringOrDefault(key, defaultValue string) string {
	if value := current().GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func GetBool(key string) bool {
	return current().GetBool(key)
}

func GetDuration(key string) time.Duration {
	return current().GetDuration(key)
}

// GetDurationOrDefault returns the property or defaultValue when it is missing or not positive.
func GetDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := current().GetDuration(key); value > 0 {
		return value
	}
	return defaultValue
}

func GetInt(key string) int {
	return current().GetInt(key)
}

// GetIntOrDefault returns the property or defaultValue when it is missing or zero.
func GetIntOrDefault(key string, defaultValue int) int {
	if value := current().GetInt(key); value != 0 {
		return value
	}
	return defaultValue
}

func GetInt64(key string) int64 {
	return current().GetInt64(key)
}

func GetFloat64(key string) float64 {
	return current().GetFloat64(key)
}

func GetStringSlice(key string) []string {
	return current().GetStringSlice(key)
}
