package configx

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables source
// ===========================

// EnvSource loads configuration from environment variables
type EnvSource struct {
	prefix   string
	priority int
}

// NewEnvSource creates a new environment variable source
func NewEnvSource(prefix string, priority int) Source {
	return &EnvSource{
		prefix:   prefix,
		priority: priority,
	}
}

// Load loads configuration values from environment variables. Keys are
// lowercased and underscores become nesting: OAUTH_CONNECT -> oauth.connect.
func (s *EnvSource) Load() (map[string]any, error) {
	result := make(map[string]any)

	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key, val := parts[0], parts[1]

		if s.prefix != "" {
			if !strings.HasPrefix(key, s.prefix) {
				continue
			}
			key = strings.TrimPrefix(key, s.prefix)
		}

		key = strings.ToLower(strings.Trim(key, "_"))
		setNested(result, strings.Split(key, "_"), convertValue(val))
	}

	return result, nil
}

// Name returns the name of the source
func (s *EnvSource) Name() string {
	return fmt.Sprintf("env(%s)", s.prefix)
}

// Priority returns the priority of the source
func (s *EnvSource) Priority() int {
	return s.priority
}

// DotEnv file source
// ===========================

// DotEnvSource loads configuration from a .env file
type DotEnvSource struct {
	path     string
	priority int
}

// NewDotEnvSource creates a new .env file source
func NewDotEnvSource(path string, priority int) Source {
	return &DotEnvSource{
		path:     path,
		priority: priority,
	}
}

// Load loads configuration values from a .env file
func (s *DotEnvSource) Load() (map[string]any, error) {
	result := make(map[string]any)

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open .env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		// Strip surrounding quotes
		if len(val) > 1 && (val[0] == '"' && val[len(val)-1] == '"' ||
			val[0] == '\'' && val[len(val)-1] == '\'') {
			val = val[1 : len(val)-1]
		}

		key = strings.ToLower(key)
		setNested(result, strings.Split(key, "_"), convertValue(val))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	return result, nil
}

// Name returns the name of the source
func (s *DotEnvSource) Name() string {
	return fmt.Sprintf("dotenv(%s)", s.path)
}

// Priority returns the priority of the source
func (s *DotEnvSource) Priority() int {
	return s.priority
}

// Map source
// ===========================

// MapSource loads configuration from an in-memory map
type MapSource struct {
	values   map[string]any
	name     string
	priority int
}

// NewMapSource creates a new map source
func NewMapSource(values map[string]any, name string, priority int) Source {
	return &MapSource{
		values:   deepCopyMap(values),
		name:     name,
		priority: priority,
	}
}

// Load loads configuration values from the map
func (s *MapSource) Load() (map[string]any, error) {
	return deepCopyMap(s.values), nil
}

// Name returns the name of the source
func (s *MapSource) Name() string {
	return s.name
}

// Priority returns the priority of the source
func (s *MapSource) Priority() int {
	return s.priority
}

// JSON file source
// ===========================

// JSONFileSource loads configuration from a JSON file
type JSONFileSource struct {
	path     string
	priority int
}

// NewJSONFileSource creates a new JSON file source
func NewJSONFileSource(path string, priority int) Source {
	return &JSONFileSource{
		path:     path,
		priority: priority,
	}
}

// Load loads configuration values from the JSON file
func (s *JSONFileSource) Load() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	result := make(map[string]any)
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}

	return result, nil
}

// Name returns the name of the source
func (s *JSONFileSource) Name() string {
	return fmt.Sprintf("file(%s)", s.path)
}

// Priority returns the priority of the source
func (s *JSONFileSource) Priority() int {
	return s.priority
}

// Helpers
// ===========================

// setNested writes a value under nested map keys, creating maps as needed.
func setNested(result map[string]any, parts []string, val any) {
	current := result
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = val
			return
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
}

// convertValue attempts to convert a string value to a more specific type.
func convertValue(val string) any {
	switch val {
	case "true", "TRUE", "yes", "YES":
		return true
	case "false", "FALSE", "no", "NO":
		return false
	}

	if i, err := strconv.Atoi(val); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return f
	}

	return val
}
