package configx

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config is the main configuration interface.
type Config interface {
	// Get retrieves a configuration value by key, supporting dot notation
	// for nested keys ("oauth.providers.github.client_id").
	Get(key string) Value

	// Set sets a configuration value, creating nested maps as needed.
	Set(key string, val any)

	// Has checks if a configuration key exists.
	Has(key string) bool

	// AllSettings returns a deep copy of all settings.
	AllSettings() map[string]any

	// AddSource adds a configuration source and loads it immediately.
	AddSource(source Source) Config

	// LoadAll reloads every source in priority order.
	LoadAll() error

	// RequireEnv fails when any of the given environment variables is unset.
	RequireEnv(envVars ...string) error
}

// Source is a single origin of configuration values.
type Source interface {
	// Load loads configuration values from the source.
	Load() (map[string]any, error)

	// Name returns the name of the source.
	Name() string

	// Priority returns the priority of the source (higher overrides lower).
	Priority() int
}

// Value wraps a configuration value and provides type conversions.
type Value interface {
	IsSet() bool

	AsString() string
	AsStringDefault(def string) string

	AsInt() int
	AsIntDefault(def int) int

	AsBool() bool
	AsBoolDefault(def bool) bool

	AsDuration() time.Duration
	AsDurationDefault(def time.Duration) time.Duration

	AsStringSlice() []string

	// AsMap returns the value as a map of child Values.
	AsMap() map[string]Value

	// AsStruct unmarshals the value into a struct via its json tags.
	AsStruct(target any) error
}

// Option configures a Config instance.
type Option func(*configuration)

// configuration is the concrete implementation of Config.
type configuration struct {
	sync.RWMutex
	values  map[string]any
	sources []Source
}

// New creates a new Config instance.
func New(opts ...Option) (Config, error) {
	cfg := &configuration{
		values:  make(map[string]any),
		sources: make([]Source, 0),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg, nil
}

// Get retrieves a configuration value by key.
func (c *configuration) Get(key string) Value {
	c.RLock()
	defer c.RUnlock()

	if key == "" {
		return newValue("", c.values)
	}
	return newValue(key, c.findValue(key))
}

// findValue walks nested maps following dot-delimited key parts.
func (c *configuration) findValue(key string) any {
	parts := strings.Split(key, ".")
	current := c.values

	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil
		}
		if i == len(parts)-1 {
			return v
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		current = m
	}

	return nil
}

// Set sets a configuration value.
func (c *configuration) Set(key string, val any) {
	c.Lock()
	defer c.Unlock()

	parts := strings.Split(key, ".")
	current := c.values

	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = val
			return
		}

		if m, ok := current[part].(map[string]any); ok {
			current = m
			continue
		}

		// Not a map (or missing): replace with a fresh one
		newMap := make(map[string]any)
		current[part] = newMap
		current = newMap
	}
}

// Has checks if a configuration key exists.
func (c *configuration) Has(key string) bool {
	c.RLock()
	defer c.RUnlock()
	return c.findValue(key) != nil
}

// AllSettings returns a copy of all settings.
func (c *configuration) AllSettings() map[string]any {
	c.RLock()
	defer c.RUnlock()
	return deepCopyMap(c.values)
}

// AddSource adds a configuration source and loads it immediately.
func (c *configuration) AddSource(source Source) Config {
	c.Lock()
	defer c.Unlock()

	c.sources = append(c.sources, source)
	sort.SliceStable(c.sources, func(i, j int) bool {
		return c.sources[i].Priority() < c.sources[j].Priority()
	})

	if data, err := source.Load(); err == nil {
		mergeMapRecursive(c.values, data)
	}

	return c
}

// LoadAll reloads all sources, lowest priority first.
func (c *configuration) LoadAll() error {
	c.Lock()
	defer c.Unlock()

	newValues := make(map[string]any)
	for _, source := range c.sources {
		data, err := source.Load()
		if err != nil {
			return fmt.Errorf("error loading from source %s: %w", source.Name(), err)
		}
		mergeMapRecursive(newValues, data)
	}

	c.values = newValues
	return nil
}

// RequireEnv fails when any required environment variable is unset.
func (c *configuration) RequireEnv(envVars ...string) error {
	var missing []string
	for _, env := range envVars {
		if os.Getenv(env) == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// mergeMapRecursive merges src into dst, descending into nested maps.
func mergeMapRecursive(dst, src map[string]any) {
	for k, v := range src {
		if srcMap, ok := v.(map[string]any); ok {
			if dstMap, ok := dst[k].(map[string]any); ok {
				mergeMapRecursive(dstMap, srcMap)
				continue
			}
			dst[k] = deepCopyMap(srcMap)
			continue
		}
		dst[k] = v
	}
}

// deepCopyMap creates a deep copy of a map.
func deepCopyMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case map[string]any:
			result[k] = deepCopyMap(val)
		case []any:
			result[k] = deepCopySlice(val)
		default:
			result[k] = val
		}
	}
	return result
}

func deepCopySlice(s []any) []any {
	result := make([]any, len(s))
	for i, v := range s {
		switch val := v.(type) {
		case map[string]any:
			result[i] = deepCopyMap(val)
		case []any:
			result[i] = deepCopySlice(val)
		default:
			result[i] = v
		}
	}
	return result
}

//-----------------------------------------------------------------------------
// Value implementation
//-----------------------------------------------------------------------------

type value struct {
	key string
	val any
}

func newValue(key string, val any) Value {
	return &value{key: key, val: val}
}

func (v *value) IsSet() bool {
	return v.val != nil
}

func (v *value) AsString() string {
	return v.AsStringDefault("")
}

func (v *value) AsStringDefault(def string) string {
	if !v.IsSet() {
		return def
	}
	switch val := v.val.(type) {
	case string:
		return val
	case int, int64, uint, uint64, float32, float64, bool:
		return fmt.Sprintf("%v", val)
	default:
		return def
	}
}

func (v *value) AsInt() int {
	return v.AsIntDefault(0)
}

func (v *value) AsIntDefault(def int) int {
	if !v.IsSet() {
		return def
	}
	switch val := v.val.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func (v *value) AsBool() bool {
	return v.AsBoolDefault(false)
}

func (v *value) AsBoolDefault(def bool) bool {
	if !v.IsSet() {
		return def
	}
	switch val := v.val.(type) {
	case bool:
		return val
	case int:
		return val != 0
	case string:
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
		switch val {
		case "yes", "y", "Y":
			return true
		}
	}
	return def
}

func (v *value) AsDuration() time.Duration {
	return v.AsDurationDefault(0)
}

func (v *value) AsDurationDefault(def time.Duration) time.Duration {
	if !v.IsSet() {
		return def
	}
	switch val := v.val.(type) {
	case time.Duration:
		return val
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return def
}

func (v *value) AsStringSlice() []string {
	if !v.IsSet() {
		return nil
	}
	switch val := v.val.(type) {
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			result[i] = newValue(fmt.Sprintf("%s[%d]", v.key, i), item).AsString()
		}
		return result
	case []string:
		return val
	case string:
		return []string{val}
	}
	return nil
}

func (v *value) AsMap() map[string]Value {
	if !v.IsSet() {
		return map[string]Value{}
	}
	if val, ok := v.val.(map[string]any); ok {
		result := make(map[string]Value, len(val))
		for k, item := range val {
			result[k] = newValue(fmt.Sprintf("%s.%s", v.key, k), item)
		}
		return result
	}
	return map[string]Value{}
}

func (v *value) AsStruct(target any) error {
	if !v.IsSet() {
		return fmt.Errorf("value not set")
	}

	jsonData, err := json.Marshal(v.val)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to JSON: %w", err)
	}
	if err := json.Unmarshal(jsonData, target); err != nil {
		return fmt.Errorf("failed to unmarshal configuration to struct: %w", err)
	}
	return nil
}

//-----------------------------------------------------------------------------
// Builder
//-----------------------------------------------------------------------------

const (
	PriorityDefault = 10 // lowest
	PriorityEnv     = 20
	PriorityDotEnv  = 25
	PriorityFile    = 30
	PriorityMap     = 40 // highest
)

// Builder provides a fluent API for assembling configuration.
type Builder interface {
	// FromFile adds a JSON file source.
	FromFile(path string) Builder

	// FromDotEnv adds a .env file source.
	FromDotEnv(path string) Builder

	// FromEnv adds an environment variable source with a prefix.
	FromEnv(prefix string) Builder

	// FromMap adds a map source.
	FromMap(values map[string]any, name string) Builder

	// WithDefaults adds lowest-priority default values.
	WithDefaults(defaults map[string]any) Builder

	// RequireEnv specifies environment variables that must be present.
	RequireEnv(envVars ...string) Builder

	// Build builds the configuration.
	Build() (Config, error)
}

type builder struct {
	options     []Option
	requiredEnv []string
}

// NewBuilder creates a new configuration builder.
func NewBuilder() Builder {
	return &builder{}
}

func (b *builder) FromFile(path string) Builder {
	b.options = append(b.options, WithSource(NewJSONFileSource(path, PriorityFile)))
	return b
}

func (b *builder) FromDotEnv(path string) Builder {
	b.options = append(b.options, WithSource(NewDotEnvSource(path, PriorityDotEnv)))
	return b
}

func (b *builder) FromEnv(prefix string) Builder {
	b.options = append(b.options, WithSource(NewEnvSource(prefix, PriorityEnv)))
	return b
}

func (b *builder) FromMap(values map[string]any, name string) Builder {
	b.options = append(b.options, WithSource(NewMapSource(values, name, PriorityMap)))
	return b
}

func (b *builder) WithDefaults(defaults map[string]any) Builder {
	b.options = append(b.options, WithSource(NewMapSource(defaults, "defaults", PriorityDefault)))
	return b
}

func (b *builder) RequireEnv(envVars ...string) Builder {
	b.requiredEnv = append(b.requiredEnv, envVars...)
	return b
}

func (b *builder) Build() (Config, error) {
	cfg, err := New(b.options...)
	if err != nil {
		return nil, err
	}

	if len(b.requiredEnv) > 0 {
		if err := cfg.RequireEnv(b.requiredEnv...); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// WithSource adds a configuration source.
func WithSource(source Source) Option {
	return func(c *configuration) {
		c.AddSource(source)
	}
}
