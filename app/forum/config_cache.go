package forum

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const MainForum = "main"

type ConfigCache struct {
	forumsDir string
	cache     map[string]*Config
	mu        sync.RWMutex
}

func NewConfigCache(forumsDir string) *ConfigCache {
	return &ConfigCache{
		forumsDir: forumsDir,
		cache:     make(map[string]*Config),
	}
}

// Run loads every <name>.yml in the forums directory. A missing directory
// is not an error.
func (cc *ConfigCache) Run() error {
	if cc.forumsDir == "" {
		return nil
	}
	if _, err := os.Stat(cc.forumsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.forumsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		forumName := strings.TrimSuffix(filepath.Base(file), ".yml")

		forumConfig, err := cc.LoadConfig(forumName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Configuration loaded", "forum", forumName, "title", forumConfig.Title,
			"concurrent_fetch", forumConfig.Settings.ConcurrentFetch)
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(forumName string) (*Config, error) {
	configFile := cc.getConfigFilePath(forumName)
	forumConfig, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	forumConfig.Name = forumName

	if err := cc.Register(forumConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	return forumConfig, nil
}

// Register validates and stores a config that did not come from a file.
func (cc *ConfigCache) Register(forumConfig *Config) error {
	if err := cc.validateConfig(forumConfig); err != nil {
		return err
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[forumConfig.Name] = forumConfig

	return nil
}

func (cc *ConfigCache) GetConfig(forumName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	forumConfig, ok := cc.cache[forumName]
	if !ok {
		return nil, fmt.Errorf("forum config with name '%s' not found", forumName)
	}
	return forumConfig, nil
}

// GetConfigs returns the configs sorted by name.
func (cc *ConfigCache) GetConfigs() []*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configs := make([]*Config, 0, len(cc.cache))
	for _, v := range cc.cache {
		configs = append(configs, v)
	}
	sort.Slice(configs, func(i, j int) bool {
		return configs[i].Name < configs[j].Name
	})
	return configs
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var forumConfig Config
	if err := yaml.Unmarshal(data, &forumConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if forumConfig.Settings.Timezone == "" {
		forumConfig.Settings.Timezone = "UTC"
	}

	return &forumConfig, nil
}

func (cc *ConfigCache) validateConfig(forumConfig *Config) error {
	if forumConfig == nil {
		return fmt.Errorf("forumConfig is nil")
	}

	requiredFields := []struct {
		name  string
		value string
	}{
		{"forum name", forumConfig.Name},
		{"title", forumConfig.Title},
		{"authors URL", forumConfig.AuthorsURL},
		{"posts URL", forumConfig.PostsURL},
	}

	for _, field := range requiredFields {
		if field.value == "" {
			return fmt.Errorf("%s is required", field.name)
		}
	}

	for _, raw := range []string{forumConfig.AuthorsURL, forumConfig.PostsURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid endpoint URL: %s", raw)
		}
	}

	if forumConfig.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	if _, err := time.LoadLocation(forumConfig.Settings.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %s: %w", forumConfig.Settings.Timezone, err)
	}

	return nil
}

func (cc *ConfigCache) getConfigFilePath(forumName string) string {
	return filepath.Join(cc.forumsDir, forumName+".yml")
}
