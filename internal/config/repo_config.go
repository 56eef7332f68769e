package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"mergecheck.dev/mergecheck/internal/git"
)

const configFileName = ".mergecheck_config"

// Defaults are the git client's own
const (
	DefaultTrunk          = git.DefaultTrunk
	DefaultRemote         = git.DefaultRemote
	DefaultGitBinary      = git.DefaultBinary
	DefaultCommandTimeout = git.DefaultCommandTimeout
)

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Trunk                 *string `json:"trunk,omitempty"`
	Remote                *string `json:"remote,omitempty"`
	GitBinary             *string `json:"gitBinary,omitempty"`
	CommandTimeoutSeconds *int    `json:"commandTimeoutSeconds,omitempty"`
}

// Path returns the location of the config file inside a git directory.
// gitDir is the common directory shared by all worktrees, see git.Client.GitCommonDir.
func Path(gitDir string) string {
	return filepath.Join(gitDir, configFileName)
}

// GetRepoConfig reads the repository configuration.
// A missing file yields an empty config, so every getter falls back to its default.
func GetRepoConfig(gitDir string) (*RepoConfig, error) {
	data, err := os.ReadFile(Path(gitDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &RepoConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read repo config: %w", err)
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// TrunkName returns the configured default branch, or "master"
func (c *RepoConfig) TrunkName() string {
	if c.Trunk != nil && *c.Trunk != "" {
		return *c.Trunk
	}
	return DefaultTrunk
}

// RemoteName returns the configured remote, or "origin"
func (c *RepoConfig) RemoteName() string {
	if c.Remote != nil && *c.Remote != "" {
		return *c.Remote
	}
	return DefaultRemote
}

// GitBinaryPath returns the configured git executable, or "git"
func (c *RepoConfig) GitBinaryPath() string {
	if c.GitBinary != nil && *c.GitBinary != "" {
		return *c.GitBinary
	}
	return DefaultGitBinary
}

// CommandTimeout returns the per-invocation timeout
func (c *RepoConfig) CommandTimeout() time.Duration {
	if c.CommandTimeoutSeconds != nil && *c.CommandTimeoutSeconds > 0 {
		return time.Duration(*c.CommandTimeoutSeconds) * time.Second
	}
	return DefaultCommandTimeout
}

// IsInitialized checks if mergecheck has written a config for this repository
func IsInitialized(gitDir string) bool {
	_, err := os.Stat(Path(gitDir))
	return err == nil
}

// Save writes the configuration, replacing any existing file
func Save(gitDir string, config *RepoConfig) error {
	info, err := os.Stat(gitDir)
	if err != nil {
		return fmt.Errorf("not a git directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a git directory: %s", gitDir)
	}

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(Path(gitDir), configJSON, 0600)
}

// SetTrunk updates the trunk branch in the config
func SetTrunk(gitDir string, trunkName string) error {
	config, err := GetRepoConfig(gitDir)
	if err != nil {
		config = &RepoConfig{}
	}
	config.Trunk = &trunkName
	return Save(gitDir, config)
}

// SetRemote updates the remote in the config
func SetRemote(gitDir string, remoteName string) error {
	config, err := GetRepoConfig(gitDir)
	if err != nil {
		config = &RepoConfig{}
	}
	config.Remote = &remoteName
	return Save(gitDir, config)
}
