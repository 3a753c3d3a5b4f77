package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// Connection - два сохраняемых ключа подключения к бэкенду.
type Connection struct {
	URL     string `yaml:"url"`
	AnonKey string `yaml:"anon_key"`
}

// Complete reports whether both keys are present.
func (c Connection) Complete() bool {
	return strings.TrimSpace(c.URL) != "" && strings.TrimSpace(c.AnonKey) != ""
}

func DefaultConnectionPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".kalasangam", "connection.yaml")
	}
	return filepath.Join(home, ".kalasangam", "connection.yaml")
}

// LoadConnection reads the connection file. A missing file yields an empty
// Connection and no error.
func LoadConnection(path string) (Connection, error) {
	var conn Connection

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return conn, nil
	}
	if err != nil {
		return conn, fmt.Errorf("read connection file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &conn); err != nil {
		return conn, fmt.Errorf("parse connection file %s: %w", path, err)
	}

	conn.URL = strings.TrimSpace(conn.URL)
	conn.AnonKey = strings.TrimSpace(conn.AnonKey)
	return conn, nil
}

// SaveConnection writes the file atomically; it holds a credential so it is
// created with 0600.
func SaveConnection(path string, conn Connection) error {
	if !conn.Complete() {
		return errors.New("both url and anon key are required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create connection dir: %w", err)
	}

	data, err := yaml.Marshal(conn)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write connection file: %w", err)
	}
	return os.Rename(tmp, path)
}

// ResolveConnection merges the persisted keys with the main config: a DSN
// given in config/env wins over the file, the anon key only lives in the file
// or ANON_KEY.
func (c *Config) ResolveConnection() (Connection, error) {
	conn, err := LoadConnection(c.ConnectionFile)
	if err != nil {
		return conn, err
	}
	if c.Database.DSN != "" {
		conn.URL = c.Database.DSN
	}
	if v := os.Getenv("ANON_KEY"); v != "" {
		conn.AnonKey = v
	}
	return conn, nil
}
