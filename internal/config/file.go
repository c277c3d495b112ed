package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig - структура файла конфигурации. Отсутствующие поля не меняют конфигурацию.
type FileConfig struct {
	ServerAddress   *string  `json:"server_address" yaml:"server_address"`
	Mode            *string  `json:"mode" yaml:"mode"`
	StaticURLs      []string `json:"static_urls" yaml:"static_urls"`
	Categories      []string `json:"categories" yaml:"categories"`
	MaxAttempts     *int     `json:"max_attempts" yaml:"max_attempts"`
	RetryDelay      *string  `json:"retry_delay" yaml:"retry_delay"`
	MaxWaitForLoad  *string  `json:"max_wait_for_load" yaml:"max_wait_for_load"`
	FormFactor      *string  `json:"form_factor" yaml:"form_factor"`
	Locale          *string  `json:"locale" yaml:"locale"`
	LighthousePath  *string  `json:"lighthouse_path" yaml:"lighthouse_path"`
	ChromePath      *string  `json:"chrome_path" yaml:"chrome_path"`
	ChromeFlags     []string `json:"chrome_flags" yaml:"chrome_flags"`
	EnableCORS      *bool    `json:"enable_cors" yaml:"enable_cors"`
	CSVHeaderPolicy *string  `json:"csv_header_policy" yaml:"csv_header_policy"`
	MaxUploadSize   *int64   `json:"max_upload_size" yaml:"max_upload_size"`
	WriteTimeout    *string  `json:"write_timeout" yaml:"write_timeout"`
	EnableHTTPS     *bool    `json:"enable_https" yaml:"enable_https"`
	TLSCertFile     *string  `json:"tls_cert_file" yaml:"tls_cert_file"`
	TLSKeyFile      *string  `json:"tls_key_file" yaml:"tls_key_file"`

	retryDelay     time.Duration
	maxWaitForLoad time.Duration
	writeTimeout   time.Duration
}

// LoadFile читает файл конфигурации; формат определяется по расширению (.yaml/.yml, иначе JSON)
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	if err := fc.parseDurations(); err != nil {
		return nil, err
	}
	return &fc, nil
}

func (fc *FileConfig) parseDurations() error {
	fields := []struct {
		name string
		raw  *string
		dst  *time.Duration
	}{
		{"retry_delay", fc.RetryDelay, &fc.retryDelay},
		{"max_wait_for_load", fc.MaxWaitForLoad, &fc.maxWaitForLoad},
		{"write_timeout", fc.WriteTimeout, &fc.writeTimeout},
	}
	for _, f := range fields {
		if f.raw == nil {
			continue
		}
		d, err := time.ParseDuration(*f.raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
		*f.dst = d
	}
	return nil
}

// applyFileConfig переносит значения из файла, кроме заданных флагами
func (c *Config) applyFileConfig(fc *FileConfig, explicit map[string]bool) {
	setString := func(flagName string, dst *string, src *string) {
		if src != nil && !explicit[flagName] {
			*dst = *src
		}
	}
	setBool := func(flagName string, dst *bool, src *bool) {
		if src != nil && !explicit[flagName] {
			*dst = *src
		}
	}

	setString("a", &c.ServerAddress, fc.ServerAddress)
	setString("m", &c.Mode, fc.Mode)
	setString("form-factor", &c.FormFactor, fc.FormFactor)
	setString("locale", &c.Locale, fc.Locale)
	setString("l", &c.LighthousePath, fc.LighthousePath)
	setString("chrome", &c.ChromePath, fc.ChromePath)
	setString("header-policy", &c.CSVHeaderPolicy, fc.CSVHeaderPolicy)
	setString("", &c.TLSCertFile, fc.TLSCertFile)
	setString("", &c.TLSKeyFile, fc.TLSKeyFile)
	setBool("cors", &c.EnableCORS, fc.EnableCORS)
	setBool("s", &c.EnableHTTPS, fc.EnableHTTPS)

	if fc.StaticURLs != nil && !explicit["u"] {
		c.StaticURLs = fc.StaticURLs
	}
	if fc.Categories != nil && !explicit["categories"] {
		c.Categories = fc.Categories
	}
	if fc.ChromeFlags != nil {
		c.ChromeFlags = fc.ChromeFlags
	}
	if fc.MaxAttempts != nil && !explicit["r"] {
		c.MaxAttempts = *fc.MaxAttempts
	}
	if fc.MaxUploadSize != nil {
		c.MaxUploadSize = *fc.MaxUploadSize
	}
	if fc.RetryDelay != nil && !explicit["retry-delay"] {
		c.RetryDelay = fc.retryDelay
	}
	if fc.MaxWaitForLoad != nil && !explicit["max-wait"] {
		c.MaxWaitForLoad = fc.maxWaitForLoad
	}
	if fc.WriteTimeout != nil {
		c.WriteTimeout = fc.writeTimeout
	}
}
