package simplesftp

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// configKeys are the keys read by LoadConfig. Each key can be overridden by
// the upper-cased environment variable with dots replaced by underscores,
// e.g. sftp.host by SFTP_HOST.
var configKeys = []string{
	"sftp.host",
	"sftp.port",
	"sftp.username",
	"sftp.password",
	"sftp.private_key",
	"sftp.key_path",
	"sftp.known_hosts_file",
	"sftp.insecure_ignore_host_key",
}

// LoadConfig reads a Config with ReadConfig and validates it.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	config, err := ReadConfig(path, envFiles...)
	if err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// ReadConfig reads a Config from the file at path (any format viper
// understands; empty path skips the file) and SFTP_* environment variables,
// with defaults applied but without validation.
// Environment files (default ".env") are loaded first when they exist and
// never override variables already set in the process environment.
func ReadConfig(path string, envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("sftp.port", DefaultPort)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(ExpandPath(path))
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var file struct {
		SFTP Config `mapstructure:"sftp"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return file.SFTP.WithDefaults(), nil
}

func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}
	return nil
}
