package simplesftp

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// DefaultPort is the SSH port used when Config.Port is zero.
const DefaultPort = 22

// Logger is the printf-style logger used by the client.
// *logrus.Logger and *logrus.Entry satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Config holds the SSH connection parameters for one client.
type Config struct {
	// Host is the SFTP server hostname or IP address.
	Host string `mapstructure:"host" validate:"required,hostname_rfc1123|ip"`

	// Port is the SSH port (default 22).
	Port int `mapstructure:"port" validate:"min=1,max=65535"`

	// Username is the SSH login name.
	Username string `mapstructure:"username" validate:"required"`

	// Password is used for password authentication when set.
	Password string `mapstructure:"password"`

	// PrivateKey is PEM encoded private key content.
	// Mutually exclusive with KeyPath.
	PrivateKey string `mapstructure:"private_key" validate:"excluded_with=KeyPath"`

	// KeyPath is the path to a private key file.
	KeyPath string `mapstructure:"key_path"`

	// KnownHostsFile is the path to a known_hosts file for host key verification.
	// If not set, defaults to ~/.ssh/known_hosts if it exists.
	KnownHostsFile string `mapstructure:"known_hosts_file"`

	// InsecureIgnoreHostKey skips host key verification.
	// WARNING: This is insecure and should only be used for testing.
	InsecureIgnoreHostKey bool `mapstructure:"insecure_ignore_host_key"`

	// Logger receives lifecycle and failure messages.
	// Defaults to the logrus standard logger.
	Logger Logger `mapstructure:"-" validate:"-"`
}

// WithDefaults returns a copy of the config with default values applied.
func (c Config) WithDefaults() Config {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	return c
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the config describes a reachable, authenticatable target.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Password == "" && c.PrivateKey == "" && c.KeyPath == "" {
		return fmt.Errorf("invalid config: no SSH authentication method configured (set password, private_key or key_path)")
	}
	return nil
}

// Address returns the host:port dial address.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// String omits credentials so configs can be logged.
func (c Config) String() string {
	return fmt.Sprintf("%s@%s", c.Username, c.Address())
}
