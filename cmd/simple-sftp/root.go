package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	simplesftp "github.com/Scarecraw22/simple-sftp"
)

// Version is the CLI version string injected at build time via -ldflags.
var Version = "0.1.0"

// exitFunc allows tests to stub process exit behavior.
var exitFunc = os.Exit

// newService builds the service used by subcommands. Tests replace it.
var newService = func(config simplesftp.Config) simplesftp.Service {
	return simplesftp.NewClient(config)
}

// options holds persistent flag values shared by subcommands.
type options struct {
	configPath string
	envFile    string
	host       string
	port       int
	user       string
	password   string
	keyPath    string
	knownHosts string
	insecure   bool
	verbose    bool
	progress   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "simple-sftp",
		Short:         "Upload and download files over SFTP",
		Long:          "Each invocation opens one SSH session and SFTP channel, transfers a single file, and disconnects.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (YAML, TOML or JSON with an sftp section)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Path to an env file with SFTP_* variables")
	flags.StringVar(&opts.host, "host", "", "SFTP server host (or set SFTP_HOST)")
	flags.IntVarP(&opts.port, "port", "p", 0, "SFTP server port (or set SFTP_PORT)")
	flags.StringVarP(&opts.user, "user", "u", "", "SSH username (or set SFTP_USERNAME)")
	flags.StringVar(&opts.password, "password", "", "SSH password (or set SFTP_PASSWORD)")
	flags.StringVar(&opts.keyPath, "key", "", "Path to SSH private key (or set SFTP_KEY_PATH)")
	flags.StringVar(&opts.knownHosts, "known-hosts", "", "Path to known_hosts file (default ~/.ssh/known_hosts)")
	flags.BoolVar(&opts.insecure, "insecure", false, "Accept any host key")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every connection step")
	flags.BoolVar(&opts.progress, "progress", false, "Show a progress bar on stderr")

	rootCmd.AddCommand(
		newUploadCmd(opts),
		newDownloadCmd(opts),
		newCatCmd(opts),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		exitFunc(1)
	}
}

// service resolves the config from file, env and flags, in increasing
// precedence, and builds the service.
func (o *options) service(cmd *cobra.Command) (simplesftp.Service, error) {
	config, err := simplesftp.ReadConfig(o.configPath, o.envFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		config.Host = o.host
	}
	if flags.Changed("port") {
		config.Port = o.port
	}
	if flags.Changed("user") {
		config.Username = o.user
	}
	if flags.Changed("password") {
		config.Password = o.password
	}
	if flags.Changed("key") {
		config.KeyPath = o.keyPath
		config.PrivateKey = ""
	}
	if flags.Changed("known-hosts") {
		config.KnownHostsFile = o.knownHosts
	}
	if flags.Changed("insecure") {
		config.InsecureIgnoreHostKey = o.insecure
	}

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	if o.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	config.Logger = logger

	return newService(config), nil
}
