// Package main runs the call window.
//
// The program loads serverConfig.json from next to the executable, installs
// or removes the system service as the configuration requires, and runs
// the main window until it is closed or the process is interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/callwindow"
	"github.com/opd-ai/callwindow/config"
)

// CLI configuration
type CLIConfig struct {
	configPath  string
	server      string
	port        int
	autoConnect bool
	autoCall    bool
	noUI        bool
	logLevel    string
	logFile     string
	logJSON     bool
	help        bool
}

// parseCLIFlags parses command-line flags and returns the configuration.
func parseCLIFlags(args []string) (*CLIConfig, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("callwindow", flag.ContinueOnError)
	config := &CLIConfig{}

	fs.StringVar(&config.configPath, "config", "", "Configuration file (default: serverConfig.json next to the executable)")
	fs.StringVar(&config.server, "server", "", "Signaling server host (overrides the configuration)")
	fs.IntVar(&config.port, "port", 0, "Signaling server port (overrides the configuration)")
	fs.BoolVar(&config.autoConnect, "autoconnect", false, "Connect to the server as soon as the window opens")
	fs.BoolVar(&config.autoCall, "autocall", false, "Call the first peer listed by the server")
	fs.BoolVar(&config.noUI, "noui", false, "Run with the window hidden")

	fs.StringVar(&config.logLevel, "log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	fs.StringVar(&config.logFile, "log-file", "", "Log file path (default: stderr)")
	fs.BoolVar(&config.logJSON, "log-json", false, "Write logs as JSON")

	fs.BoolVar(&config.help, "help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return config, fs, nil
}

// validateCLIConfig validates the CLI configuration.
func validateCLIConfig(config *CLIConfig) error {
	if config.port < 0 || config.port > 65535 {
		return fmt.Errorf("invalid port: must be between 0 and 65535")
	}
	if _, err := logrus.ParseLevel(config.logLevel); err != nil {
		return fmt.Errorf("invalid log level %q", config.logLevel)
	}
	return nil
}

// setupLogging configures the standard logger. The returned function closes
// the log file, if any.
func setupLogging(config *CLIConfig) (func(), error) {
	level, err := logrus.ParseLevel(strings.ToLower(config.logLevel))
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(level)
	if config.logJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if config.logFile == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(config.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logrus.SetOutput(f)
	return func() { _ = f.Close() }, nil
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig(cli *CLIConfig) (*config.Config, error) {
	path := cli.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cli.server != "" {
		cfg.Client.Server = cli.server
	}
	if cli.port > 0 {
		cfg.Client.Port = cli.port
	}
	return cfg, nil
}

// shutdownSignals cancel the run context.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// setupSignalHandling cancels ctx on interrupt or termination.
func setupSignalHandling(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, shutdownSignals...)

	go func() {
		sig := <-sigChan
		logrus.WithField("signal", sig.String()).Info("Received signal, shutting down")
		cancel()
	}()
}

func run(args []string) int {
	cli, fs, err := parseCLIFlags(args)
	if err != nil {
		return 2
	}
	if cli.help {
		fmt.Println("Usage: callwindow [options]")
		fmt.Println()
		fs.SetOutput(os.Stdout)
		fs.PrintDefaults()
		return 0
	}
	if err := validateCLIConfig(cli); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	closeLog, err := setupLogging(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging error: %v\n", err)
		return 1
	}
	defer closeLog()

	cfg, err := loadConfig(cli)
	if err != nil {
		logrus.WithError(err).Error("Failed to load configuration")
		return 1
	}

	app, err := callwindow.New(callwindow.Options{
		Config:      cfg,
		NoUI:        cli.noUI,
		AutoConnect: cli.autoConnect,
		AutoCall:    cli.autoCall,
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to create application")
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	if err := app.Run(ctx); err != nil {
		logrus.WithError(err).Error("Application failed")
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
