package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"whispersend/internal/api"
	"whispersend/internal/config"
	"whispersend/internal/logging"
	"whispersend/internal/store"
)

type commandContext struct {
	configFlag *string
	addrFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, addrFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		addrFlag:   addrFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) daemonAddress() string {
	if c.addrFlag != nil {
		if addr := strings.TrimSpace(*c.addrFlag); addr != "" {
			return addr
		}
	}
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil {
		return config.Default().Paths.APIBind
	}
	return cfg.Paths.APIBind
}

func (c *commandContext) client() *api.Client {
	return api.NewClient(c.daemonAddress(), nil)
}

// withStore opens the SQLite store for commands that work without a daemon.
func (c *commandContext) withStore(fn func(*config.Config, *store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(cfg, st)
}

// cliLogger logs warnings and above to stderr so one-shot output stays clean.
func (c *commandContext) cliLogger(verbose bool) *slog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	format := "console"
	if cfg, err := c.ensureConfig(); err == nil && cfg != nil {
		format = cfg.Logging.Format
	}
	logger, err := logging.New(logging.Options{Level: level, Format: format, OutputPaths: []string{"stderr"}})
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

func wrapDaemonError(err error, addr string) error {
	if errors.Is(err, api.ErrDaemonUnavailable) {
		return fmt.Errorf("connect to daemon at %s failed; start it with `whispersend daemon`", addr)
	}
	return err
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
