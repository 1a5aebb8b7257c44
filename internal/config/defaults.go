package config

const (
	defaultDataDir               = "~/.local/share/whispersend"
	defaultLogDir                = "~/.local/share/whispersend/logs"
	defaultAPIBind               = "127.0.0.1:7489"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultNotifyRequestTimeout  = 10
	defaultDatabaseFile          = "whispersend.db"
	defaultHistoryLimit          = 20
	defaultConfigPath            = "~/.config/whispersend/config.toml"
	projectConfigFile            = "whispersend.toml"
	ntfyTopicEnv                 = "WHISPERSEND_NTFY_TOPIC"
	defaultChromeExtensionOrigin = "chrome-extension://*"
	defaultFirefoxAddonOrigin    = "moz-extension://*"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Console:        true,
		},
		Daemon: Daemon{
			AllowedOrigins: []string{defaultChromeExtensionOrigin, defaultFirefoxAddonOrigin},
			HistoryLimit:   defaultHistoryLimit,
		},
	}
}
