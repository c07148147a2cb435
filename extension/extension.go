// Package extension provides the Forge extension adapter for XPay.
//
// It implements the forge.Extension interface to integrate XPay
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.xpay" or "xpay" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	xpay "github.com/xraph/xpay"
	"github.com/xraph/xpay/payment"
	"github.com/xraph/xpay/store"
	"github.com/xraph/xpay/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "xpay"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Embeddable marketplace settlement engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts XPay as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *xpay.Market
	store      store.Store
	transferor payment.Transferor
	exchange   payment.Exchange
	marketOpts []xpay.Option
}

// New creates a new XPay Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Market instance.
// This is nil until Register is called.
func (e *Extension) Engine() *xpay.Market { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the market engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// The payment collaborators have no config-file form; they carry
	// balances and must be wired programmatically.
	if e.transferor == nil || e.exchange == nil {
		return errors.New("xpay: payment transferor and exchange must be provided via options")
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	eng := xpay.New(e.store, e.transferor, e.exchange, e.marketOpts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*xpay.Market, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("xpay: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("xpay: store not initialized")
	}
	return e.store.Ping(ctx)
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("xpay: configuration is required but not found in config files; " +
				"ensure 'extensions.xpay' or 'xpay' key exists in your config")
		}

		e.config = programmaticConfig
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("xpay: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.xpay" first (namespaced pattern).
	if cm.IsSet("extensions.xpay") {
		if err := cm.Bind("extensions.xpay", &cfg); err == nil {
			e.Logger().Debug("xpay: loaded config from file",
				forge.F("key", "extensions.xpay"),
			)
			return cfg, true
		}
		e.Logger().Warn("xpay: failed to bind extensions.xpay config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "xpay" key.
	if cm.IsSet("xpay") {
		if err := cm.Bind("xpay", &cfg); err == nil {
			e.Logger().Debug("xpay: loaded config from file",
				forge.F("key", "xpay"),
			)
			return cfg, true
		}
		e.Logger().Warn("xpay: failed to bind xpay config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}
	yamlConfig.RequireConfig = programmaticConfig.RequireConfig

	return yamlConfig
}
