package extension

import (
	xpay "github.com/xraph/xpay"
	"github.com/xraph/xpay/payment"
	"github.com/xraph/xpay/plugin"
	"github.com/xraph/xpay/store"
)

// Option configures the XPay Forge extension.
type Option func(*Extension)

// WithStore sets the store for the market engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithTransferor sets the same-asset payment collaborator.
func WithTransferor(t payment.Transferor) Option {
	return func(e *Extension) {
		e.transferor = t
	}
}

// WithExchange sets the cross-asset payment collaborator.
func WithExchange(ex payment.Exchange) Option {
	return func(e *Extension) {
		e.exchange = ex
	}
}

// WithMarketOption passes an xpay.Option through to the underlying engine.
func WithMarketOption(opt xpay.Option) Option {
	return func(e *Extension) {
		e.marketOpts = append(e.marketOpts, opt)
	}
}

// WithPlugin registers an xpay plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.marketOpts = append(e.marketOpts, xpay.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
