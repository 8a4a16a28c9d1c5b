package config

import (
	gerrors "git.home.luguber.info/inful/ossgate/internal/errors"
)

// Validate checks that a GlobalConfig is internally usable. It does not reach
// the network; URL reachability is the service client's concern.
func Validate(cfg *GlobalConfig) error {
	if cfg.ServiceURL == "" {
		return gerrors.ConfigRequired("service_url")
	}
	if cfg.Proxy.Enabled && cfg.Proxy.Host == "" {
		return gerrors.ValidationFailed("proxy.host", "proxy override enabled without a host")
	}
	if cfg.Events.Enabled && cfg.Events.NATSURL == "" {
		return gerrors.ValidationFailed("events.nats_url", "events enabled without a NATS URL")
	}
	return nil
}
