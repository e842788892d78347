package connector

import "github.com/exactkit/exact/pkg/config"

// ExchangeConfig is the configuration every venue driver accepts. It is
// defined in pkg/config (re-exported here for a shorter import path at the
// call site) so internal/driver packages can depend on it without a cycle
// back through this package's factory.
type ExchangeConfig = config.ExchangeConfig
