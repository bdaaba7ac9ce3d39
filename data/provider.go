package data

import (
	"context"

	"github.com/google/wire"
	"github.com/ncobase/example-api/data/config"
)

// ProviderSet is the wire provider set for the data package
var ProviderSet = wire.NewSet(ProvideData)

// ProvideData opens the configured connections
func ProvideData(cfg *config.Config) (*Data, func(), error) {
	return New(context.Background(), cfg)
}
