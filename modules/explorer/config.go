package explorer

import (
	"dao-watchdog/modules/config"
)

const (
	DefaultApiBase = "https://mainnet-api.explorer.nervos.org/api/v1"
	DefaultWebBase = "https://explorer.app5.org"
)

type ExplorerConfig struct {
	ApiBase        string
	WebBase        string
	Accept         string
	ContentType    string
	PageSize       int
	PageCooldownMs int
}

func NewConfig(dataDir *string) *config.Config[ExplorerConfig] {
	return config.New(ExplorerConfig{
		ApiBase:        DefaultApiBase,
		WebBase:        DefaultWebBase,
		Accept:         "application/vnd.api+json",
		ContentType:    "application/vnd.api+json",
		PageSize:       20,
		PageCooldownMs: 500,
	}, dataDir)
}
