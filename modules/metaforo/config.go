package metaforo

import (
	"dao-watchdog/modules/config"
)

const (
	DefaultApiBase   = "https://dao.ckb.community/api"
	DefaultGroupName = "neurontest"
)

type MetaforoConfig struct {
	ApiBase        string
	GroupName      string
	ApiKey         string
	Origin         string
	UserAgent      string
	PageCooldownMs int
}

func NewConfig(dataDir *string) *config.Config[MetaforoConfig] {
	return config.New(MetaforoConfig{
		ApiBase:        DefaultApiBase,
		GroupName:      DefaultGroupName,
		ApiKey:         "metaforo_website",
		Origin:         "https://dao.ckb.community",
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36",
		PageCooldownMs: 500,
	}, dataDir)
}
