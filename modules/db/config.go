package db

import "dao-watchdog/modules/config"

type DbConfig struct {
	DbURI string
}

func NewDbConfig(dataDir *string) *config.Config[DbConfig] {
	return config.New(DbConfig{
		DbURI: "mongodb://localhost:27017",
	}, dataDir)
}
