package config

import (
	"github.com/BielosX/wombat/pokenat/src/analytics"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	PokeApiBaseUrl string `env:"POKEAPI_BASE_URL" envDefault:"https://pokeapi.co/api/v2/"`
	LocalDataUrl   string `env:"LOCAL_DATA_URL" envDefault:"http://localhost:8080/api/"`
	ListenAddr     string `env:"LISTEN_ADDR" envDefault:":8080"`
	DataDir        string `env:"DATA_DIR" envDefault:"./data"`
	PrefsPath      string `env:"PREFS_PATH" envDefault:"pokenat.db"`
	MatomoHost     string `env:"MATOMO_HOST"`
	MatomoSiteID   int    `env:"MATOMO_SITE_ID"`
	AwsRegion      string `env:"AWS_REGION"`
	BucketName     string `env:"BUCKET_NAME"`
	Handler        string `env:"_HANDLER"`
	LogProduction  bool   `env:"LOG_PRODUCTION" envDefault:"false"`
}

func FromEnv() (Config, error) {
	return env.ParseAs[Config]()
}

func (c Config) Analytics() analytics.Config {
	return analytics.Config{Host: c.MatomoHost, SiteID: c.MatomoSiteID}
}

func (c Config) LambdaMode() bool {
	return c.Handler != ""
}
