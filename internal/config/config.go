package config

import "github.com/spf13/viper"

type Config struct {
	App struct {
		Env     string
		Version string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Units struct {
		Conc string
		Mass string
	} `mapstructure:"units"`

	RateLimit struct {
		RPS   float64
		Burst int
	} `mapstructure:"rate_limit"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("app.version", "v1.3.1")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("units.conc", "mg/L")
	v.SetDefault("units.mass", "mg")
	v.SetDefault("rate_limit.rps", 1)
	v.SetDefault("rate_limit.burst", 3)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
