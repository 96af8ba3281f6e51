package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	APIKey       string        `yaml:"api_key" env:"GETIMG_API_KEY" env-description:"GetImg API key"`
	APIKeyParam  string        `yaml:"api_key_param" env:"GETIMG_API_KEY_PARAM" env-description:"SSM parameter holding the API key"`
	Model        string        `yaml:"model" env:"GETIMG_MODEL" env-default:"lcm-realistic-vision-v5-1" env-description:"default model"`
	BaseURL      string        `yaml:"base_url" env:"GETIMG_BASE_URL" env-default:"https://api.getimg.ai/v1" env-description:"API base URL"`
	Proxy        string        `yaml:"proxy" env:"GETIMG_PROXY" env-description:"http, https or socks5 proxy URL"`
	Timeout      time.Duration `yaml:"timeout" env:"GETIMG_TIMEOUT" env-default:"0s" env-description:"HTTP timeout, 0 for none"`
	Distribution string        `yaml:"distribution" env:"GETIMG_DISTRIBUTION" env-description:"CloudFront distribution to invalidate after S3 uploads"`
	Log          struct {
		Level  string `yaml:"level" env:"GETIMG_LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"GETIMG_LOG_FORMAT" env-default:"json"`
	} `yaml:"log"`
}

// Load reads the configuration from path when it is set and from the
// environment otherwise. A .env file in the working directory is loaded first;
// it never overrides variables that are already set.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, describe(&cfg, errors.Wrapf(err, "config %s", path))
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, describe(&cfg, errors.Wrap(err, "config"))
	}
	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return errors.Wrapf(godotenv.Load(path), "load %s", path)
}

func describe(cfg *Config, err error) error {
	desc, derr := cleanenv.GetDescription(cfg, nil)
	if derr != nil {
		return err
	}
	return errors.WithMessage(err, desc)
}

// Usage lists the environment variables understood by Load.
func Usage() string {
	desc, _ := cleanenv.GetDescription(&Config{}, nil)
	return desc
}
