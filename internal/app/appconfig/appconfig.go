package appconfig

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"exusiai.dev/gazeseq/internal/app/appcontext"
	"exusiai.dev/gazeseq/internal/model"
)

const EnvPrefix = "gazeseq"

func Parse(ctx appcontext.Ctx) (*Config, error) {
	if ctx.Env != appcontext.EnvTest {
		err := godotenv.Load()
		if err != nil {
			log.Warn().Err(err).Msg("failed to load .env file")
		}
	}

	var config ConfigSpec
	err := envconfig.Process(EnvPrefix, &config)
	if err != nil {
		_ = envconfig.Usage(EnvPrefix, &config)
		return nil, fmt.Errorf("failed to parse configuration: %w. More info on how to configure gazeseq is located at https://pkg.go.dev/exusiai.dev/gazeseq/internal/app/appconfig#ConfigSpec", err)
	}

	conf := &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c.ConfigSpec); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validate.Struct(c.MiningConfig()); err != nil {
		return fmt.Errorf("invalid mining configuration: %w", err)
	}
	return nil
}

// MiningConfig is the pattern source configuration carried by this config.
func (c *Config) MiningConfig() model.MiningConfig {
	return model.MiningConfig{
		MinSupport:     c.MiningMinSupport,
		MaxGap:         c.MiningMaxGap,
		MaxLength:      c.MiningMaxLength,
		MaxPatternSize: c.MiningMaxPatternSize,
	}
}
