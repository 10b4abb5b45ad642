package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	ConfigFileEnvVar   = "AUTHPING_CONFIG_FILE"
	StandardConfigPath = "/etc/authping/config.yml"
)

func readConfig[E any](configFilePath string, defaults *E) (*E, error) {
	vp := viper.New()
	defaultsMap := map[string]interface{}{}

	if defaults != nil {
		mapstructure.Decode(defaults, &defaultsMap)

		for key, value := range defaultsMap {
			if value != nil && value != "" {
				vp.SetDefault(key, value)
			}
		}
	}

	vp.SetConfigFile(configFilePath)
	if err := vp.ReadInConfig(); err != nil {
		// viper does not return ConfigFileNotFoundError when SetConfigFile is used
		return nil, fmt.Errorf("error while processing config file: %w", err)
	}

	var config E
	err := vp.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return &config, nil
}

func LoadConfig[E any](defaults *E) (*E, error) {
	var err error
	var conf *E

	configFileEnv := os.Getenv(ConfigFileEnvVar)
	loadStandardPaths := true

	if configFileEnv != "" {
		loadStandardPaths = false
		log.Infof("loading config file from %s", configFileEnv)
		conf, err = readConfig[E](configFileEnv, defaults)

		if err != nil {
			log.Warnf("failed to load config file specified in ENV '%s' variable. will try to load from standard paths: %s", ConfigFileEnvVar, err)
			loadStandardPaths = true
		}
	} else {
		log.Infof("ENV '%s' variable not set, will try to load from standard paths", ConfigFileEnvVar)
	}

	if loadStandardPaths {
		conf, err = readConfig[E](StandardConfigPath, defaults)
	}
	if err != nil {
		return nil, err
	}

	return conf, nil
}

// Validate checks the `validate` struct tags of a loaded configuration.
func Validate(conf any) error {
	if err := validator.New().Struct(conf); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
