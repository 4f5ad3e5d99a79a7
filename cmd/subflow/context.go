package main

import (
	"os"

	"subflow/internal/config"
	"subflow/internal/logger"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given; a missing file falls back to built-in defaults.
const defaultConfigFile = "subflow.yaml"

// appContext carries the loaded configuration and logger into subcommands.
type appContext struct {
	configFlag *string
	cfg        *config.Config
	log        logger.Logger
}

func newAppContext(configFlag *string) *appContext {
	return &appContext{configFlag: configFlag}
}

// ensure loads config and logger once; later calls reuse them.
func (a *appContext) ensure() error {
	if a.cfg != nil {
		return nil
	}

	path := *a.configFlag
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		a.cfg = cfg
	} else {
		a.cfg = config.Default()
	}

	a.log = logger.New(a.cfg.Logging.Level, a.cfg.Logging.Format)
	return nil
}
