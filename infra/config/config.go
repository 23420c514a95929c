package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Path is the directory holding the json configs.
var Path = "infra/config"

// Load loads the config for the given key into v.
func Load(key string, v interface{}) error {
	p := filepath.Join(Path, fmt.Sprintf("%s.json", key))
	b, err := ioutil.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not load config for %s: %w", key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("could not unmarshal the config for %s: %w", key, err)
	}
	log.Info().Str("config", key).Str("path", p).Msg("loaded config")
	return nil
}

// MustLoad loads the config for the given key
func MustLoad(key string, v interface{}) {
	if err := Load(key, v); err != nil {
		panic(err.Error())
	}
}
