package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// configName is the settings file name without extension.
const configName = ".stepindex"

// envPrefix is the environment variable prefix, e.g. STEPINDEX_SMARTSNIPPETS.
const envPrefix = "STEPINDEX"

// Section is the key editors send the settings under.
const Section = "cucumberautocomplete"

// LoadSettings loads settings from file, env vars and defaults. If path is
// non-empty it is used as the settings file, otherwise .stepindex.{yaml,json}
// is searched in the working directory. A missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	return decode(v)
}

// FromMap decodes settings sent by an editor. The map is either the settings
// themselves or holds them under Section.
func FromMap(values map[string]any) (*Settings, error) {
	if section, ok := values[Section].(map[string]any); ok {
		values = section
	}

	v := newViper()
	if err := v.MergeConfigMap(values); err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	applyDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func decode(v *viper.Viper) (*Settings, error) {
	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return &settings, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("steps", []string{})
	v.SetDefault("precomputed", []string{})
	v.SetDefault("syncfeatures", false)
	v.SetDefault("synctags", "")
	v.SetDefault("strictgherkincompletion", false)
	v.SetDefault("strictgherkinvalidation", false)
	v.SetDefault("smartsnippets", false)
	v.SetDefault("stepsinvariants", false)
	v.SetDefault("puretextsteps", false)
	v.SetDefault("gherkindefinitionpart", "")
	v.SetDefault("stepregexsymbol", "")
}
