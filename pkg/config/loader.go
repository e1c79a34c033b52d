package config

import (
	_ "embed"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/logging"
	"github.com/arthur-debert/envinject/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	toml2 "github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes environment variables read into the configuration
const EnvPrefix = "ENVINJECT_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile is an explicit config path, which must exist.
	// When empty the XDG location is used if present.
	ConfigFile string
}

// Default returns the built-in configuration
func Default() *Config {
	cfg, err := load(LoadOptions{}, false)
	if err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load reads defaults, the user config file and ENVINJECT_ environment variables
func Load(opts LoadOptions) (*Config, error) {
	return load(opts, true)
}

func load(opts LoadOptions, withUser bool) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	if withUser {
		// 2. User config file
		path, explicit := opts.ConfigFile, opts.ConfigFile != ""
		if !explicit {
			path = paths.New().ConfigFilePath()
		}
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded config file")
		} else if explicit {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", path)
		}

		// 3. Environment
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the patcher cannot use
func (c *Config) Validate() error {
	if _, err := c.Injector(); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid markers")
	}
	if strings.TrimSpace(c.Target.Path) == "" {
		return errors.New(errors.ErrConfigValid, "target.path must not be empty")
	}
	if c.Target.BackupSuffix == "" {
		return errors.New(errors.ErrConfigValid, "target.backup_suffix must not be empty")
	}
	for i, t := range c.Targets {
		if t.Extension == "" {
			return errors.Newf(errors.ErrConfigValid, "targets[%d]: extension must not be empty", i)
		}
	}
	return nil
}

// Dump renders the configuration as TOML
func Dump(cfg *Config) ([]byte, error) {
	out, err := toml2.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode config")
	}
	return out, nil
}
