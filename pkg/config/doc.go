// Package config loads envinject's configuration.
//
// Values are layered with koanf, later sources overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file, $XDG_CONFIG_HOME/envinject/config.toml or the
//     path given with --config
//  3. environment variables prefixed with ENVINJECT_, where a double
//     underscore separates sections: ENVINJECT_TARGET__BACKUP_SUFFIX=.orig
//     sets target.backup_suffix
package config
