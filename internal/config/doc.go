// Package config manages user-level settings stored at ~/.ailink/config.yaml.
// Values are layered by viper: command-line flags, AILINK_* environment
// variables, the project file, the user config file, then built-in defaults.
package config
