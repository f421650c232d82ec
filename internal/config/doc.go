// Package config defines the runtime configuration for report
// generation.
//
// Configuration flows from three places, in increasing precedence:
// built-in defaults (NewConfig), the optional .reportgen YAML file
// (category widget-list overrides, template directory), and CLI flags.
// The populated Config is passed through the application by dependency
// injection; there is no global state.
package config
