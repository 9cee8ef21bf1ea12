// Package config loads, validates and writes the namify configuration file.
//
// The file is YAML with an apiVersion and kind header. It is validated
// against a JSON schema reflected from [Config] before it is decoded, so
// errors point at the offending line of the source.
package config
