// Package config provides configuration loading, merging, and validation
// facilities for the notepad application.
//
// Configuration is assembled from multiple sources. Each source only fills
// fields that are still zero after the previous ones, so the effective
// priority is:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the raw merged
// configuration and [GetClientConfig] for the validated runtime view.
package config
