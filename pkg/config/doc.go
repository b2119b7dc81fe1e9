// Package config defines the platform sizing limits for the broadcast stack.
//
// The original platform sizes its broadcast source pools at build time.
// Here the limits are an explicit, YAML-loadable configuration passed to the
// broadcast manager at construction, with defaults matching a small
// single-source platform.
package config
