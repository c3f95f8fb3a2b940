// Package config loads application settings from four sources merged with a
// fixed priority, highest first:
//  1. Environment variables
//  2. The dotenv file <ENVIRONMENT>.env in the project root (.env when unset)
//  3. Explicit overrides passed with [WithOverrides]
//  4. Secret files, one per key, in the secrets directory
//
// The first source holding a key wins, even when its value is empty. Keys no source
// provides fall back to the probed defaults for ENVIRONMENT and PLATFORM,
// then to the field's envDefault tag; any other field without a value is a
// validation error.
//
// Applications embed [Common] in their own struct and tag their fields the
// way github.com/caarlos0/env expects:
//
//	type AppSettings struct {
//		config.Common
//		AppTitle string `env:"APP_TITLE"`
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	settings, err := config.Load[AppSettings]()
//
// [Load] re-reads every source on each call. Build the settings once during
// start-up and pass them to the components that need them; [Cached] is
// available when a lazily built process-wide value is unavoidable.
package config
