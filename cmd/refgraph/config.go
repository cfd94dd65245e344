package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose = "verbose"
	FlagConfig  = "config"
	FlagCatalog = "catalog"
	FlagLogFile = "log-file"

	// View command flags
	FlagWatch     = "watch"
	FlagNoBrowser = "no-browser"

	// Export command flags
	FlagFocus  = "focus"
	FlagSelect = "select"
	FlagTitle  = "title"
	FlagWidth  = "width"
	FlagHeight = "height"
	FlagTicks  = "settle-ticks"

	// Output format flags
	FlagJSON = "json"
)

// configKeys maps flags that override a config file setting to its key.
var configKeys = map[string]string{
	FlagCatalog: "catalog.path",
	FlagLogFile: "paths.log",
}
