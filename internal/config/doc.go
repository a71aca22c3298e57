// Package config handles configuration loading for academyx-admin.
//
// # Overview
//
// Configuration is loaded from TOML or YAML files, chosen by extension, with
// environment variable expansion. Keys the file leaves out keep their
// defaults.
//
// # Configuration File
//
// Lookup order:
//
//  1. The --config flag
//  2. Path from the ACADEMYX_CONFIG environment variable
//  3. $XDG_CONFIG_HOME/academyx/config.toml (~/.config when unset)
//
// Only the last one may be missing. ACADEMYX_API_URL, when set, replaces
// api.base_url from any source.
//
// # Environment Variable Expansion
//
//	[session]
//	passphrase = "${ACADEMYX_PASSPHRASE}"
//
// Unset variables expand to an empty string.
//
// # Configuration Sections
//
//	[api]
//	base_url = "https://api.academyx.example"  # required
//	timeout = "30s"
//	user_agent = "academyx-admin"
//
//	[session]
//	driver = "sqlite"            # sqlite (pure Go), sqlite3 (cgo), memory
//	path = "~/.config/academyx/session.db"
//	coalesce_refresh = true
//	passphrase = ""              # seals stored tokens when set
//
//	[logging]
//	level = "warn"               # debug, info, warn, error
//	format = "text"              # text, json, color
//
// # Usage
//
//	cfg, err := config.Resolve(flagPath)
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
