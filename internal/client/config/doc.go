// Package config loads runtime configuration for the storefront client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJSON).
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the storefront REST API
//	-d string   SQLite file holding the persisted session
//	-l string   log level: debug, info, warn, error
//	-t          print one trace span per API call to stderr
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:5000/api/v1",
//	  "session_dsn": "session.db",
//	  "log_level": "info",
//	  "trace": false,
//	  "storage_keys": {
//	    "access_token": "access_token",
//	    "refresh_token": "refresh_token",
//	    "user": "user_data",
//	    "cart": "cart_items"
//	  }
//	}
//
// Storage key names can only be set from JSON. Keys missing from the file
// keep their defaults.
package config
