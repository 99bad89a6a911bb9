package config

// Default values used by LoadDefaults.
const (
	DefaultAPIBaseURL = "https://daastan.onrender.com/api/v1"
	DefaultSessionDSN = "session.db"
	DefaultLogLevel   = "warn"
)

// StorageKeys names the four persisted session slots.
type StorageKeys struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         string `json:"user"`
	Cart         string `json:"cart"`
}

// DefaultStorageKeys returns the slot names used by the storefront web client.
func DefaultStorageKeys() StorageKeys {
	return StorageKeys{
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
		User:         "user_data",
		Cart:         "cart_items",
	}
}

// All returns the slot names in a fixed order.
func (k StorageKeys) All() []string {
	return []string{k.AccessToken, k.RefreshToken, k.User, k.Cart}
}

// Config holds runtime settings for the storefront client.
type Config struct {
	APIBaseURL  string
	SessionDSN  string
	LogLevel    string
	StorageKeys StorageKeys
	// Trace writes a span per API call to stderr.
	Trace bool
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.SessionDSN = DefaultSessionDSN
	c.LogLevel = DefaultLogLevel
	c.StorageKeys = DefaultStorageKeys()
}

// LoadConfig builds a Config from defaults, then the JSON file named in
// args (if any), then the flags in args. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
