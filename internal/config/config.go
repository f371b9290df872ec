package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Auth struct {
		// CookieSecret signs and verifies session tokens; required.
		CookieSecret string
		// AppID is the issuing application id expected in session tokens.
		AppID string
		// OwnerOpenID is auto-promoted to admin on first sign-in.
		OwnerOpenID   string
		SessionCookie string
		TokenTTLHours int
	}
	Security struct {
		// SecureCookies marks the deployment as HTTPS-confirmed: cookies
		// get the Secure flag and the __Host- CSRF cookie name.
		SecureCookies bool
	}
	RateLimit struct {
		WindowSeconds int
		Limit         int
	}
	Notify struct {
		Endpoint string
		APIKey   string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("SELLERDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.path", "data/sellerdesk.db")
	v.SetDefault("auth.cookiesecret", "")
	v.SetDefault("auth.appid", "")
	v.SetDefault("auth.owneropenid", "")
	v.SetDefault("auth.sessioncookie", "session")
	v.SetDefault("auth.tokenttlhours", 24*365)
	v.SetDefault("security.securecookies", false)
	v.SetDefault("ratelimit.windowseconds", 60)
	v.SetDefault("ratelimit.limit", 100)
	v.SetDefault("notify.endpoint", "")
	v.SetDefault("notify.apikey", "")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
