package tweetbox

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/pantonshire/tweetbox/api"
	"github.com/pantonshire/tweetbox/database"
	"github.com/pantonshire/tweetbox/logging"
)

const envPrefix = "TWEETBOX"

type Config struct {
	Server ServerConfig    `mapstructure:"server"`
	DB     database.Config `mapstructure:"db"`
	Auth   AuthConfig      `mapstructure:"auth"`
	API    api.Options     `mapstructure:"api"`
	Log    logging.Config  `mapstructure:"log"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type AuthConfig struct {
	Secret          string        `mapstructure:"secret"`
	PreviousSecrets []string      `mapstructure:"previous_secrets"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
	BcryptCost      int           `mapstructure:"bcrypt_cost"`
}

// Every key needs a default so that AutomaticEnv can override it when the
// config file leaves it out.
var defaults = map[string]interface{}{
	"server.addr":          ":3000",
	"server.read_timeout":  "10s",
	"server.write_timeout": "10s",
	"server.idle_timeout":  "60s",

	"db.dialect":        database.MySQL,
	"db.host":           "",
	"db.port":           0,
	"db.database":       "tweetbox",
	"db.user":           "",
	"db.password":       "",
	"db.charset":        "",
	"db.timezone":       "",
	"db.ssl":            false,
	"db.debug":          false,
	"db.max_open_conns": 0,

	"auth.secret":           "",
	"auth.previous_secrets": []string{},
	"auth.token_ttl":        "0s",
	"auth.bcrypt_cost":      0,

	"api.feed_size":        4,
	"api.max_tweet_length": 280,
	"api.allowed_origins":  []string{},
	"api.request_timeout":  "30s",

	"log.prefix":    "",
	"log.verbosity": 0,
}

// LoadConfig reads the JSON config file at configPath, if one is given, and
// applies TWEETBOX_* environment overrides on top of it.
func LoadConfig(configPath string) (Config, error) {
	return LoadConfigFs(afero.NewOsFs(), configPath)
}

func LoadConfigFs(fs afero.Fs, configPath string) (Config, error) {
	v := viper.New()
	v.SetFs(fs)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		path, err := homedir.Expand(configPath)
		if err != nil {
			return Config{}, err
		}
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return config, nil
}
