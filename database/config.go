package database

type Config struct {
	Dialect      string `mapstructure:"dialect" json:"dialect"`
	Host         string `mapstructure:"host" json:"host"`
	Port         uint   `mapstructure:"port" json:"port"`
	Database     string `mapstructure:"database" json:"database"`
	User         string `mapstructure:"user" json:"user"`
	Password     string `mapstructure:"password" json:"password"`
	Charset      string `mapstructure:"charset" json:"charset"`
	Timezone     string `mapstructure:"timezone" json:"timezone"`
	SSL          bool   `mapstructure:"ssl" json:"ssl"`
	Debug        bool   `mapstructure:"debug" json:"debug"`
	MaxOpenConns int    `mapstructure:"max_open_conns" json:"max_open_conns"`
}

func (config Config) host() string {
	if config.Host != "" {
		return config.Host
	}
	return localhost
}

func (config Config) charset() string {
	const defaultCharset = "utf8mb4"
	if config.Charset != "" {
		return config.Charset
	}
	return defaultCharset
}

func (config Config) timezone() string {
	const defaultTimezone = "Local"
	if config.Timezone != "" {
		return config.Timezone
	}
	return defaultTimezone
}
