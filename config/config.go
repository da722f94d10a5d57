package config

import (
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "workshop",
		Location: "America/Mexico_City",
		Workdir:  "/var/workshop",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-workshop-1816-8d3c-2b8bb8bbe3ea",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "workshop",
		User:     "postgres",
		Passwd:   "workshop",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/workshop/workshop.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v := os.Getenv(name); v != "" {
		f(v)
	}
}

// LoadConfig reads configuration from the YAML file when present and applies
// environment overrides on top of the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err == nil {
				cfg = new(AppConfig)
				if err := yaml.Unmarshal(data, cfg); err != nil {
					cfg = DefaultAppConfig
				}
			}
		}
	}

	setEnvValue("WORKSHOP_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("WORKSHOP_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("WORKSHOP_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("WORKSHOP_WEB_PORT", func(v string) { cfg.Web.Port = cast.ToInt(v) })
	setEnvValue("WORKSHOP_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("WORKSHOP_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("WORKSHOP_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("WORKSHOP_DB_PORT", func(v string) { cfg.Database.Port = cast.ToInt(v) })
	setEnvValue("WORKSHOP_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("WORKSHOP_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("WORKSHOP_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("WORKSHOP_DB_DEBUG", func(v string) { cfg.Database.Debug = cast.ToBool(v) })
	setEnvValue("WORKSHOP_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })

	return cfg
}
