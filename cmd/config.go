package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Endpoint addresses one side of the clone. All five values are required
// configuration; a missing one is a fatal startup condition.
type Endpoint struct {
	Username string
	Password string
	Host     string
	Port     int
	Database string
}

// Locator composes the connection URL for this endpoint.
func (e Endpoint) Locator(scheme string) string {
	return fmt.Sprintf("%s://%s:%s@%s:%d/%s",
		scheme, e.Username, e.Password, e.Host, e.Port, e.Database)
}

func (e Endpoint) validate(side string) error {
	prefix := strings.ToUpper(side) + "_DB_"
	switch {
	case e.Username == "":
		return fmt.Errorf("%sUSERNAME is not set", prefix)
	case e.Password == "":
		return fmt.Errorf("%sPASSWORD is not set", prefix)
	case e.Host == "":
		return fmt.Errorf("%sHOST is not set", prefix)
	case e.Port == 0:
		return fmt.Errorf("%sPORT is not set", prefix)
	case e.Database == "":
		return fmt.Errorf("%sDATABASE is not set", prefix)
	}
	return nil
}

// CloneConfig is everything the clone command needs, resolved from flags,
// config file and environment in that order of precedence.
type CloneConfig struct {
	Driver        string
	Source        Endpoint
	Target        Endpoint
	IgnoreTables  string
	MaxConcurrent int
}

func endpointFromConfig(side string) Endpoint {
	return Endpoint{
		Username: viper.GetString(side + ".username"),
		Password: viper.GetString(side + ".password"),
		Host:     viper.GetString(side + ".host"),
		Port:     viper.GetInt(side + ".port"),
		Database: viper.GetString(side + ".database"),
	}
}

// GetCloneConfig resolves and validates configuration for both endpoints.
func GetCloneConfig() (*CloneConfig, error) {
	cfg, err := GetSourceConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Target.validate("target"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetSourceConfig validates the source endpoint only, for commands that never
// touch the target (seed, tables).
func GetSourceConfig() (*CloneConfig, error) {
	cfg := &CloneConfig{
		Driver:        viper.GetString("driver"),
		Source:        endpointFromConfig("source"),
		Target:        endpointFromConfig("target"),
		IgnoreTables:  viper.GetString("ignore_tables"),
		MaxConcurrent: viper.GetInt("max_concurrent"),
	}
	if cfg.Driver != "mysql" && cfg.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported driver %q (mysql or postgres)", cfg.Driver)
	}
	if err := cfg.Source.validate("source"); err != nil {
		return nil, err
	}
	return cfg, nil
}
