package config

import "github.com/ukaji3/leadmerge-go/pkg/leadmerge"

const (
	defaultConfigFile   = "leadmerge.toml"
	defaultAccountsPath = "SOQL.csv"
	defaultUsersPath    = "Users.csv"
	defaultLogFormat    = "auto"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		References: References{
			Accounts: defaultAccountsPath,
			Users:    defaultUsersPath,
		},
		Filter: Filter{
			MinScore:     leadmerge.DefaultThreshold,
			ExcludeZIP:   leadmerge.ExcludedZIP,
			DedupeColumn: leadmerge.ColMessage,
		},
		Input: Input{
			DropColumns: append([]string(nil), leadmerge.DefaultDropColumns...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
