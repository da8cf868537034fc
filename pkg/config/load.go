package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from an optional config file (swquery.yaml in the
// working directory or an explicit path) merged with environment variables.
// Values not present in either source keep their Validate defaults.
//
// Environment bindings use the SWQUERY_ prefix, e.g. SWQUERY_RPC_ADDR,
// SWQUERY_PROGRAM_ID, SWQUERY_PRIVATE_KEY.
func Load(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("swquery")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		v.AddConfigPath(".")
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	// A missing file is fine; env vars and defaults still apply.
	_ = v.ReadInConfig()

	v.SetEnvPrefix("swquery")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := []string{
		"rpc_addr",
		"program_id",
		"usdc_mint",
		"private_key",
		"keygen_file",
		"commitment",
		"debug",
		"network.network_name",
		"network.http_url",
		"network.ws_url",
		"network.program_id",
	}
	for _, key := range bindings {
		_ = v.BindEnv(key)
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
