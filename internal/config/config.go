package config

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/viper"
)

const envPrefix = "DEPSOLVE"

// ResolverConfig is the ambient configuration for a solve invocation:
// which architecture to prefer among candidates, and
// where to load package sets and repository artifacts from.
type ResolverConfig struct {
	PreferredArch string `mapstructure:"preferred_arch"`
	PackageSetDir string `mapstructure:"package_set_dir"`
	RepoBaseURL   string `mapstructure:"repo_base_url"`
}

// Load reads configuration from an optional file plus DEPSOLVE_*
// environment variables, mirroring the teacher's initConfig/viper
// binding pattern in internal/cli/root.go.
func Load(configFile string) (ResolverConfig, error) {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetDefault("preferred_arch", "amd64")
	viper.SetDefault("package_set_dir", ".")

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return ResolverConfig{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
	} else {
		viper.SetConfigName("depsolve")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		_ = viper.ReadInConfig()
	}

	var cfg ResolverConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return ResolverConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode configuration").
			WithCause(err)
	}
	return cfg, nil
}
