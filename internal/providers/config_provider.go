package providers

import (
	"fmt"
	"path/filepath"
	"rosterd/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("discipline.warningsPerReprimand", 5)
	viper.SetDefault("discipline.maxReprimands", 3)
	viper.SetDefault("news.ttl", "24h")
	viper.SetDefault("news.sweepInterval", "30m")
	viper.SetDefault("news.recentLimit", 10)
	viper.SetDefault("storage.archiveTTL", "720h")
	viper.SetDefault("cache.ttl", "5s")

	viper.BindEnv("logger.level", "ROSTERD_LOG_LEVEL")
	viper.BindEnv("storage.documentPath", "ROSTERD_DOCUMENT_PATH")
	viper.BindEnv("news.ttl", "ROSTERD_NEWS_TTL")
	viper.BindEnv("news.sweepInterval", "ROSTERD_SWEEP_INTERVAL")
	viper.BindEnv("cache.enabled", "ROSTERD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "ROSTERD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "RosterDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
