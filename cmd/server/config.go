package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/db"
	"liyu1981.xyz/maternity-monitor-service/pkg/notify"
)

type config struct {
	DbType       string
	HttpHostPort string
	GrpcHostPort string
	DefaultRate  float64
	DefaultBurst int
	RedisAddr    string
	RedisChannel string
}

func loadConfig() (*config, error) {
	cfg := &config{
		DbType:       strings.TrimSpace(os.Getenv(common.EnvKeyMaternityDBType)),
		HttpHostPort: strings.TrimSpace(os.Getenv(common.EnvKeyMaternityHttpHostPort)),
		GrpcHostPort: strings.TrimSpace(os.Getenv(common.EnvKeyMaternityGrpcHostPort)),
		RedisAddr:    strings.TrimSpace(os.Getenv(common.EnvKeyMaternityRedisAddr)),
		RedisChannel: strings.TrimSpace(os.Getenv(common.EnvKeyMaternityRedisChannel)),
	}

	if cfg.HttpHostPort == "" {
		// fallback to default http port
		cfg.HttpHostPort = ":1080"
	}
	if cfg.RedisChannel == "" {
		cfg.RedisChannel = notify.DefaultChannel
	}

	var err error
	if cfg.DefaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyMaternityDefaultRate), 64); err != nil {
		return nil, fmt.Errorf("invalid %s, or not set in .env, should be a float64 value", common.EnvKeyMaternityDefaultRate)
	}

	var burst int64
	if burst, err = strconv.ParseInt(os.Getenv(common.EnvKeyMaternityDefaultBurst), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid %s, or not set in .env, should be an int value", common.EnvKeyMaternityDefaultBurst)
	}
	cfg.DefaultBurst = int(burst)

	if _, err := cfg.dialector(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *config) dialector() (gorm.Dialector, error) {
	switch c.DbType {
	case "file":
		return db.UseSqliteDialector(), nil
	case "memory":
		return db.UseMemorySqliteDialector(), nil
	case "postgres":
		return db.UsePostgresDialector(), nil
	default:
		return nil, fmt.Errorf("unknown %s: %q", common.EnvKeyMaternityDBType, c.DbType)
	}
}
