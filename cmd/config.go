package cmd

import (
	"strconv"
	"time"
)

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	SnapshotSize        string
	SnapshotTTL         string
	SnapshotRefreshSpec string
}

const (
	defaultSnapshotSize        = 1024
	defaultSnapshotTTL         = 5 * time.Minute
	defaultSnapshotRefreshSpec = "*/30 * * * * *"
)

// SnapshotSizeValue returns the configured snapshot capacity, falling back
// to the default when unset or unparseable.
func (c Config) SnapshotSizeValue() int {
	size, err := strconv.Atoi(c.SnapshotSize)
	if err != nil || size <= 0 {
		return defaultSnapshotSize
	}
	return size
}

// SnapshotTTLValue returns the configured snapshot entry lifetime, falling
// back to the default when unset or unparseable.
func (c Config) SnapshotTTLValue() time.Duration {
	ttl, err := time.ParseDuration(c.SnapshotTTL)
	if err != nil || ttl <= 0 {
		return defaultSnapshotTTL
	}
	return ttl
}

// SnapshotRefreshSpecValue returns the cron spec of the snapshot refresh
// job, falling back to the default when unset.
func (c Config) SnapshotRefreshSpecValue() string {
	if c.SnapshotRefreshSpec == "" {
		return defaultSnapshotRefreshSpec
	}
	return c.SnapshotRefreshSpec
}
