package config

import (
	"time"

	"github.com/spf13/viper"
)

// GetStoreRoot returns the snapshot store root directory.
func GetStoreRoot() string {
	return viper.GetString("store.root")
}

// GetWorkdir returns the working directory being versioned.
func GetWorkdir() string {
	return viper.GetString("store.workdir")
}

// GetLockTimeout returns the bounded wait for the store's exclusive
// lock.
func GetLockTimeout() time.Duration {
	return viper.GetDuration("store.lock_timeout")
}

// GetLogLevel returns the diagnostic log level name.
func GetLogLevel() string {
	return viper.GetString("log.level")
}
