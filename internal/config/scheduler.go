package config

import (
	"os"
	"strconv"
	"time"
)

const (
	schedulerTickSecondsEnv    = "SCHEDULER_TICK_SECONDS"
	actionWindowMinutesEnv     = "ACTION_WINDOW_MINUTES"
	autoDismissSecondsEnv      = "NOTIFICATION_AUTO_DISMISS_SECONDS"
	schedulerConcurrencyEnv    = "SCHEDULER_CONCURRENCY"
	repositoryTimeoutMillisEnv = "REPOSITORY_TIMEOUT_MS"

	defaultSchedulerTickSeconds    = 60
	defaultActionWindowMinutes     = 30
	defaultAutoDismissSeconds      = 10
	defaultSchedulerConcurrency    = 8
	defaultRepositoryTimeoutMillis = 5000
)

type SchedulerConfig struct {
	TickInterval        time.Duration
	ActionWindowMinutes int
	AutoDismiss         time.Duration
	Concurrency         int
}

func LoadSchedulerConfig() *SchedulerConfig {
	tickSeconds := positiveIntEnv(schedulerTickSecondsEnv, defaultSchedulerTickSeconds)
	windowMinutes := positiveIntEnv(actionWindowMinutesEnv, defaultActionWindowMinutes)
	dismissSeconds := positiveIntEnv(autoDismissSecondsEnv, defaultAutoDismissSeconds)
	concurrency := positiveIntEnv(schedulerConcurrencyEnv, defaultSchedulerConcurrency)

	return &SchedulerConfig{
		TickInterval:        time.Duration(tickSeconds) * time.Second,
		ActionWindowMinutes: windowMinutes,
		AutoDismiss:         time.Duration(dismissSeconds) * time.Second,
		Concurrency:         concurrency,
	}
}

type RepositoryConfig struct {
	Timeout time.Duration
}

func LoadRepositoryConfig() *RepositoryConfig {
	millis := positiveIntEnv(repositoryTimeoutMillisEnv, defaultRepositoryTimeoutMillis)

	return &RepositoryConfig{
		Timeout: time.Duration(millis) * time.Millisecond,
	}
}

// positiveIntEnv falls back to def when the variable is unset or not a
// positive integer.
func positiveIntEnv(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
