// Package config reads server and dbtool settings from the environment.
// Invalid optional values are logged and replaced by their default.
package config

import (
	"strconv"
	"strings"
	"time"

	"delivery-date-service/internal/platform/config/raw"
	"delivery-date-service/internal/platform/logger"
)

// Conf is a view over environment variables sharing a prefix such as "PG_".
type Conf struct{ prefix string }

func New() Conf { return Conf{} }

func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// Get is New().MayString for flag defaults in cmd/dbtool.
func Get(key, def string) string { return New().MayString(key, def) }

// MustString panics when key is unset or blank.
func (c Conf) MustString(key string) string {
	v := raw.Get(c.key(key), "")
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

func (c Conf) MayString(key, def string) string { return raw.Get(c.key(key), def) }

func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := raw.Get(c.key(key), "")
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).Msg("invalid value; using default")
		return def
	}
	return v
}

// SplitCSV splits a tenant list on commas and drops blank items.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
