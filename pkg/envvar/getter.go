package envvar

import (
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// String returns the value of the environment variable n, or the optional default.
// The bool reports whether the variable was set.
func String(n string, args ...string) (string, bool) {
	defaultValue := ""
	if len(args) > 0 {
		defaultValue = args[0]
	}

	str, ok := os.LookupEnv(n)
	if !ok {
		return defaultValue, false
	}

	return str, true
}

func Duration(n string, args ...time.Duration) (time.Duration, bool) {
	defaultValue := time.Duration(0)
	if len(args) > 0 {
		defaultValue = args[0]
	}

	str, ok := os.LookupEnv(n)
	if !ok {
		return defaultValue, false
	}

	du, err := time.ParseDuration(str)
	if err != nil {
		logrus.WithError(err).Errorf("can not parse env var %q as time.Duration, incorrect format", n)
		return defaultValue, false
	}

	return du, true
}

func Uint64(n string, args ...uint64) (uint64, bool) {
	defaultValue := uint64(0)
	if len(args) > 0 {
		defaultValue = args[0]
	}

	str, ok := os.LookupEnv(n)
	if !ok {
		return defaultValue, false
	}

	num, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		logrus.WithError(err).Errorf("can not parse env var %q as uint, incorrect format", n)
		return defaultValue, false
	}

	return num, true
}
