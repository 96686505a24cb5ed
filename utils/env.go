package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/getsentry/sentry-go"
)

func IsDebug() bool {
	isDebug, err := strconv.ParseBool(os.Getenv("APP_DEBUG"))
	if err != nil {
		isDebug = false
	}

	return isDebug
}

func DefaultTimeZone() string {
	tz := os.Getenv("TZ")
	if len(tz) < 1 {
		tz = "UTC"
	}

	return tz
}

func DefaultLocation() *time.Location {
	tz := DefaultTimeZone()

	loc, err := time.LoadLocation(tz)
	if err != nil {
		sentry.CaptureException(err)
		return time.Now().Location()
	}

	return loc
}

// DefaultEndpointLabel names the endpoint backing the deprecated no-token
// ingestion route. It is pre-registered at boot.
func DefaultEndpointLabel() string {
	label := strings.TrimSpace(os.Getenv("DEFAULT_ENDPOINT_LABEL"))

	if len(label) < 1 {
		label = "default"
	}

	return label
}

func SeedFilePath() string {
	path := strings.TrimSpace(os.Getenv("SEED_FILE"))

	if len(path) < 1 {
		path = "seed.yaml"
	}

	return path
}

func SessionExpiration() time.Duration {
	hours, err := strconv.ParseInt(os.Getenv("SESSION_EXPIRATION"), 10, 64)
	if err != nil || hours < 1 {
		hours = 24
	}

	return time.Duration(hours) * time.Hour
}
