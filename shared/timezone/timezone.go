package timezone

import (
	"mariachi/config"
	"mariachi/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultZone = "UTC"

var (
	appLocation *time.Location
)

func init() {
	zone := config.Get().App.Timezone
	if zone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		zone = defaultZone
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", zone).
			Msg("Failed to load timezone, falling back to UTC. Use IANA names such as 'America/Mexico_City'")

		appLocation = time.UTC

		return
	}

	appLocation = loc

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

// GetLocation returns the application timezone. Event dates and hours are
// wall-clock values in this location.
func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

// Today is the current calendar date in the application timezone (YYYY-MM-DD).
func Today() string {
	return Now().Format(constant.DateOnlyFormat)
}

// ParseDate reads a YYYY-MM-DD date as midnight in the application timezone.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(constant.DateOnlyFormat, value, GetLocation()) //nolint:wrapcheck
}

// Format renders t in the application timezone.
func Format(t time.Time, layout string) string {
	return t.In(GetLocation()).Format(layout)
}
