// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"inkubator_backend/internals/configs"
)

const DefaultTimezone = "Asia/Jakarta"

var (
	locOnce sync.Once
	appLoc  *time.Location
)

// AppLocation zona waktu aplikasi (APP_TIMEZONE), di-cache sekali per proses.
// Fallback: Asia/Jakarta → UTC.
func AppLocation() *time.Location {
	locOnce.Do(func() {
		appLoc = LoadLocation(configs.GetEnv("APP_TIMEZONE", DefaultTimezone))
	})
	return appLoc
}

func LoadLocation(name string) *time.Location {
	if name = strings.TrimSpace(name); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// ToAppTime mengonversi waktu DB (UTC) ke zona aplikasi. Zero time dikembalikan apa adanya.
func ToAppTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(AppLocation())
}

func ToAppTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToAppTime(*t)
	return &v
}
