package riot

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRegion = errors.New("unknown region")

// regionToPlatform maps user-facing region codes to Riot platform routing
// codes used in platform-scoped endpoint hosts.
var regionToPlatform = map[string]string{
	"NA":   "na1",
	"EUW":  "euw1",
	"EUNE": "eun1",
	"KR":   "kr",
	"OCE":  "oc1",
	"LAN":  "la1",
	"LAS":  "la2",
	"BR":   "br1",
	"TR":   "tr1",
	"RU":   "ru",
	"JP":   "jp1",
}

// Regions lists the supported region codes.
func Regions() []string {
	regions := make([]string, 0, len(regionToPlatform))
	for region := range regionToPlatform {
		regions = append(regions, region)
	}
	return regions
}

func platformFor(region string) (string, error) {
	platform, ok := regionToPlatform[strings.ToUpper(region)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	return platform, nil
}
