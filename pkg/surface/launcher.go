package surface

import (
	"strings"

	"github.com/pkg/errors"
)

type Driver string

const (
	DriverChromedp Driver = "chromedp"
	DriverLorca    Driver = "lorca"
	DriverGoChart  Driver = "gochart"
)

var Drivers = []Driver{DriverChromedp, DriverLorca, DriverGoChart}

func ParseDriver(s string) (Driver, error) {
	d := Driver(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case "":
		return DriverChromedp, nil
	case DriverChromedp, DriverLorca, DriverGoChart:
		return d, nil
	}

	return "", errors.Errorf("unsupported render driver %q, valid drivers: %v", s, Drivers)
}

// NewLauncher returns the launcher of the given driver name.
func NewLauncher(driver string, options Options) (Launcher, error) {
	d, err := ParseDriver(driver)
	if err != nil {
		return nil, err
	}

	switch d {
	case DriverLorca:
		return NewLorcaLauncher(options), nil
	case DriverGoChart:
		return NewGoChartLauncher(options), nil
	}

	return NewChromedpLauncher(options), nil
}
