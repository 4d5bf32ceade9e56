package main

import (
	"cppdoc/internal/driver"
)

// driverReport renders the aggregated phase table of results.
func driverReport(results []*driver.FileResult) string {
	return driver.TimingReport(results).String()
}
