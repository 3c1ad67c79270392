package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var shortMonthNames = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

var fullMonthNames = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// ShortMonthName returns the abbreviated Spanish name of the month
func ShortMonthName(m time.Month) string {
	return shortMonthNames[int(m)-1]
}

// FullMonthName returns the full Spanish name of the month
func FullMonthName(m time.Month) string {
	return fullMonthNames[int(m)-1]
}

// MonthLabel turns a YYYY-MM month key into a "mes año" label, for
// example "septiembre 2025". A key that does not parse is returned
// unchanged.
func MonthLabel(month string) string {
	parts := strings.SplitN(month, "-", 2)
	if len(parts) != 2 {
		return month
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return month
	}
	return fmt.Sprintf("%s %s", fullMonthNames[m-1], parts[0])
}
