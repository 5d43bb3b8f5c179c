package parsing

import (
	"fmt"

	"github.com/araddon/dateparse"
)

// SeasonBucket returns the season grouping for an upload date. Dates shorter
// than four characters (including absent ones) bucket into "Unknown". The
// leading four characters are not validated as numeric.
func SeasonBucket(uploadDate string) string {
	if len(uploadDate) < 4 {
		return "Unknown"
	}
	return uploadDate[:4]
}

// HyphenateDate converts an 8-character yyyymmdd value to yyyy-mm-dd for
// display. Any other length returns an empty string.
func HyphenateDate(d string) string {
	if len(d) != 8 {
		return ""
	}
	return d[0:4] + "-" + d[4:6] + "-" + d[6:8]
}

// DateAfter parses a free-form date string (e.g. "2023-01-15" or
// "Jan 2nd, 2006") into the yyyymmdd form yt-dlp expects for --dateafter.
func DateAfter(dateString string) (string, error) {
	t, err := dateparse.ParseAny(dateString)
	if err != nil {
		return "", fmt.Errorf("unable to parse date: %s", dateString)
	}
	return t.Format("20060102"), nil
}
