package gmimap

import (
	"fmt"
	"strings"
	"time"
)

// Date and time layouts.
const (
	// INTERNALDATE layout, described in RFC 3501 section 9 (date-time). The
	// day may be space-padded.
	DateTimeLayout = "_2-Jan-2006 15:04:05 -0700"
	// Described in RFC 5322 section 3.3.
	MessageDateTimeLayout = "Mon, 02 Jan 2006 15:04:05 -0700"
)

// messageDateTimeLayouts holds the permutations of the layouts defined in RFC
// 5322 section 3.3, most popular first.
var messageDateTimeLayouts = buildMessageDateTimeLayouts()

func buildMessageDateTimeLayouts() []string {
	layouts := []string{MessageDateTimeLayout}
	for _, weekday := range []string{"", "Mon, "} {
		for _, day := range []string{"2", "02"} {
			for _, year := range []string{"2006", "06"} {
				for _, clock := range []string{"15:04:05", "15:04"} {
					for _, zone := range []string{"-0700", "MST", "-0700 (MST)"} {
						layout := fmt.Sprintf("%v%v Jan %v %v %v", weekday, day, year, clock, zone)
						if layout != MessageDateTimeLayout {
							layouts = append(layouts, layout)
						}
					}
				}
			}
		}
	}
	return layouts
}

// ParseMessageDateTime parses a message date as found in the Date header
// field and in the ENVELOPE attribute.
func ParseMessageDateTime(maybeDate string) (time.Time, error) {
	maybeDate = strings.Join(strings.Fields(maybeDate), " ")
	for _, layout := range messageDateTimeLayouts {
		if t, err := time.Parse(layout, maybeDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("gmimap: date %q could not be parsed", maybeDate)
}

// ParseDateTime parses an INTERNALDATE date-time.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		// Some servers drop the padding space
		t, err = time.Parse(DateTimeLayout, strings.TrimSpace(s))
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("gmimap: date-time %q could not be parsed", s)
	}
	return t, nil
}
