package telegram

import (
	"errors"
	"strings"
)

const HelpText = `Commands:
/start - welcome message
/help - show this help
/track <item> <steam|csfloat> <below|above> <price>
/untrack <item> <steam|csfloat>
/daily <item> <steam|csfloat> <on|off>
/list - your alerts and daily digests

Notes:
- Item names are Steam market hash names and may contain spaces,
  e.g. "AK-47 | Redline (Field-Tested)" (without quotes).
- An alert fires once and is then removed.
Example:
/track AK-47 | Redline (Field-Tested) steam below 11.50
/daily AK-47 | Redline (Field-Tested) csfloat on
`

var ErrInvalidArguments = errors.New("invalid arguments")

// Item names contain spaces, so the fixed-arity fields are taken from the
// end and everything before them is the item.

func ParseTrackArgs(args string) (item, source, direction, price string, err error) {
	parts := strings.Fields(args)
	if len(parts) < 4 {
		return "", "", "", "", ErrInvalidArguments
	}
	n := len(parts)
	return strings.Join(parts[:n-3], " "), parts[n-3], parts[n-2], parts[n-1], nil
}

func ParseUntrackArgs(args string) (item, source string, err error) {
	parts := strings.Fields(args)
	if len(parts) < 2 {
		return "", "", ErrInvalidArguments
	}
	n := len(parts)
	return strings.Join(parts[:n-1], " "), parts[n-1], nil
}

func ParseDailyArgs(args string) (item, source, mode string, err error) {
	parts := strings.Fields(args)
	if len(parts) < 3 {
		return "", "", "", ErrInvalidArguments
	}
	n := len(parts)
	return strings.Join(parts[:n-2], " "), parts[n-2], parts[n-1], nil
}
