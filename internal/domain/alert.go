package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Source string

const (
	SourceSteam   Source = "steam"
	SourceCSFloat Source = "csfloat"
)

func ParseSource(input string) (Source, bool) {
	switch Source(strings.ToLower(strings.TrimSpace(input))) {
	case SourceSteam:
		return SourceSteam, true
	case SourceCSFloat:
		return SourceCSFloat, true
	}
	return "", false
}

type Direction string

const (
	DirectionBelow Direction = "below"
	DirectionAbove Direction = "above"
)

func ParseDirection(input string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(input))) {
	case DirectionBelow:
		return DirectionBelow, true
	case DirectionAbove:
		return DirectionAbove, true
	}
	return "", false
}

// Alert is a one-shot price watch. It stays in the store until its condition
// is first satisfied and the notification is delivered.
type Alert struct {
	User        int64
	Destination int64
	Item        string
	Source      Source
	Direction   Direction
	TargetPrice decimal.Decimal
}

// Equal reports full value identity. decimal.Decimal is not comparable with
// ==, so removal must go through this.
func (a Alert) Equal(other Alert) bool {
	return a.User == other.User &&
		a.Destination == other.Destination &&
		a.Item == other.Item &&
		a.Source == other.Source &&
		a.Direction == other.Direction &&
		a.TargetPrice.Equal(other.TargetPrice)
}

// DailySubscription is a recurring digest for one item and source.
// LastSent holds the ISO calendar date of the last delivered digest,
// "" when no digest has been sent yet.
type DailySubscription struct {
	User        int64
	Destination int64
	Item        string
	Source      Source
	LastSent    string
}
