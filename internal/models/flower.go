package models

import (
	"math"
	"strings"
	"time"
)

// FlowerType identifies one of the flowers a Pomodoro can grow.
type FlowerType string

const (
	Rose      FlowerType = "rose"
	Lily      FlowerType = "lily"
	Carnation FlowerType = "carnation"
	Daisy     FlowerType = "daisy"
	Peony     FlowerType = "peony"
	Orchid    FlowerType = "orchid"
)

// DefaultFlower is used whenever no valid flower has been selected.
const DefaultFlower = Rose

// Flowers lists the catalog in picker order.
var Flowers = []FlowerType{Rose, Lily, Carnation, Daisy, Peony, Orchid}

// Valid reports whether f is part of the catalog.
func (f FlowerType) Valid() bool {
	switch f {
	case Rose, Lily, Carnation, Daisy, Peony, Orchid:
		return true
	}

	return false
}

// Label is the display name of the flower.
func (f FlowerType) Label() string {
	switch f {
	case Rose:
		return "Rose"
	case Lily:
		return "Lily"
	case Carnation:
		return "Carnation"
	case Daisy:
		return "Daisy"
	case Peony:
		return "Peony"
	case Orchid:
		return "Orchid"
	}

	return DefaultFlower.Label()
}

// ParseFlower resolves a flower identifier, falling back to the default
// flower for empty or unknown values.
func ParseFlower(s string) FlowerType {
	f := FlowerType(strings.ToLower(strings.TrimSpace(s)))
	if f.Valid() {
		return f
	}

	return DefaultFlower
}

func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
