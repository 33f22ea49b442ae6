package catalog

import (
	"fmt"
	"strings"

	"github.com/lowaak/flowlift/internal/workout"
)

// Location is where the user trains. It picks the default equipment filter.
type Location string

const (
	LocationHome Location = "home"
	LocationGym  Location = "gym"
)

func ParseLocation(s string) (Location, error) {
	switch Location(strings.ToLower(strings.TrimSpace(s))) {
	case LocationHome:
		return LocationHome, nil
	case LocationGym:
		return LocationGym, nil
	default:
		return "", fmt.Errorf("unknown location %q", s)
	}
}

// DefaultEquipment is the equipment usually available at the location.
func (l Location) DefaultEquipment() []workout.Equipment {
	if l == LocationGym {
		return append([]workout.Equipment(nil), workout.AllEquipment...)
	}
	return []workout.Equipment{
		workout.EquipmentBodyweight,
		workout.EquipmentDumbbell,
		workout.EquipmentBench,
	}
}

func (l Location) DisplayName() string {
	switch l {
	case LocationHome:
		return "Home"
	case LocationGym:
		return "Gym"
	default:
		return string(l)
	}
}
