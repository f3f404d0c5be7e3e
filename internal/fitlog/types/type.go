package types

import "time"

// Color is a closed set of colors a workout type can be tagged with.
// Unknown values loaded from storage fall back to ColorGray.
type Color string

const (
	ColorGray   Color = "gray"
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorTeal   Color = "teal"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
)

func (c Color) String() string {
	return string(c)
}

func (c Color) IsValid() bool {
	switch c {
	case ColorGray, ColorRed, ColorOrange, ColorYellow,
		ColorGreen, ColorTeal, ColorBlue, ColorPurple, ColorPink:
		return true
	default:
		return false
	}
}

func (c Color) Hex() string {
	switch c {
	case ColorRed:
		return "E53935"
	case ColorOrange:
		return "FB8C00"
	case ColorYellow:
		return "FDD835"
	case ColorGreen:
		return "43A047"
	case ColorTeal:
		return "00897B"
	case ColorBlue:
		return "1E88E5"
	case ColorPurple:
		return "8E24AA"
	case ColorPink:
		return "D81B60"
	default:
		return "9E9E9E"
	}
}

// ParseColor never fails, unrecognized (legacy) values become ColorGray.
func ParseColor(s string) Color {
	if c := Color(s); c.IsValid() {
		return c
	}
	return ColorGray
}

// Icon is a closed set of symbolic icons a workout type can be tagged with.
// Unknown values loaded from storage fall back to IconFitness.
type Icon string

const (
	IconFitness  Icon = "fitness_center"
	IconRunning  Icon = "directions_run"
	IconCycling  Icon = "directions_bike"
	IconSwimming Icon = "pool"
	IconHiking   Icon = "hiking"
	IconYoga     Icon = "self_improvement"
	IconSports   Icon = "sports"
	IconRestDay  Icon = "hotel"
)

func (i Icon) String() string {
	return string(i)
}

func (i Icon) IsValid() bool {
	switch i {
	case IconFitness, IconRunning, IconCycling, IconSwimming,
		IconHiking, IconYoga, IconSports, IconRestDay:
		return true
	default:
		return false
	}
}

// ParseIcon never fails, unrecognized (legacy) values become IconFitness.
func ParseIcon(s string) Icon {
	if i := Icon(s); i.IsValid() {
		return i
	}
	return IconFitness
}

// WorkoutType is a user-defined category the workout entries are tagged with.
// ID 0 marks an unsaved (new) type.
type WorkoutType struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Color     Color     `json:"color"`
	Icon      Icon      `json:"icon"`
	IsDefault bool      `json:"isDefault"`
	IsRestDay bool      `json:"isRestDay"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultTypes is the type catalog seeded on first run.
func DefaultTypes() []WorkoutType {
	return []WorkoutType{
		{Name: "Chest", Color: ColorRed, Icon: IconFitness, IsDefault: true},
		{Name: "Back", Color: ColorBlue, Icon: IconFitness, IsDefault: true},
		{Name: "Legs", Color: ColorGreen, Icon: IconFitness, IsDefault: true},
		{Name: "Cardio", Color: ColorOrange, Icon: IconRunning, IsDefault: true},
		{Name: "Rest Day", Color: ColorGray, Icon: IconRestDay, IsDefault: true, IsRestDay: true},
	}
}
