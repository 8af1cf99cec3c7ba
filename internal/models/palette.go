package models

import (
	"strconv"
	"strings"
)

type PaletteColor struct {
	ID   string
	Name string
	Hex  string
}

var Palette = []PaletteColor{
	{ID: "0", Name: "Pink", Hex: "#ec4899"},
	{ID: "1", Name: "Purple", Hex: "#8b5cf6"},
	{ID: "2", Name: "Blue", Hex: "#3b82f6"},
	{ID: "3", Name: "Green", Hex: "#10b981"},
	{ID: "4", Name: "Yellow", Hex: "#f59e0b"},
	{ID: "5", Name: "Red", Hex: "#ef4444"},
	{ID: "6", Name: "Indigo", Hex: "#6366f1"},
	{ID: "7", Name: "Teal", Hex: "#14b8a6"},
}

// Icons is the picker's icon set, grouped by theme.
var Icons = []string{
	// Fitness
	"💪", "🏃", "🚴", "🏋️", "🧘", "🏊", "⚽", "🏀", "🎾", "🥊", "🧗",
	// Wellness
	"🧠", "😴", "💤", "🛁", "💆", "🧴", "🌿",
	// Food
	"🍎", "🥗", "🥑", "🥦", "🥕", "🍓", "🥜", "💧",
	// Learning
	"📚", "📖", "✏️", "📝", "🎓", "💻", "📊", "🎯",
	// Creativity
	"🎨", "🎭", "🎵", "🎸", "🎹", "🎤", "📷", "🎮", "🧩", "✍️",
	// Work
	"💼", "📧", "📋", "🔧", "⚙️", "🛠️",
	// Outdoors
	"🌱", "🌳", "🍀", "🌸", "🌻", "🌹",
	// Travel
	"✈️", "🚗", "🚲", "⛵", "🗺️", "🧭", "🏕️", "🏔️",
	// Mood
	"😊", "😎", "🤗", "😌", "🥳",
	// Success
	"⭐", "🌟", "✨", "💎", "🏆", "🥇", "🏅", "🎉",
	// Daily
	"☀️", "🌙", "🌅", "☕", "🍵", "🧹", "💰", "🙏",
	// Tech
	"🚀", "🛸", "🔬", "🔭", "⚡", "💡", "🔋", "📡",
	// Animals
	"🐕", "🐈", "🐦", "🐠", "🐢", "🐸", "🐬",
	// Weather
	"🌤️", "☁️", "🌧️", "❄️", "🌈", "🌊",
}

const (
	DefaultColor = "0"
	DefaultIcon  = "💪"
)

// ColorFor maps a habit color string onto the palette. Non-numeric values use
// the first entry and out-of-range values wrap.
func ColorFor(color string) PaletteColor {
	idx, err := strconv.Atoi(strings.TrimSpace(color))
	if err != nil {
		idx = 0
	}
	n := len(Palette)
	idx %= n
	if idx < 0 {
		idx += n
	}
	return Palette[idx]
}
