// Package ui renders the dashboard with termui widgets.
package ui

import tui "github.com/gizak/termui/v3"

// Color classes for percentage gauges.
const (
	ClassGreen  = "green"
	ClassYellow = "yellow"
	ClassRed    = "red"
)

// ClassForPercent maps a usage percentage to its color class. Thresholds are
// 50 and 80, boundary values inclusive of the hotter class.
func ClassForPercent(percent float64) string {
	switch {
	case percent < 50:
		return ClassGreen
	case percent < 80:
		return ClassYellow
	default:
		return ClassRed
	}
}

// ColorForPercent maps a usage percentage to a terminal color.
func ColorForPercent(percent float64) tui.Color {
	switch ClassForPercent(percent) {
	case ClassGreen:
		return tui.ColorGreen
	case ClassYellow:
		return tui.ColorYellow
	default:
		return tui.ColorRed
	}
}
