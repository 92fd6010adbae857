package maintenance

import "fmt"

// WarningLevel classifies how close a nozzle is to its rated lifetime.
type WarningLevel string

const (
	WarningLow      WarningLevel = "low"
	WarningMedium   WarningLevel = "medium"
	WarningHigh     WarningLevel = "high"
	WarningCritical WarningLevel = "critical"
)

// Warning is one active wear threshold.
type Warning struct {
	Level     WarningLevel `json:"level"`
	Threshold float64      `json:"threshold"`
	Message   string       `json:"message"`
}

// warningLevels is the ordered threshold table. Thresholds are evaluated
// independently: a 95% worn nozzle carries the 60, 80 and 90 warnings at
// once. Compounding matches the historical behavior; callers wanting a
// single line use HighestActiveWarning.
var warningLevels = []struct {
	Level     WarningLevel
	Threshold float64
}{
	{WarningLow, 60},
	{WarningMedium, 80},
	{WarningHigh, 90},
	{WarningCritical, 100},
}

// activeWarnings returns every threshold at or below the given wear
// percentage, in ascending threshold order.
func activeWarnings(wearPct float64) []Warning {
	var warnings []Warning
	for _, lvl := range warningLevels {
		if wearPct >= lvl.Threshold {
			warnings = append(warnings, Warning{
				Level:     lvl.Level,
				Threshold: lvl.Threshold,
				Message:   warningMessage(lvl.Level, wearPct),
			})
		}
	}
	return warnings
}

func warningMessage(level WarningLevel, wearPct float64) string {
	switch level {
	case WarningLow:
		return fmt.Sprintf("Nozzle is %.0f%% worn - plan a replacement", wearPct)
	case WarningMedium:
		return fmt.Sprintf("Nozzle is nearing end of life (%.0f%%) - order a new one", wearPct)
	case WarningHigh:
		return fmt.Sprintf("Urgent replacement needed! %.0f%% worn", wearPct)
	case WarningCritical:
		return fmt.Sprintf("CRITICAL: nozzle is over its rated limit (%.0f%%) - replace now", wearPct)
	default:
		return fmt.Sprintf("Nozzle is %.0f%% worn", wearPct)
	}
}

// HighestActiveWarning returns the most severe active warning, for callers
// that prefer a single signal over the compounded list.
func HighestActiveWarning(warnings []Warning) (Warning, bool) {
	if len(warnings) == 0 {
		return Warning{}, false
	}
	highest := warnings[0]
	for _, w := range warnings[1:] {
		if w.Threshold > highest.Threshold {
			highest = w
		}
	}
	return highest, true
}
