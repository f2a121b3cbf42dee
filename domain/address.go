package domain

import "strings"

// Residents and historical data write the same address inconsistently
// ("3" vs "3栋"), so every uniqueness check runs on the normalized form.

const (
	buildingSuffix = "栋"
	unitSuffix     = "单元"
)

var buildingMarkers = []string{"栋", "座", "幢"}

// NormalizeBuilding appends the default building suffix unless the value
// already carries a building/block marker glyph. Idempotent.
func NormalizeBuilding(building string) string {
	b := strings.TrimSpace(building)
	if b == "" {
		return b
	}
	for _, marker := range buildingMarkers {
		if strings.Contains(b, marker) {
			return b
		}
	}
	return b + buildingSuffix
}

// NormalizeUnit appends the default unit suffix unless the value already
// carries the unit marker glyph. Idempotent.
func NormalizeUnit(unit string) string {
	u := strings.TrimSpace(unit)
	if u == "" {
		return u
	}
	if strings.Contains(u, unitSuffix) {
		return u
	}
	return u + unitSuffix
}

// NormalizeRoom only trims; rooms carry no designator glyph.
func NormalizeRoom(room string) string {
	return strings.TrimSpace(room)
}
