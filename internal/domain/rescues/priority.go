package rescues

import (
	"time"

	"animal-rescue/internal/platform/refcode"
)

// PriorityScore: critical 100, urgent 75, standard 50, otro 25.
func PriorityScore(level EmergencyLevel) int {
	switch level {
	case LevelCritical:
		return 100
	case LevelUrgent:
		return 75
	case LevelStandard:
		return 50
	default:
		return 25
	}
}

// NewReferenceNumber: RR-<millis base36>-<6 base36>, en mayúsculas.
// Las colisiones se aceptan; no hay reintento.
func NewReferenceNumber(now time.Time) string {
	return refcode.New("RR", now, 6)
}

// NewPublicID no depende del id ni de la referencia.
func NewPublicID() string {
	return refcode.Random(8)
}
