package aggregator

import (
	"fmt"

	"scout/internal/models"
)

// Variant fixes which lookups a run performs once the location is resolved.
type Variant struct {
	Kind       models.Variant
	Categories []string
	Weather    bool
}

// Property analyses the surroundings of an address.
func Property() Variant {
	return Variant{
		Kind:       models.PropertyVariant,
		Categories: []string{"school", "park", "grocery store"},
	}
}

// Trip plans a visit: current weather plus things to see and places to eat.
func Trip() Variant {
	return Variant{
		Kind:       models.TripVariant,
		Categories: []string{"tourist_attraction", "restaurant"},
		Weather:    true,
	}
}

func ForKind(kind models.Variant) (Variant, error) {
	switch kind {
	case models.PropertyVariant:
		return Property(), nil
	case models.TripVariant:
		return Trip(), nil
	default:
		return Variant{}, fmt.Errorf("unknown report variant %q", kind)
	}
}
