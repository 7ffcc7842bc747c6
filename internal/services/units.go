package services

import "errors"

var ErrUnitConversion = errors.New("units are not convertible")

// UnitDefinition describes one selectable unit. Factor converts a value into
// the base unit of its kind. Pure configuration data; nothing in the stats
// engine depends on it.
type UnitDefinition struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Factor float64 `json:"factor"`
}

const (
	UnitKindTime     = "time"
	UnitKindMass     = "mass"
	UnitKindVolume   = "volume"
	UnitKindEnergy   = "energy"
	UnitKindLength   = "length"
	UnitKindQuantity = "quantity"
)

var unitCatalog = []UnitDefinition{
	{Name: "minutes", Kind: UnitKindTime, Factor: 1},
	{Name: "hours", Kind: UnitKindTime, Factor: 60},
	{Name: "grams", Kind: UnitKindMass, Factor: 1},
	{Name: "kilograms", Kind: UnitKindMass, Factor: 1000},
	{Name: "milliliters", Kind: UnitKindVolume, Factor: 1},
	{Name: "liters", Kind: UnitKindVolume, Factor: 1000},
	{Name: "glasses", Kind: UnitKindVolume, Factor: 250},
	{Name: "calories", Kind: UnitKindEnergy, Factor: 1},
	{Name: "kilocalories", Kind: UnitKindEnergy, Factor: 1000},
	{Name: "meters", Kind: UnitKindLength, Factor: 1},
	{Name: "kilometers", Kind: UnitKindLength, Factor: 1000},
	{Name: "steps", Kind: UnitKindQuantity, Factor: 1},
	{Name: "reps", Kind: UnitKindQuantity, Factor: 1},
	{Name: "pages", Kind: UnitKindQuantity, Factor: 1},
	{Name: "times", Kind: UnitKindQuantity, Factor: 1},
}

// UnitCatalog returns the full unit table for the client's pickers.
func UnitCatalog() []UnitDefinition {
	catalog := make([]UnitDefinition, len(unitCatalog))
	copy(catalog, unitCatalog)
	return catalog
}

func findUnit(name string) (UnitDefinition, bool) {
	for _, unit := range unitCatalog {
		if unit.Name == name {
			return unit, true
		}
	}
	return UnitDefinition{}, false
}

// ConvertUnits converts a value between two units of the same kind.
func ConvertUnits(value float64, fromName string, toName string) (float64, error) {
	from, fromKnown := findUnit(fromName)
	to, toKnown := findUnit(toName)
	if !fromKnown || !toKnown || from.Kind != to.Kind {
		return 0, ErrUnitConversion
	}
	return value * from.Factor / to.Factor, nil
}
