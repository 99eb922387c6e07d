package route

import "fmt"

// Pair is an origin/destination query, both given as free-text place names.
type Pair struct {
	Origin      string `yaml:"origin" json:"origin" validate:"required"`
	Destination string `yaml:"destination" json:"destination" validate:"required"`
}

// Label returns the display name used for the ruta column.
func (p Pair) Label() string {
	return fmt.Sprintf("%s - %s", p.Origin, p.Destination)
}

// DefaultPairs is the built-in query list used when no pair file is configured.
func DefaultPairs() []Pair {
	return []Pair{
		{Origin: "San José, Costa Rica", Destination: "Alajuela, Costa Rica"},
		{Origin: "San José, Costa Rica", Destination: "Cartago, Costa Rica"},
		{Origin: "San José, Costa Rica", Destination: "Heredia, Costa Rica"},
		{Origin: "Alajuela, Costa Rica", Destination: "Cartago, Costa Rica"},
	}
}
