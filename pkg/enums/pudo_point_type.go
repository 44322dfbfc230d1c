package enums

import "fmt"

// PudoPointType classifies a Correos pick-up/drop-off location.
type PudoPointType string

const (
	PudoPointTypeOficina PudoPointType = "Oficina"
	PudoPointTypeCitypaq PudoPointType = "Citypaq"
	PudoPointTypeLocker  PudoPointType = "Locker"
)

var validPudoPointTypes = []PudoPointType{
	PudoPointTypeOficina,
	PudoPointTypeCitypaq,
	PudoPointTypeLocker,
}

// String implements fmt.Stringer.
func (p PudoPointType) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p PudoPointType) IsValid() bool {
	for _, candidate := range validPudoPointTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePudoPointType converts raw input into a PudoPointType.
func ParsePudoPointType(value string) (PudoPointType, error) {
	for _, candidate := range validPudoPointTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pudo point type %q", value)
}
