package model

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindSmartwatch Kind = "smartwatch"
	KindComputer   Kind = "pc"
	KindEmbedded   Kind = "embedded"
)

const (
	TagSmartwatch = "SW"
	TagComputer   = "P"
	TagEmbedded   = "ED"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindSmartwatch, KindComputer, KindEmbedded:
		return true
	default:
		return false
	}
}

// Tag returns the identifier prefix conventionally used by records of this kind.
func (k Kind) Tag() string {
	switch k {
	case KindSmartwatch:
		return TagSmartwatch
	case KindComputer:
		return TagComputer
	case KindEmbedded:
		return TagEmbedded
	default:
		return ""
	}
}

func ParseKind(s string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidKind, s)
	}

	return kind, nil
}

func AllKinds() []Kind {
	return []Kind{KindSmartwatch, KindComputer, KindEmbedded}
}
