package model

import "strings"

type SpecOperator string

const (
	SpecOpKind     SpecOperator = "kind"
	SpecOpPowered  SpecOperator = "powered"
	SpecOpName     SpecOperator = "name_contains"
	SpecOpIDIn     SpecOperator = "id_in"
	SpecOpMust     SpecOperator = "must"
	SpecOpShould   SpecOperator = "should"
	SpecOpMustNot  SpecOperator = "must_not"
	SpecOpAnything SpecOperator = "any"
)

// Specification selects devices. Leaves test a single attribute; composites
// combine other specifications.
type Specification interface {
	IsSatisfiedBy(d Device) bool
	Operator() SpecOperator
	Children() []Specification
}

// Filter returns the devices satisfying spec, preserving order. A nil spec keeps everything.
func Filter(devices []Device, spec Specification) []Device {
	if spec == nil {
		return devices
	}

	selected := make([]Device, 0, len(devices))

	for _, device := range devices {
		if spec.IsSatisfiedBy(device) {
			selected = append(selected, device)
		}
	}

	return selected
}

type predicateSpec struct {
	op   SpecOperator
	test func(Device) bool
}

func (s predicateSpec) IsSatisfiedBy(d Device) bool { return s.test(d) }
func (s predicateSpec) Operator() SpecOperator      { return s.op }
func (s predicateSpec) Children() []Specification   { return nil }

func Anything() Specification {
	return predicateSpec{op: SpecOpAnything, test: func(Device) bool { return true }}
}

func KindIs(kind Kind) Specification {
	return predicateSpec{op: SpecOpKind, test: func(d Device) bool { return d.Kind() == kind }}
}

func PoweredOn(on bool) Specification {
	return predicateSpec{op: SpecOpPowered, test: func(d Device) bool { return d.IsOn() == on }}
}

// NameContains matches case-insensitively.
func NameContains(fragment string) Specification {
	fragment = strings.ToLower(fragment)

	return predicateSpec{op: SpecOpName, test: func(d Device) bool {
		return strings.Contains(strings.ToLower(d.Name()), fragment)
	}}
}

func IDIn(ids ...string) Specification {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return predicateSpec{op: SpecOpIDIn, test: func(d Device) bool {
		_, ok := set[d.ID()]

		return ok
	}}
}

type compositeSpec struct {
	op    SpecOperator
	specs []Specification
}

func Must(specs ...Specification) Specification {
	return compositeSpec{op: SpecOpMust, specs: specs}
}

func Should(specs ...Specification) Specification {
	return compositeSpec{op: SpecOpShould, specs: specs}
}

func MustNot(spec Specification) Specification {
	return compositeSpec{op: SpecOpMustNot, specs: []Specification{spec}}
}

func (s compositeSpec) Operator() SpecOperator    { return s.op }
func (s compositeSpec) Children() []Specification { return s.specs }

func (s compositeSpec) IsSatisfiedBy(d Device) bool {
	switch s.op {
	case SpecOpMust:
		for _, spec := range s.specs {
			if !spec.IsSatisfiedBy(d) {
				return false
			}
		}

		return true
	case SpecOpShould:
		for _, spec := range s.specs {
			if spec.IsSatisfiedBy(d) {
				return true
			}
		}

		return len(s.specs) == 0
	case SpecOpMustNot:
		return !s.specs[0].IsSatisfiedBy(d)
	default:
		return false
	}
}
