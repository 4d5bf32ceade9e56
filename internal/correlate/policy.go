package correlate

import "fmt"

// Policy selects the overload a @copybrief naming an overload set copies from.
type Policy uint8

const (
	// PolicyNearest picks the nearest preceding overload, else the first
	// following one.
	PolicyNearest Policy = iota
	// PolicyFirst picks the first overload in source order.
	PolicyFirst
	// PolicyStrict leaves references to overload sets unresolved.
	PolicyStrict
)

var policyNames = [...]string{
	PolicyNearest: "nearest",
	PolicyFirst:   "first",
	PolicyStrict:  "strict",
}

func (p Policy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", p)
}

// ParsePolicy parses a policy name; "" means PolicyNearest.
func ParsePolicy(s string) (Policy, error) {
	if s == "" {
		return PolicyNearest, nil
	}
	for i, name := range policyNames {
		if name == s {
			return Policy(i), nil
		}
	}
	return PolicyNearest, fmt.Errorf("unknown copybrief policy %q (want nearest, first or strict)", s)
}
