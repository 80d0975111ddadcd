package quote

import (
	"fmt"
	"strings"
)

type Mode string

const (
	// ModeBuyer hides locked packaging options.
	ModeBuyer Mode = "buyer"
	// ModeAdmin lets catalogue editors price locked options, except for
	// packaging types listed in Policy.UnconditionalLocks.
	ModeAdmin Mode = "admin"
)

// Policy controls how locked packaging options are treated.
type Policy struct {
	Mode               Mode
	UnconditionalLocks []PackagingType
}

func DefaultPolicy() Policy {
	return Policy{Mode: ModeBuyer}
}

// ParsePolicy builds a Policy from a mode name and a comma separated list of
// packaging types whose locks apply in every mode.
func ParsePolicy(mode string, unconditional string) (Policy, error) {
	policy := DefaultPolicy()

	switch Mode(strings.ToLower(strings.TrimSpace(mode))) {
	case ModeBuyer, "":
		policy.Mode = ModeBuyer
	case ModeAdmin:
		policy.Mode = ModeAdmin
	default:
		return Policy{}, fmt.Errorf("unsupported quote policy mode: %s", mode)
	}

	for _, raw := range strings.Split(unconditional, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		t, ok := ParsePackagingType(raw)
		if !ok {
			return Policy{}, fmt.Errorf("unknown packaging type in unconditional locks: %s", raw)
		}
		policy.UnconditionalLocks = append(policy.UnconditionalLocks, t)
	}

	return policy, nil
}

// Admits reports whether a packaging entry may be quoted under the policy.
func (p Policy) Admits(entry PackagingPriceEntry) bool {
	if !entry.Locked {
		return true
	}
	if p.Mode != ModeAdmin {
		return false
	}
	for _, t := range p.UnconditionalLocks {
		if t == entry.Type {
			return false
		}
	}
	return true
}
