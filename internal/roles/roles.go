// Package roles is the single source of truth for account types and for which
// actor may assign or remove which account type. The client uses it to
// pre-validate admin actions; the server re-validates with the same rules.
package roles

import (
	"fmt"
	"sort"
	"strings"
)

// Role is an account type. Privilege grows in declaration order.
type Role string

const (
	Usuario        Role = "usuario"
	CriadorEmpresa Role = "criador_empresa"
	Empresa        Role = "empresa"
	AdminCidade    Role = "admin_cidade"
	AdminGeral     Role = "admin_geral"
)

var ranks = map[Role]int{
	Usuario:        1,
	CriadorEmpresa: 2,
	Empresa:        3,
	AdminCidade:    4,
	AdminGeral:     5,
}

// All lists every account type from least to most privileged.
func All() []Role {
	return []Role{Usuario, CriadorEmpresa, Empresa, AdminCidade, AdminGeral}
}

// Parse converts s into a Role. Surrounding spaces and case are ignored.
func Parse(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := ranks[r]
	return ok
}

// Rank is 0 for unknown roles.
func (r Role) Rank() int { return ranks[r] }

// Above reports whether r is strictly more privileged than other.
func (r Role) Above(other Role) bool { return r.Rank() > other.Rank() }

func (r Role) IsAdmin() bool { return r == AdminCidade || r == AdminGeral }

func (r Role) IsBusiness() bool { return r == CriadorEmpresa || r == Empresa }

func (r Role) String() string { return string(r) }

// Set is an unordered collection of roles.
type Set map[Role]struct{}

func NewSet(rs ...Role) Set {
	s := make(Set, len(rs))
	for _, r := range rs {
		s[r] = struct{}{}
	}
	return s
}

func (s Set) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Sorted returns the members ordered by privilege.
func (s Set) Sorted() []Role {
	out := make([]Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank() < out[j].Rank() })
	return out
}

// AvailableRoles returns the account types actor may assign to others.
func AvailableRoles(actor Role) Set {
	switch actor {
	case AdminGeral:
		return NewSet(All()...)
	case AdminCidade:
		return NewSet(Usuario, CriadorEmpresa, Empresa)
	default:
		return NewSet()
	}
}

// SelfAssignable are the account types a user may pick for their own profile
// at sign-up. Admin types are only ever granted by another admin.
func SelfAssignable(r Role) bool {
	return r == Usuario || r.IsBusiness()
}
