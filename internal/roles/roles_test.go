package roles

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	r, err := Parse(" Admin_Cidade ")
	require.NoError(t, err)
	assert.Equal(t, AdminCidade, r)

	_, err = Parse("superuser")
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestRankOrder(t *testing.T) {
	all := All()
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i].Above(all[i-1]), "%s must be above %s", all[i], all[i-1])
	}
	assert.Equal(t, 0, Role("ghost").Rank())
}

func TestAvailableRoles(t *testing.T) {
	assert.Equal(t, []Role{Usuario, CriadorEmpresa, Empresa, AdminCidade, AdminGeral}, AvailableRoles(AdminGeral).Sorted())
	assert.Equal(t, []Role{Usuario, CriadorEmpresa, Empresa}, AvailableRoles(AdminCidade).Sorted())

	for _, r := range []Role{Usuario, CriadorEmpresa, Empresa, Role("")} {
		assert.Empty(t, AvailableRoles(r), "role %q must not assign anything", r)
	}
}

func TestAvailableRoles_NeverEscalates(t *testing.T) {
	universe := NewSet(All()...)
	for _, actor := range All() {
		for r := range AvailableRoles(actor) {
			assert.True(t, universe.Contains(r))
			if actor != AdminGeral {
				assert.False(t, r.Above(actor), "%s may not grant %s", actor, r)
			}
		}
	}
}

func TestAuthorizeRoleChange(t *testing.T) {
	tests := []struct {
		actor, target Role
		want          error
	}{
		{AdminGeral, AdminCidade, nil},
		{AdminGeral, AdminGeral, nil},
		{AdminCidade, Empresa, nil},
		{AdminCidade, AdminCidade, ErrForbiddenTarget},
		{AdminCidade, AdminGeral, ErrForbiddenTarget},
		{Empresa, Usuario, ErrInsufficientRole},
		{Usuario, Usuario, ErrInsufficientRole},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.actor, tt.target), func(t *testing.T) {
			err := AuthorizeRoleChange(tt.actor, tt.target)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthorizeRoleChange_CityAdminToGeneralHasOwnMessage(t *testing.T) {
	err := AuthorizeRoleChange(AdminCidade, AdminGeral)
	pe, ok := AsPermissionError(err)
	require.True(t, ok)
	assert.Equal(t, msgCityAdminToGeneral, pe.Message)

	other := AuthorizeRoleChange(AdminCidade, AdminCidade)
	assert.NotEqual(t, err.Error(), other.Error())
}

func TestAuthorizeDelete(t *testing.T) {
	require.NoError(t, AuthorizeDelete(AdminGeral, AdminGeral))
	require.NoError(t, AuthorizeDelete(AdminGeral, Usuario))
	require.NoError(t, AuthorizeDelete(AdminCidade, Empresa))
	require.NoError(t, AuthorizeDelete(AdminCidade, AdminCidade))

	require.ErrorIs(t, AuthorizeDelete(AdminCidade, AdminGeral), ErrForbiddenTarget)
	require.ErrorIs(t, AuthorizeDelete(Empresa, Usuario), ErrInsufficientRole)
	require.ErrorIs(t, AuthorizeDelete(Usuario, Usuario), ErrInsufficientRole)
}

func TestAuthorizeFor_NilActor(t *testing.T) {
	require.ErrorIs(t, AuthorizeRoleChangeFor(nil, Usuario), ErrNotAuthenticated)
	require.ErrorIs(t, AuthorizeDeleteFor(nil, Usuario), ErrNotAuthenticated)

	actor := AdminGeral
	require.NoError(t, AuthorizeRoleChangeFor(&actor, AdminCidade))
	require.NoError(t, AuthorizeDeleteFor(&actor, AdminGeral))
}

func TestPermissionErrorKindsAreDistinct(t *testing.T) {
	notAuth := AuthorizeDeleteFor(nil, Usuario)
	insufficient := AuthorizeDelete(Usuario, Usuario)
	forbidden := AuthorizeDelete(AdminCidade, AdminGeral)

	assert.False(t, errors.Is(notAuth, ErrInsufficientRole))
	assert.False(t, errors.Is(insufficient, ErrForbiddenTarget))
	assert.False(t, errors.Is(forbidden, ErrNotAuthenticated))

	wrapped := fmt.Errorf("set role: %w", forbidden)
	pe, ok := AsPermissionError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ForbiddenTarget, pe.Kind)
	assert.Equal(t, "forbidden_target", pe.Kind.String())
}

func TestSelfAssignable(t *testing.T) {
	assert.True(t, SelfAssignable(Usuario))
	assert.True(t, SelfAssignable(Empresa))
	assert.False(t, SelfAssignable(AdminCidade))
	assert.False(t, SelfAssignable(AdminGeral))
}

func TestAuthorizeSelfAssign(t *testing.T) {
	require.NoError(t, AuthorizeSelfAssign(CriadorEmpresa))
	require.ErrorIs(t, AuthorizeSelfAssign(AdminGeral), ErrForbiddenTarget)
	require.ErrorIs(t, AuthorizeSelfAssign(Role("dono")), ErrForbiddenTarget)
}

func TestAuthorizeAdmin(t *testing.T) {
	require.NoError(t, AuthorizeAdmin(AdminCidade))
	require.NoError(t, AuthorizeAdmin(AdminGeral))
	require.ErrorIs(t, AuthorizeAdmin(Empresa), ErrInsufficientRole)
}

func TestAuthorizeCity(t *testing.T) {
	lisboa, porto := "lisboa", "porto"
	tests := []struct {
		name    string
		actor   Role
		actorC  *string
		targetC *string
		wantErr bool
	}{
		{"same city", AdminCidade, &lisboa, &lisboa, false},
		{"other city", AdminCidade, &lisboa, &porto, true},
		{"target without city", AdminCidade, &lisboa, nil, true},
		{"actor without city", AdminCidade, nil, &lisboa, true},
		{"general admin anywhere", AdminGeral, nil, &porto, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeCity(tt.actor, tt.actorC, tt.targetC)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrForbiddenTarget)
			pe, ok := AsPermissionError(err)
			require.True(t, ok)
			assert.Contains(t, pe.Message, "própria cidade")
		})
	}
}

func TestAuthorizeSelf(t *testing.T) {
	require.NoError(t, AuthorizeSelf("u1", "u1"))
	require.ErrorIs(t, AuthorizeSelf("u1", "u2"), ErrForbiddenTarget)
	require.ErrorIs(t, AuthorizeSelf("", "u2"), ErrNotAuthenticated)
}

func TestRequireActor(t *testing.T) {
	require.ErrorIs(t, RequireActor(nil), ErrNotAuthenticated)
	r := Usuario
	require.NoError(t, RequireActor(&r))
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{NotAuthenticated, InsufficientRole, ForbiddenTarget} {
		assert.Equal(t, k, ParseKind(k.String()))
	}
	assert.Equal(t, Kind(0), ParseKind("nope"))
}
