package roles

import "errors"

// Kind classifies a denial so callers can tell them apart.
type Kind int

const (
	NotAuthenticated Kind = iota + 1
	InsufficientRole
	ForbiddenTarget
)

func (k Kind) String() string {
	switch k {
	case NotAuthenticated:
		return "not_authenticated"
	case InsufficientRole:
		return "insufficient_role"
	case ForbiddenTarget:
		return "forbidden_target"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String. Unknown names yield 0.
func ParseKind(s string) Kind {
	for _, k := range []Kind{NotAuthenticated, InsufficientRole, ForbiddenTarget} {
		if k.String() == s {
			return k
		}
	}
	return 0
}

// ErrUnknownRole is returned by Parse.
var ErrUnknownRole = errors.New("unknown role")

// Sentinels for errors.Is; every PermissionError matches the one of its Kind.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInsufficientRole = errors.New("insufficient role")
	ErrForbiddenTarget  = errors.New("forbidden target role")
)

// PermissionError is a denial carrying a message that can be shown to the user.
type PermissionError struct {
	Kind    Kind
	Message string
}

func (e *PermissionError) Error() string { return e.Message }

func (e *PermissionError) Is(target error) bool {
	switch target {
	case ErrNotAuthenticated:
		return e.Kind == NotAuthenticated
	case ErrInsufficientRole:
		return e.Kind == InsufficientRole
	case ErrForbiddenTarget:
		return e.Kind == ForbiddenTarget
	}
	return false
}

func deny(k Kind, msg string) *PermissionError {
	return &PermissionError{Kind: k, Message: msg}
}

const (
	msgNotAuthenticated   = "Usuário não autenticado."
	msgNoAssignRights     = "Você não tem permissão para alterar tipos de conta."
	msgCannotAssignRole   = "Você não tem permissão para atribuir o tipo de conta %q."
	msgCityAdminToGeneral = "Administradores de cidade não podem criar ou promover administradores gerais."
	msgNoDeleteRights     = "Apenas administradores podem excluir usuários."
	msgCannotDeleteAdmin  = "Apenas administradores gerais podem excluir outro administrador geral."
	msgAdminOnly          = "Apenas administradores podem gerenciar outros usuários."
	msgNotOwner           = "Você só pode alterar o seu próprio perfil."
	msgOtherCity          = "Administradores de cidade só podem gerenciar usuários da própria cidade."
)
