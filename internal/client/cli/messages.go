package cli

import (
	"errors"

	"github.com/dmitrijs2005/guialocal/internal/client/client"
	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/filex"
	"github.com/dmitrijs2005/guialocal/internal/roles"
)

const (
	msgAlreadyExists = "Já existe uma conta com este e-mail."
	msgNotFound      = "Registro não encontrado."
	msgInvalidInput  = "Dados inválidos."
	msgUnavailable   = "Servidor indisponível. Tente novamente mais tarde."
	msgNotImage      = "O arquivo não é uma imagem."
	msgFileTooLarge  = "A imagem excede 5 MB."
	msgUnknownRole   = "Tipo de conta desconhecido."
)

// userMessage turns err into the text shown to the user. Internal details
// never leak; they only reach the debug log.
func userMessage(err error) string {
	if pe, ok := roles.AsPermissionError(err); ok {
		return pe.Message
	}

	switch {
	case errors.Is(err, common.ErrRateLimited):
		return common.MsgRateLimited
	case errors.Is(err, common.ErrPasswordTooShort):
		return common.MsgPasswordTooShort
	case errors.Is(err, common.ErrorUnauthorized):
		return common.MsgInvalidCredential
	case errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired),
		errors.Is(err, common.ErrSessionRevoked),
		errors.Is(err, common.ErrInvalidToken):
		return common.MsgSessionExpired
	case errors.Is(err, common.ErrorAlreadyExists):
		return msgAlreadyExists
	case errors.Is(err, common.ErrorNotFound):
		return msgNotFound
	case errors.Is(err, roles.ErrUnknownRole):
		return msgUnknownRole
	case errors.Is(err, common.ErrorValidation):
		return msgInvalidInput
	case errors.Is(err, client.ErrUnavailable):
		return msgUnavailable
	case errors.Is(err, filex.ErrNotImage):
		return msgNotImage
	case errors.Is(err, filex.ErrFileTooLarge):
		return msgFileTooLarge
	}
	return common.MsgUnexpected
}
