package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/client/profile"
	"github.com/dmitrijs2005/guialocal/internal/client/session"
	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/roles"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const pingTimeout = 3 * time.Second

// readRole asks for an account type among choices; an empty answer picks def.
func (a *App) readRole(choices []roles.Role, def roles.Role) (roles.Role, error) {
	names := make([]string, len(choices))
	for i, r := range choices {
		names[i] = r.String()
	}
	prompt := fmt.Sprintf("Tipo de conta (%s) [%s]", strings.Join(names, ", "), def)

	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return roles.Parse(s)
}

// Register prompts for the sign-up form and creates the account. Only
// self-assignable account types are offered.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "E-mail", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Nome", a.out)
	if err != nil {
		return err
	}

	role, err := a.readRole([]roles.Role{roles.Usuario, roles.CriadorEmpresa, roles.Empresa}, roles.Usuario)
	if err != nil {
		return a.fail(ctx, "register", err)
	}

	phone, err := GetOptional(a.reader, "Telefone", a.out)
	if err != nil {
		return err
	}
	city, err := GetOptional(a.reader, "Cidade", a.out)
	if err != nil {
		return err
	}

	extra := &profile.Extra{DisplayName: name, Phone: phone, CityID: city}
	if err := a.manager.SignUp(ctx, email, string(password), name, role, extra); err != nil {
		return a.fail(ctx, "register", err)
	}

	fmt.Fprintln(a.out, "Conta criada. Confirme seu e-mail e faça login.")
	return nil
}

// Login prompts for credentials and signs in. A fresh session starts at the
// root, so the post-login route applies.
func (a *App) Login(ctx context.Context) error {
	if u := a.manager.CurrentUser(); u != nil {
		fmt.Fprintln(a.out, "Você já está conectado como", u.Email)
		return nil
	}

	email, err := getSimpleText(a.reader, "E-mail", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.setPath(session.RootPath)
	if err := a.manager.SignIn(ctx, email, string(password)); err != nil {
		return a.fail(ctx, "login", err)
	}

	fmt.Fprintln(a.out, "Sessão iniciada como", email)
	if a.manager.CurrentProfile() == nil {
		fmt.Fprintln(a.out, "Perfil indisponível; algumas funções estão desativadas.")
	}
	return nil
}

// Logout ends the session on the backend and locally.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Nenhuma sessão ativa.")
		return nil
	}
	if err := a.manager.SignOut(ctx); err != nil {
		return a.fail(ctx, "logout", err)
	}
	a.setPath(session.RootPath)
	fmt.Fprintln(a.out, "Sessão encerrada.")
	return nil
}

// Whoami prints the signed-in identity and its profile.
func (a *App) Whoami(ctx context.Context) error {
	u := a.manager.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Nenhuma sessão ativa.")
		return nil
	}

	fmt.Fprintf(a.out, "ID:      %s\n", u.ID)
	fmt.Fprintf(a.out, "E-mail:  %s\n", u.Email)

	p := a.manager.CurrentProfile()
	if p == nil {
		fmt.Fprintln(a.out, "Perfil:  indisponível")
		return nil
	}
	fmt.Fprintf(a.out, "Nome:    %s\n", p.DisplayName)
	fmt.Fprintf(a.out, "Tipo:    %s\n", p.AccountType)
	if p.Phone != nil {
		fmt.Fprintf(a.out, "Telefone: %s\n", *p.Phone)
	}
	if p.CityID != nil {
		fmt.Fprintf(a.out, "Cidade:  %s\n", *p.CityID)
	}
	if p.AvatarKey != nil {
		fmt.Fprintf(a.out, "Avatar:  %s\n", *p.AvatarKey)
	}
	return nil
}

// Status prints server reachability and the state of the session.
func (a *App) Status(ctx context.Context) error {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.backend.Ping(pctx)
	cancel()
	if err != nil {
		a.logger.Debug(ctx, "ping failed", "error", err)
		fmt.Fprintln(a.out, "Servidor: offline")
	} else {
		fmt.Fprintln(a.out, "Servidor: online")
	}

	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Sessão:   nenhuma")
		return nil
	}

	state := "válida"
	if !a.manager.IsValid() {
		state = "inválida"
	}
	fmt.Fprintf(a.out, "Sessão:   %s\n", state)
	fmt.Fprintf(a.out, "Atividade: %s\n", a.manager.LastActivity().Format(time.RFC3339))
	return nil
}
