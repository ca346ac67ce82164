package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/guialocal/internal/client/models"
	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/roles"
)

const listPageSize = 50

// actorAdmin returns the actor role when it may administer other accounts.
func (a *App) actorAdmin() (*roles.Role, error) {
	actor := a.manager.CurrentRole()
	if err := roles.RequireActor(actor); err != nil {
		return nil, err
	}
	if err := roles.AuthorizeAdmin(*actor); err != nil {
		return nil, err
	}
	return actor, nil
}

// Roles prints the account types the actor may assign.
func (a *App) Roles(ctx context.Context) error {
	actor := a.manager.CurrentRole()
	if err := roles.RequireActor(actor); err != nil {
		return a.fail(ctx, "roles", err)
	}

	available := roles.AvailableRoles(*actor).Sorted()
	if len(available) == 0 {
		fmt.Fprintln(a.out, "Sem permissão para atribuir tipos de conta.")
		return nil
	}
	for _, r := range available {
		fmt.Fprintln(a.out, r)
	}
	return nil
}

// Users lists profiles, optionally narrowed by account type and city:
//
//	users [tipo] [cidade]
func (a *App) Users(ctx context.Context, args []string) error {
	if _, err := a.actorAdmin(); err != nil {
		return a.fail(ctx, "users", err)
	}

	f := models.ProfileFilter{Limit: listPageSize}
	if len(args) > 0 && args[0] != "-" {
		r, err := roles.Parse(args[0])
		if err != nil {
			return a.fail(ctx, "users", err)
		}
		f.AccountType = r
	}
	if len(args) > 1 {
		f.CityID = args[1]
	}

	list, err := a.backend.ListProfiles(ctx, f)
	if err != nil {
		return a.fail(ctx, "users", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "Nenhum usuário encontrado.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tE-MAIL\tNOME\tTIPO\tCIDADE")
	for _, p := range list {
		city := "-"
		if p.CityID != nil {
			city = *p.CityID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.UserID, p.Email, p.DisplayName, p.AccountType, city)
	}
	return tw.Flush()
}

// SetRole changes the account type of another user:
//
//	setrole <id> <tipo>
func (a *App) SetRole(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Uso: setrole <id> <tipo>")
		return nil
	}

	target, err := roles.Parse(args[1])
	if err != nil {
		return a.fail(ctx, "setrole", err)
	}
	if err := roles.AuthorizeRoleChangeFor(a.manager.CurrentRole(), target); err != nil {
		return a.fail(ctx, "setrole", err)
	}

	p, err := a.backend.SetAccountType(ctx, args[0], target)
	if err != nil {
		return a.fail(ctx, "setrole", err)
	}
	fmt.Fprintf(a.out, "Tipo de conta de %s alterado para %s.\n", p.Email, p.AccountType)
	return nil
}

// CreateUser prompts for a new account created on behalf of someone else.
func (a *App) CreateUser(ctx context.Context) error {
	actor, err := a.actorAdmin()
	if err != nil {
		return a.fail(ctx, "createuser", err)
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

	name, err := getSimpleText(a.reader, "Nome", a.out)
	if err != nil {
		return err
	}
	role, err := a.readRole(roles.AvailableRoles(*actor).Sorted(), roles.Usuario)
	if err != nil {
		return a.fail(ctx, "createuser", err)
	}
	if err := roles.AuthorizeRoleChange(*actor, role); err != nil {
		return a.fail(ctx, "createuser", err)
	}

	phone, err := GetOptional(a.reader, "Telefone", a.out)
	if err != nil {
		return err
	}
	city, err := GetOptional(a.reader, "Cidade", a.out)
	if err != nil {
		return err
	}

	p, err := a.backend.CreateUser(ctx, models.NewUser{
		Email:       email,
		Password:    string(password),
		DisplayName: name,
		Phone:       phone,
		AccountType: role,
		CityID:      city,
	})
	if err != nil {
		return a.fail(ctx, "createuser", err)
	}
	fmt.Fprintf(a.out, "Usuário %s criado (%s).\n", p.Email, p.UserID)
	return nil
}

// DeleteUser removes another account after confirmation:
//
//	deluser <id>
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Uso: deluser <id>")
		return nil
	}

	actor, err := a.actorAdmin()
	if err != nil {
		return a.fail(ctx, "deluser", err)
	}

	target, err := a.backend.ReadProfile(ctx, args[0])
	if err != nil {
		return a.fail(ctx, "deluser", err)
	}
	if err := roles.AuthorizeDeleteFor(actor, target.AccountType); err != nil {
		return a.fail(ctx, "deluser", err)
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Remover %s? (s/N)", target.Email), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "s") {
		fmt.Fprintln(a.out, "Cancelado.")
		return nil
	}

	if err := a.backend.DeleteUser(ctx, target.UserID); err != nil {
		return a.fail(ctx, "deluser", err)
	}
	fmt.Fprintf(a.out, "Usuário %s removido.\n", target.Email)
	return nil
}
