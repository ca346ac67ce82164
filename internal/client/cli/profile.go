package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/guialocal/internal/filex"
	"github.com/dmitrijs2005/guialocal/internal/roles"
)

// EditProfile updates the display name, phone and city of the signed-in user.
// An empty name keeps the current one.
func (a *App) EditProfile(ctx context.Context) error {
	cur := a.manager.CurrentProfile()
	if cur == nil {
		return a.fail(ctx, "profile", roles.RequireActor(nil))
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Nome [%s]", cur.DisplayName), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = cur.DisplayName
	}

	phone, err := GetOptional(a.reader, "Telefone", a.out)
	if err != nil {
		return err
	}
	if phone == nil {
		phone = cur.Phone
	}
	city, err := GetOptional(a.reader, "Cidade", a.out)
	if err != nil {
		return err
	}
	if city == nil {
		city = cur.CityID
	}

	p, err := a.backend.UpdateOwnProfile(ctx, name, phone, city)
	if err != nil {
		return a.fail(ctx, "profile", err)
	}
	a.manager.SetProfile(p)
	fmt.Fprintln(a.out, "Perfil atualizado.")
	return nil
}

// Avatar uploads a local image as the user's avatar:
//
//	avatar <arquivo>
func (a *App) Avatar(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Uso: avatar <arquivo>")
		return nil
	}
	if a.manager.CurrentProfile() == nil {
		return a.fail(ctx, "avatar", roles.RequireActor(nil))
	}

	data, contentType, err := filex.ReadImage(args[0])
	if err != nil {
		return a.fail(ctx, "avatar", err)
	}

	url, key, err := a.backend.PresignAvatarUpload(ctx, contentType)
	if err != nil {
		return a.fail(ctx, "avatar", err)
	}
	if err := a.backend.UploadAvatar(ctx, url, contentType, data); err != nil {
		return a.fail(ctx, "avatar", err)
	}

	if p := a.manager.CurrentProfile(); p != nil {
		p.AvatarKey = &key
		a.manager.SetProfile(p)
	}
	fmt.Fprintln(a.out, "Avatar atualizado.")
	return nil
}
