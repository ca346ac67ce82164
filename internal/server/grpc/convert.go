package grpc

import (
	"github.com/dmitrijs2005/guialocal/internal/api"
	"github.com/dmitrijs2005/guialocal/internal/server/models"
	"github.com/dmitrijs2005/guialocal/internal/server/services"
)

func toAPIUser(i *models.Identity) api.User {
	if i == nil {
		return api.User{}
	}
	return api.User{ID: i.ID, Email: i.Email, Metadata: i.Metadata, CreatedAt: i.CreatedAt}
}

func toAPISession(r *services.AuthResult) api.Session {
	return api.Session{
		SessionID:    r.SessionID,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    r.ExpiresAt,
		User:         toAPIUser(r.Identity),
	}
}

func toAPIProfile(p *models.Profile) api.Profile {
	return api.Profile{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Phone:       p.Phone,
		AccountType: string(p.AccountType),
		CityID:      p.CityID,
		AvatarKey:   p.AvatarKey,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
