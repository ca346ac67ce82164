package client

import (
	"github.com/dmitrijs2005/guialocal/internal/api"
	"github.com/dmitrijs2005/guialocal/internal/client/models"
	"github.com/dmitrijs2005/guialocal/internal/roles"
)

func toUser(u api.User) models.User {
	return models.User{ID: u.ID, Email: u.Email, Metadata: u.Metadata, CreatedAt: u.CreatedAt}
}

func toSession(s api.Session) models.Session {
	return models.Session{
		ID:           s.SessionID,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
		User:         toUser(s.User),
	}
}

func toProfile(p api.Profile) *models.Profile {
	return &models.Profile{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Phone:       p.Phone,
		AccountType: roles.Role(p.AccountType),
		CityID:      p.CityID,
		AvatarKey:   p.AvatarKey,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func fromProfile(p *models.Profile) api.Profile {
	return api.Profile{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Phone:       p.Phone,
		AccountType: p.AccountType.String(),
		CityID:      p.CityID,
	}
}
