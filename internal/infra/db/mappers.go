package db

import (
	"github.com/sitemint/sitemint-backend/internal/application/dto"
	"github.com/sitemint/sitemint-backend/internal/domain/consts"
)

// Mapping from payload inputs to rows. Required-but-absent fields get storage
// defaults here (contact email, areas, hero highlights, service price) so the
// repo never writes NULL into NOT NULL columns.

func MapOwnerInput(in dto.OwnerInput) Owner {
	return Owner{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}
}

func MapThemeInput(in dto.ThemeInput) Theme {
	return Theme{
		PrimaryColor:   in.PrimaryColor,
		SecondaryColor: in.SecondaryColor,
	}
}

func MapContactInput(in dto.ContactInput) Contact {
	email := ""
	if in.Email != nil {
		email = *in.Email
	}
	areas := in.Areas
	if areas == nil {
		areas = []string{}
	}
	return Contact{
		Address:      in.Address,
		City:         in.City,
		Phone:        in.Phone,
		Email:        email,
		WorkingHours: in.WorkingHours,
		Areas:        areas,
	}
}

func MapSocialMediaInput(in dto.SocialMediaInput) SocialMedia {
	return SocialMedia{
		Facebook:  in.Facebook,
		Instagram: in.Instagram,
		Linkedin:  in.Linkedin,
	}
}

func MapHeroInput(in dto.HeroInput) Hero {
	highlights := in.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	return Hero{
		MainTitle:    in.MainTitle,
		Subtitle:     in.Subtitle,
		Highlights:   highlights,
		CtaPrimary:   in.CtaPrimary,
		CtaSecondary: in.CtaSecondary,
	}
}

func MapServiceInput(in dto.ServiceInput) Service {
	price := consts.PriceNotAvailable
	if in.Price != nil && *in.Price != "" {
		price = *in.Price
	}
	return Service{
		Title:       in.Title,
		Description: in.Description,
		Price:       price,
	}
}
