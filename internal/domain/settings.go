package domain

import (
	"strconv"
	"time"
)

// Setting is a single site configuration entry.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicSettings is the projection of site_settings exposed to the
// storefront. Only the keys listed in PublicSettingKeys are ever included;
// everything else stays admin-only.
type PublicSettings struct {
	LogoURL            string  `json:"logoUrl"`
	MapURL             string  `json:"mapUrl"`
	WhatsAppNumber     string  `json:"whatsappNumber"`
	Phone              string  `json:"phone"`
	Address            string  `json:"address"`
	Email              string  `json:"email"`
	InstagramURL       string  `json:"instagramUrl"`
	FacebookURL        string  `json:"facebookUrl"`
	HeroImageScale     float64 `json:"heroImageScale"`
	CatalogImageHeight float64 `json:"catalogImageHeight"`
}

// PublicSettingKeys lists the site_settings keys that feed PublicSettings.
var PublicSettingKeys = []string{
	"logo_url",
	"map_url",
	"whatsapp_number",
	"phone",
	"address",
	"email",
	"instagram_url",
	"facebook_url",
	"hero_image_scale",
	"catalog_image_height",
}

// DefaultPublicSettings returns the fallback values used when a key is
// missing or the settings store is unreachable.
func DefaultPublicSettings() PublicSettings {
	return PublicSettings{
		LogoURL:            "/images/logo.png",
		MapURL:             "",
		WhatsAppNumber:     "5491112345678",
		Phone:              "+54 9 11 1234-5678",
		Address:            "Av. Ejemplo 1234, Buenos Aires, Argentina",
		Email:              "info@multimarkmotos.com",
		InstagramURL:       "https://instagram.com",
		FacebookURL:        "https://facebook.com",
		HeroImageScale:     1.05,
		CatalogImageHeight: 192,
	}
}

// BuildPublicSettings overlays stored values on the defaults. Empty values
// fall back, and numeric settings that fail to parse keep their default.
func BuildPublicSettings(values map[string]string) PublicSettings {
	settings := DefaultPublicSettings()

	assign := func(key string, dst *string) {
		if v := values[key]; v != "" {
			*dst = v
		}
	}
	assignNumber := func(key string, dst *float64) {
		if v := values[key]; v != "" {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = parsed
			}
		}
	}

	assign("logo_url", &settings.LogoURL)
	assign("map_url", &settings.MapURL)
	assign("whatsapp_number", &settings.WhatsAppNumber)
	assign("phone", &settings.Phone)
	assign("address", &settings.Address)
	assign("email", &settings.Email)
	assign("instagram_url", &settings.InstagramURL)
	assign("facebook_url", &settings.FacebookURL)
	assignNumber("hero_image_scale", &settings.HeroImageScale)
	assignNumber("catalog_image_height", &settings.CatalogImageHeight)

	return settings
}
