package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoto_DefaultID(t *testing.T) {
	tests := []struct {
		name   string
		marca  string
		nombre string
		want   string
	}{
		{"simple", "Honda", "Wave", "honda-wave"},
		{"multi word", "Honda", "Wave 110 S", "honda-wave-110-s"},
		{"extra whitespace", " Zanella ", "  ZB   110 ", "zanella-zb-110"},
		{"already lowercase", "corven", "energy", "corven-energy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Moto{Marca: tt.marca, Nombre: tt.nombre}
			assert.Equal(t, tt.want, m.DefaultID())
		})
	}
}

func TestMoto_DuplicateKey(t *testing.T) {
	a := &Moto{Marca: "Honda", Nombre: "Wave 110"}
	b := &Moto{Marca: "HONDA", Nombre: "wave 110"}

	assert.Equal(t, a.DuplicateKey(), b.DuplicateKey())
}

func TestMoto_Validate(t *testing.T) {
	valid := Moto{Nombre: "Wave", Marca: "Honda", Tipo: TipoUrbana}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Moto)
	}{
		{"empty nombre", func(m *Moto) { m.Nombre = "  " }},
		{"empty marca", func(m *Moto) { m.Marca = "" }},
		{"unknown tipo", func(m *Moto) { m.Tipo = "chopper" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)

			err := m.Validate()
			assert.Equal(t, EINVALID, ErrorCode(err))
		})
	}
}

func TestMarcaByID(t *testing.T) {
	marca, ok := MarcaByID("honda")
	assert.True(t, ok)
	assert.Equal(t, "Honda", marca.Nombre)

	_, ok = MarcaByID("yamaha")
	assert.False(t, ok)
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+54 9 11 1234-5678", "Wave 110", "Honda")

	assert.Contains(t, link, "https://wa.me/5491112345678?text=")
	assert.Contains(t, link, "Honda")
	assert.NotContains(t, link, " ")
}

func TestBuildPublicSettings(t *testing.T) {
	settings := BuildPublicSettings(map[string]string{
		"logo_url":             "/uploads/logo.png",
		"hero_image_scale":     "1.5",
		"catalog_image_height": "not-a-number",
	})

	assert.Equal(t, "/uploads/logo.png", settings.LogoURL)
	assert.Equal(t, 1.5, settings.HeroImageScale)
	// Unparseable numbers keep the default.
	assert.Equal(t, DefaultPublicSettings().CatalogImageHeight, settings.CatalogImageHeight)
	// Unset keys keep defaults.
	assert.Equal(t, DefaultPublicSettings().WhatsAppNumber, settings.WhatsAppNumber)
}
