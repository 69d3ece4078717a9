// Package domain contains the core types and business rules of the catalog.
package domain

import (
	"regexp"
	"strings"
	"time"
)

// MotoTipo classifies a model within the catalog.
type MotoTipo string

const (
	TipoUrbana  MotoTipo = "urbana"
	TipoEnduro  MotoTipo = "enduro"
	TipoStreet  MotoTipo = "street"
	TipoScooter MotoTipo = "scooter"
)

// ValidTipo reports whether t is one of the known catalog types.
func ValidTipo(t MotoTipo) bool {
	switch t {
	case TipoUrbana, TipoEnduro, TipoStreet, TipoScooter:
		return true
	}
	return false
}

// MotoSpecs holds the technical sheet shown on the model card.
// JSON field names match the storefront client.
type MotoSpecs struct {
	Cilindrada      string `json:"cilindrada"`
	Motor           string `json:"motor"`
	Frenos          string `json:"frenos"`
	Arranque        string `json:"arranque"`
	CapacidadTanque string `json:"capacidadTanque"`
}

// Moto is a catalog entry.
type Moto struct {
	ID                 string    `json:"id"`
	Nombre             string    `json:"nombre"`
	Marca              string    `json:"marca"`
	Tipo               MotoTipo  `json:"tipo"`
	Imagen             string    `json:"imagen"`
	CloudinaryPublicID string    `json:"cloudinary_public_id,omitempty"`
	Specs              MotoSpecs `json:"specs"`
	Destacada          bool      `json:"destacada,omitempty"`
	ShowInHero         bool      `json:"show_in_hero,omitempty"`
	CreatedAt          time.Time `json:"-"`
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// DefaultID derives the canonical catalog ID for a moto:
// "<marca>-<nombre>" lowercased with runs of whitespace collapsed to dashes.
func (m *Moto) DefaultID() string {
	nombre := whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(m.Nombre)), "-")
	return strings.ToLower(strings.TrimSpace(m.Marca)) + "-" + nombre
}

// DuplicateKey identifies duplicate entries: two motos with the same marca
// and nombre (case-insensitive) are the same model.
func (m *Moto) DuplicateKey() string {
	return strings.ToLower(m.Marca + "-" + m.Nombre)
}

// Validate checks the fields required to persist a moto.
func (m *Moto) Validate() error {
	const op = "moto.validate"

	if strings.TrimSpace(m.Nombre) == "" {
		return Invalid(op, "Nombre is required")
	}
	if strings.TrimSpace(m.Marca) == "" {
		return Invalid(op, "Marca is required")
	}
	if !ValidTipo(m.Tipo) {
		return Invalid(op, "Tipo must be one of: urbana, enduro, street, scooter")
	}
	return nil
}

// Marca is a brand carried by the dealership.
type Marca struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Logo   string `json:"logo,omitempty"`
}

// Marcas is the fixed set of brands the storefront groups the catalog by.
var Marcas = []Marca{
	{ID: "honda", Nombre: "Honda"},
	{ID: "motomel", Nombre: "Motomel"},
	{ID: "zanella", Nombre: "Zanella"},
	{ID: "corven", Nombre: "Corven"},
	{ID: "keller", Nombre: "Keller"},
	{ID: "guerrero", Nombre: "Guerrero"},
}

// MarcaByID looks up a brand by its catalog ID.
func MarcaByID(id string) (Marca, bool) {
	for _, marca := range Marcas {
		if marca.ID == id {
			return marca, true
		}
	}
	return Marca{}, false
}
