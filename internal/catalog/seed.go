package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Seed is one initial catalog record.
type Seed struct {
	ID    int             `json:"id" validate:"gt=0"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
	Stock int             `json:"stock" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func ValidateSeeds(seeds []Seed) error {
	seen := make(map[int]struct{}, len(seeds))
	for i, s := range seeds {
		if err := validate.Struct(s); err != nil {
			return fmt.Errorf("seed[%d]: %w", i, err)
		}
		if s.Price.IsNegative() {
			return fmt.Errorf("seed[%d]: negative price %s", i, s.Price)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("seed[%d]: duplicate product id %d", i, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

func LoadSeedFile(path string) ([]Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seeds []Seed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return seeds, nil
}

func DefaultSeed() []Seed {
	return []Seed{
		{ID: 1, Name: "Balón de Fútbol Adidas", Price: decimal.RequireFromString("799.99"), Image: "/imagenes/images.jpeg", Stock: 5},
		{ID: 2, Name: "Camiseta Oficial FC Barcelona", Price: decimal.RequireFromString("1299.50"), Image: "/imagenes/barca.jpg", Stock: 8},
		{ID: 3, Name: "Guantes de Portero Nike", Price: decimal.RequireFromString("699.00"), Image: "/imagenes/guantes.jpg", Stock: 10},
		{ID: 4, Name: "Tachones Puma", Price: decimal.RequireFromString("1499.90"), Image: "/imagenes/tenis.jpg", Stock: 6},
		{ID: 5, Name: "Espinilleras Protectoras", Price: decimal.RequireFromString("299.00"), Image: "/imagenes/espinilleras.jpg", Stock: 20},
		{ID: 6, Name: "Mangas Termicas", Price: decimal.RequireFromString("200.00"), Image: "/imagenes/mangas.jpg", Stock: 15},
		{ID: 7, Name: "Termos", Price: decimal.RequireFromString("300.00"), Image: "/imagenes/termo.jpg", Stock: 12},
		{ID: 8, Name: "Mochila", Price: decimal.RequireFromString("350.00"), Image: "/imagenes/mochila.jpg", Stock: 9},
		{ID: 9, Name: "Bomba Para Inflar Balones", Price: decimal.RequireFromString("250.00"), Image: "/imagenes/bomba.jpg", Stock: 7},
		{ID: 10, Name: "Bandas Para Pelo", Price: decimal.RequireFromString("150.00"), Image: "/imagenes/banda.jpg", Stock: 25},
	}
}
