package models

// Pokemon is a fully hydrated pokemon record: its scalar row plus the labels
// of every type it is associated with, in slot order.
type Pokemon struct {
	ID            int      `json:"id"`
	PokedexNumber *int     `json:"pokedex_number"`
	Name          string   `json:"name"`
	Sprite        string   `json:"sprite"`
	Types         []string `json:"types"`
}

// PokemonDraft carries the fields needed to create a pokemon.
type PokemonDraft struct {
	PokedexNumber *int     `json:"pokedex_number" validate:"omitempty,gt=0"`
	Name          string   `json:"name" validate:"required"`
	Sprite        string   `json:"sprite" validate:"required"`
	Types         []string `json:"types" validate:"required,min=1,dive,required"`
}

// PokemonPatch is a partial update. Nil fields keep their current value, and
// a nil Types leaves the type associations untouched. A non-nil but empty
// Types is rejected by the store.
type PokemonPatch struct {
	PokedexNumber *int     `json:"pokedex_number" validate:"omitempty,gt=0"`
	Name          *string  `json:"name" validate:"omitempty,min=1"`
	Sprite        *string  `json:"sprite" validate:"omitempty,min=1"`
	Types         []string `json:"types" validate:"omitempty,dive,required"`
}

type Type struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
