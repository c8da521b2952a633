package database

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	PokemonTableName      = "pokemon"
	TypesTableName        = "types"
	PokemonTypesTableName = "pokemon_types"
)

var (
	// PokemonColumns holds the columns for the "pokemon" table.
	PokemonColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "pokedex_number", Type: field.TypeInt, Nullable: true},
		{Name: "name", Type: field.TypeString},
		{Name: "sprite", Type: field.TypeString, Size: 2048},
	}
	// PokemonTable holds the schema information for the "pokemon" table.
	PokemonTable = &schema.Table{
		Name:       PokemonTableName,
		Columns:    PokemonColumns,
		PrimaryKey: []*schema.Column{PokemonColumns[0]},
	}
	// TypesColumns holds the columns for the "types" table.
	TypesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "type_name", Type: field.TypeString, Unique: true, Size: 64},
	}
	// TypesTable holds the schema information for the "types" table.
	TypesTable = &schema.Table{
		Name:       TypesTableName,
		Columns:    TypesColumns,
		PrimaryKey: []*schema.Column{TypesColumns[0]},
	}
	// PokemonTypesColumns holds the columns for the "pokemon_types" table.
	PokemonTypesColumns = []*schema.Column{
		{Name: "pokemon_id", Type: field.TypeInt},
		{Name: "type_id", Type: field.TypeInt},
		{Name: "slot", Type: field.TypeInt, Default: 0},
	}
	// PokemonTypesTable holds the schema information for the "pokemon_types" table.
	PokemonTypesTable = &schema.Table{
		Name:       PokemonTypesTableName,
		Columns:    PokemonTypesColumns,
		PrimaryKey: []*schema.Column{PokemonTypesColumns[0], PokemonTypesColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "pokemon_types_pokemon_id",
				Columns:    []*schema.Column{PokemonTypesColumns[0]},
				RefColumns: []*schema.Column{PokemonColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "pokemon_types_type_id",
				Columns:    []*schema.Column{PokemonTypesColumns[1]},
				RefColumns: []*schema.Column{TypesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		PokemonTable,
		TypesTable,
		PokemonTypesTable,
	}
)

func init() {
	PokemonTypesTable.ForeignKeys[0].RefTable = PokemonTable
	PokemonTypesTable.ForeignKeys[1].RefTable = TypesTable
}
