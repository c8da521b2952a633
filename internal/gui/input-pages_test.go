package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionStringRoundTrip(t *testing.T) {
	tests := []struct {
		dbType string
		values []string
	}{
		{dbType: "postgres", values: []string{"ash", "p@ss/word", "db.example", "5432", "pokedex"}},
		{dbType: "mysql", values: []string{"misty", "s3cret", "10.0.0.2", "3306", "pokedex"}},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			dsn := buildConnectionString(tt.dbType, tt.values)
			assert.Equal(t, tt.values, connectionFields(tt.dbType, dsn))
		})
	}
}

func TestBuildConnectionStringSQLite(t *testing.T) {
	dsn := buildConnectionString("sqlite", []string{"pokedex.db"})
	assert.Equal(t, "file:pokedex.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dsn)
}

func TestConnectionFieldsUnparsable(t *testing.T) {
	assert.Equal(t, make([]string, 5), connectionFields("mysql", "definitely not a dsn"))
	assert.Equal(t, make([]string, 5), connectionFields("postgres", ""))
}

func TestRedactedConnection(t *testing.T) {
	dsn := buildConnectionString("postgres", []string{"ash", "pikachu", "localhost", "5432", "pokedex"})
	out := redactedConnection("postgres", dsn)

	assert.NotContains(t, out, "pikachu")
	assert.Contains(t, out, "*******")
	assert.Contains(t, out, "Host: localhost, Port: 5432")
}
