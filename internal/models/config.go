package models

import "time"

type Config struct {
	Database DatabaseConfig `json:"database"`
	HTTP     HTTPConfig     `json:"http"`
	Misc     MiscConfig     `json:"misc"`
}

type DatabaseConfig struct {
	DBType           string `json:"db_type" validate:"required,oneof=sqlite postgres mysql"`
	ConnectionString string `json:"connection_string" validate:"required"`
}

type HTTPConfig struct {
	Port          int    `json:"port" validate:"required,min=1,max=65535"`
	ListeningAddr string `json:"listening_addr" validate:"required"`

	// Runtime only, always taken from flags/env.
	RequestTimeout time.Duration `json:"-"`
	RateLimit      int           `json:"-" validate:"min=0"`
	CORSOrigins    []string      `json:"-"`
}

type MiscConfig struct {
	SeedStarters bool   `json:"seed_starters"`
	ImportFile   string `json:"-"`
}
