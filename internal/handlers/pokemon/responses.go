package pokemon

const (
	msgNotFound      = "Pokémon not found"
	msgInvalidID     = "ID must be a positive integer"
	msgMissingFields = "Missing required fields"
	msgInvalidFields = "Invalid request"
	msgInternal      = "An unexpected error occurred"
)
