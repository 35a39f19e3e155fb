package config

// OutputConfig holds settings related to harness output formatting.
type OutputConfig struct {
	// Colour enables ANSI colour in harness output
	Colour bool

	// ShowBoard prints the board after every accepted move
	ShowBoard bool

	// Prompt prints a prompt before reading each line
	Prompt bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Colour:    true,
		ShowBoard: false,
		Prompt:    true,
	}
}
