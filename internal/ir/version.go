package ir

// Version constants for the object model.
const (
	// IRVersion is the frozen object model version.
	IRVersion = "1"

	// CompilerVersion is the widl front-end version.
	CompilerVersion = "0.1.0"
)
