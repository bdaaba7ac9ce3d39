package consts

// Alphabets for generated identifiers
const (
	Number        = "0123456789"
	Lowercase     = "abcdefghijklmnopqrstuvwxyz"
	Uppercase     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	NumLowerUpper = Number + Lowercase + Uppercase
)

const (
	PrimaryKey     = NumLowerUpper
	PrimaryKeySize = 16
)

// ExampleIDPrefix prefixes ids issued by the in-memory example store
const ExampleIDPrefix = "example-"
