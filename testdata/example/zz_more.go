package example

// Version is declared in a second file and sorts after example.go.
const Version = "1.0"

// Pi keeps every digit it was declared with.
const Pi = 3.14159265358979

// Big overflows every integer type.
const Big = 1 << 100

// Ping is declared last.
func Ping() {}
