// Package subpkg is nested below example.
package subpkg

// Message exposes a sample constant.
const Message = "nested"
