// Package internal holds the values shared by the executables
// of this module.
package internal

// Version is the version of the command-line tools.
const Version = "0.1.0"
