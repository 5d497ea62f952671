// Package compat holds the physical and electrical compatibility rules for
// PC components: vendor string normalization, the chassis/motherboard size
// matrix, the socket matcher and the power budget checks.
//
// Every function in this package is pure and never returns an error.
// Missing or unrecognized data degrades to a documented default instead:
//   - unknown form factors compare by exact text only
//   - empty sockets never match
//   - unknown PSU capacity fails every requirement, unknown GPU draw passes
package compat
