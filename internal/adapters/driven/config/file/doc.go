// Package file provides the TOML-backed configuration store.
//
// Keys are dot-separated ("compose.alpha") in memory and written back as
// nested TOML tables, so a hand-edited file and a saved one look alike.
package file
