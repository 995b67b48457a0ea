// Package internal holds session identifier generation shared by the goShield
// root package. Nothing here is part of the public API.
package internal
