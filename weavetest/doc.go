// Package weavetest provides mocks and helpers for testing application
// extensions. Implementations in this package provide controllable unit
// replacements for the core interfaces.
package weavetest
