//go:build tools
// +build tools

// Package tools pins go:generate tooling (mockgen) in go.mod.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
