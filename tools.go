//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Mocks in *_mock_test.go follow github.com/matryer/moq output and are
// regenerated by hand when a consumer interface changes.
import (
	_ "github.com/pressly/goose/v3/cmd/goose"
)
