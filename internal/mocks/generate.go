// Package mocks provides generated mock implementations for testing the
// captiond orchestration core.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the port interfaces defined in internal/core. To regenerate after
// interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mock for the JobRegistry port from internal/core.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=registry_mock.go github.com/opencaption/captiond/internal/core JobRegistry

// Generate mocks for the stage collaborator ports from internal/core.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=collaborators_mock.go github.com/opencaption/captiond/internal/core AudioExtractor,Transcriber,Refiner
