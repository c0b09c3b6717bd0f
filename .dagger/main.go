// Billrag CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
// It is the main harness for handling nearly all dev operations.
package main

import (
	"context"

	"dagger/billrag/internal/dagger"
)

// Billrag is the main module for the billrag CI/CD pipeline
type Billrag struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Billrag CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp"]
	source *dagger.Directory,
) *Billrag {
	return &Billrag{
		Source: source,
	}
}

// goContainer returns a Go container with the module caches mounted and the
// project source mounted at /src.
//
// It is the shared foundation for tests and builds.
func (b *Billrag) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", b.Source)
}

// Test runs the billrag unit tests via "go test"
func (b *Billrag) Test(ctx context.Context) (string, error) {
	return b.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
