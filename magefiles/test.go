//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	coverProfile = "coverage.out"
	catalogPkg   = "./internal/catalog/..."

	// propertyChecks is the rapid case count for test:properties.
	propertyChecks = "2000"
)

// Test groups test targets.
type Test mg.Namespace

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every test with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Properties runs the catalog property tests with a larger case count.
func (Test) Properties() error {
	return sh.RunV(binGo, "test", "-run", "Property", catalogPkg, "-args", "-rapid.checks="+propertyChecks)
}

// Cover writes a coverage profile and prints per-function coverage.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}
