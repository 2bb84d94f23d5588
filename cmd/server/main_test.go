package main

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Setup code here (runs once before all tests in this package)
	println("Setting up tests for main package...")

	exitCode := m.Run()

	println("Tearing down tests for main package...")

	os.Exit(exitCode)
}

func TestBasicSanity(t *testing.T) {
	// Smoke test to verify the main package compiles and runs basic logic
	if 1+1 != 2 {
		t.Error("Basic math failed")
	}
}
