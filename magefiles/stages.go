//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runBinary executes the built CLI with args, streaming its output.
func runBinary(args ...string) error {
	bin := filepath.Join(binDir, binName)
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", binName, args, err)
	}
	return nil
}

// Extract converts raw_data/*.json into preprocessed_data/data.csv.
func Extract() error {
	mg.Deps(Build)
	return runBinary("extract")
}

// Publish loads preprocessed_data/data.csv as a dataset without pushing.
func Publish() error {
	mg.Deps(Build)
	return runBinary("publish", "--preview", "5")
}

// Pipeline runs extraction followed by publishing.
func Pipeline() error {
	mg.SerialDeps(Extract, Publish)
	return nil
}

// Test runs the Go test suite.
func Test() error {
	cmd := exec.Command("go", "test", "./...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
