//go:build ignore

// build.go - gradecli build script
// Usage: go run build.go [-target=TARGET] [-v]
// Targets: all, gradereport, gradeview, test, clean

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	module  = "gradecli"
	distDir = "dist"
)

var commands = []string{"gradereport", "gradeview"}

func main() {
	target := flag.String("target", "all", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	start := time.Now()

	switch *target {
	case "all":
		for _, name := range commands {
			buildCommand(name, *verbose)
		}
	case "gradereport", "gradeview":
		buildCommand(*target, *verbose)
	case "test":
		runGo(*verbose, "test", "./...")
	case "clean":
		if err := os.RemoveAll(distDir); err != nil {
			printError(fmt.Sprintf("Failed to clean %s: %v", distDir, err))
			os.Exit(1)
		}
		printInfo("Removed " + distDir)
	default:
		showHelp()
		os.Exit(1)
	}

	printSuccess(fmt.Sprintf("Build completed in %s", time.Since(start).Round(time.Millisecond)))
}

func buildCommand(name string, verbose bool) {
	printInfo(fmt.Sprintf("Building %s...", name))

	exeName := name
	if runtime.GOOS == "windows" {
		exeName += ".exe"
	}
	outputPath := filepath.Join(distDir, exeName)

	ldflags := fmt.Sprintf("-s -w -X %[1]s/pkg/contracts.BuildTime=%[2]s -X %[1]s/pkg/contracts.GitCommit=%[3]s",
		module, time.Now().UTC().Format(time.RFC3339), gitCommit())

	runGo(verbose, "build", "-ldflags", ldflags, "-o", outputPath, "./cmd/"+name)

	if info, err := os.Stat(outputPath); err == nil {
		printSuccess(fmt.Sprintf("Built %s (%.1f MB)", outputPath, float64(info.Size())/1024/1024))
	}
}

func runGo(verbose bool, args ...string) {
	if verbose {
		args = append([]string{args[0], "-v"}, args[1:]...)
		fmt.Printf("Running: go %s\n", strings.Join(args, " "))
	}

	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		printError(fmt.Sprintf("go %s failed: %v", args[0], err))
		os.Exit(1)
	}
}

func gitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

func printInfo(msg string)    { fmt.Printf("[INFO] %s\n", msg) }
func printSuccess(msg string) { fmt.Printf("[OK] %s\n", msg) }
func printError(msg string)   { fmt.Fprintf(os.Stderr, "[ERROR] %s\n", msg) }

func showHelp() {
	fmt.Println("Usage: go run build.go -target=TARGET [-v]")
	fmt.Println("Targets:")
	fmt.Println("  all          build gradereport and gradeview into dist/")
	fmt.Println("  gradereport  build the report CLI")
	fmt.Println("  gradeview    build the HTTP viewer")
	fmt.Println("  test         run all tests")
	fmt.Println("  clean        remove dist/")
}
