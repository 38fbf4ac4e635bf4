package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvConfig, EnvConfig, EnvVerbose, EnvVerbose, EnvLogFormat, EnvLogFormat)

	helloCmdPath := filepath.Join(tempDir, ExtensionPrefix+"hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write nova2k-hello source: %v", err)
	}
	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile nova2k-hello: %v", err)
	}

	binaryPath := filepath.Join(tempDir, "nova2k")
	cmd = exec.Command("go", "build", "-o", binaryPath, "../nova2k")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile nova2k binary: %v", err)
	}

	expectedConfig := filepath.Join(tempDir, "custom.yaml")
	args := []string{
		"-config", expectedConfig,
		"-log-format", "json",
		"-v",
		"hello", "a", "b",
	}
	run := exec.Command(binaryPath, args...)
	run.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}
	var stdout, stderr bytes.Buffer
	run.Stdout = &stdout
	run.Stderr = &stderr
	if err := run.Run(); err != nil {
		t.Fatalf("nova2k command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, want := range []string{
		EnvConfig + "=" + expectedConfig,
		EnvVerbose + "=true",
		EnvLogFormat + "=json",
		"args=[a b]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, output)
		}
	}
}

func TestRunExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("missing", nil); found || code != 0 {
		t.Errorf("RunExtension(missing) = %v, %d, want false, 0", found, code)
	}
}
