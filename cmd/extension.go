package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Environment passed to extensions, with the values of the global flags.
const (
	EnvConfig    = "NOVA2K_CONFIG"
	EnvVerbose   = "NOVA2K_VERBOSE"
	EnvLogFormat = "NOVA2K_LOG_FORMAT"
	EnvLogFile   = "NOVA2K_LOG_FILE"
)

// ExtensionPrefix is the prefix of the executables run as extra subcommands.
const ExtensionPrefix = "nova2k-"

// RunExtension attempts to find and execute an external nova2k-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	lp, err := exec.LookPath(ExtensionPrefix + subcommand)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = append(os.Environ(),
		EnvConfig+"="+*configPath,
		EnvVerbose+"="+strconv.FormatBool(*verbose),
	)
	if *logFormat != "" {
		cmd.Env = append(cmd.Env, EnvLogFormat+"="+*logFormat)
	}
	if *logFile != "" {
		cmd.Env = append(cmd.Env, EnvLogFile+"="+*logFile)
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", lp, err)
		return true, 1
	}
	return true, 0
}
