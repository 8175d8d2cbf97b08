package run

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Command is one toolchain invocation. Immutable once constructed.
type Command struct {
	Label           string
	Dir             string
	Program         string
	Args            []string
	ToleratedErrors []string
}

// Outcome reports the terminated child's exit state. It exists only after the
// process has fully terminated.
type Outcome struct {
	ExitCode  int
	Tolerated bool
}

// CommandFailedError reports a non-zero exit with no tolerated match. The
// exit code and tolerance state stay observable for diagnostics.
type CommandFailedError struct {
	ExitCode int
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("command exited %d", e.ExitCode)
}

// Run spawns the command with stderr merged into stdout, forwards every
// output line to sink prefixed with the command label, and derives the final
// outcome once the child terminates. A tolerated substring seen on any line
// turns an otherwise failing exit status into success; the line is still
// forwarded to the sink.
func Run(cmd Command, sink io.Writer) (Outcome, error) {
	child := exec.Command(cmd.Program, cmd.Args...)
	child.Dir = cmd.Dir

	// A single shared pipe keeps stdout and stderr lines in the order the
	// child produced them.
	pipeR, pipeW, err := os.Pipe()
	if err != nil {
		return Outcome{}, fmt.Errorf("launching command: %w", err)
	}
	child.Stdout = pipeW
	child.Stderr = pipeW

	if err := child.Start(); err != nil {
		pipeR.Close()
		pipeW.Close()
		return Outcome{}, fmt.Errorf("launching command: %w", err)
	}
	// The child holds its own copy of the write end; the parent's copy must
	// close or the read loop never sees EOF.
	pipeW.Close()

	tolerated, streamErr := stream(pipeR, cmd.Label, cmd.ToleratedErrors, sink)
	pipeR.Close()

	waitErr := child.Wait()
	if streamErr != nil {
		return Outcome{}, fmt.Errorf("reading command output: %w", streamErr)
	}

	code := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return Outcome{}, fmt.Errorf("waiting on process: %w", waitErr)
		}
		code = exitErr.ExitCode()
		if code < 0 {
			// Signal-terminated or otherwise unobtainable status.
			code = 1
		}
	}

	outcome := Outcome{ExitCode: code, Tolerated: tolerated}
	log.Debug().
		Str("label", cmd.Label).
		Int("exit_code", code).
		Bool("tolerated", tolerated).
		Msg("command finished")

	if code == 0 || tolerated {
		return outcome, nil
	}
	return outcome, &CommandFailedError{ExitCode: code}
}

// stream copies r to sink line by line, prefixing each line with label, and
// reports whether any line contained one of the tolerated substrings. Matching
// never suppresses forwarding.
func stream(r io.Reader, label string, tolerated []string, sink io.Writer) (bool, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	seen := false
	for sc.Scan() {
		line := sc.Text()
		for _, s := range tolerated {
			if strings.Contains(line, s) {
				seen = true
			}
		}
		if _, err := fmt.Fprintf(sink, "%s: %s\n", label, line); err != nil {
			return seen, err
		}
	}
	return seen, sc.Err()
}
