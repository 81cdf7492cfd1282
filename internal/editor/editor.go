// Package editor prepares and runs the user's configured editor.
package editor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/veil-notes/veil/internal/config"
	"github.com/veil-notes/veil/internal/pathutil"
)

// Launch is an editor command ready to start, along with whether the caller
// should wait for the process to finish before resuming its UI.
type Launch struct {
	Cmd  *exec.Cmd
	Wait bool
}

// Editor builds launch commands for the configured editor.
type Editor struct {
	name      string
	extraArgs string
	vaultDir  string
}

// New returns an editor bound to the current configuration.
func New(cfg *config.Config) *Editor {
	return &Editor{
		name:      cfg.Editor,
		extraArgs: cfg.EditorArgs,
		vaultDir:  cfg.VaultDir,
	}
}

// LaunchForPath prepares an editor command for the provided path without
// starting it. Callers decide whether to run it synchronously based on the
// returned Wait flag.
func (e *Editor) LaunchForPath(path string) (*Launch, error) {
	cmd, err := e.command(path)
	if err != nil {
		return nil, err
	}
	return cmd.launch(), nil
}

// Open launches the editor for path and blocks until it exits when the
// editor runs in the terminal.
func (e *Editor) Open(path string) error {
	launch, err := e.LaunchForPath(path)
	if err != nil {
		return err
	}

	if launch.Wait {
		if launch.Cmd.Stdin == nil {
			launch.Cmd.Stdin = os.Stdin
		}
		if launch.Cmd.Stdout == nil {
			launch.Cmd.Stdout = os.Stdout
		}
		if launch.Cmd.Stderr == nil {
			launch.Cmd.Stderr = os.Stderr
		}
	}

	if err := launch.Cmd.Start(); err != nil {
		return fmt.Errorf("starting editor: %w", err)
	}

	if !launch.Wait {
		return nil
	}

	if err := launch.Cmd.Wait(); err != nil {
		return fmt.Errorf("waiting for editor: %w", err)
	}
	return nil
}

type editorCommand struct {
	command string
	args    []string
	wait    bool
	silence bool
}

func (c editorCommand) launch() *Launch {
	cmd := exec.Command(c.command, c.args...)
	if c.silence {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	}
	return &Launch{Cmd: cmd, Wait: c.wait}
}

func (e *Editor) command(path string) (*editorCommand, error) {
	switch e.name {
	case "nvim":
		return &editorCommand{command: "nvim", args: append(e.extra(), path), wait: true}, nil
	case "vim":
		return &editorCommand{command: "vim", args: append(e.extra(), path), wait: true}, nil
	case "nano":
		return &editorCommand{command: "nano", args: append(e.extra(), path), wait: true}, nil
	case "vscode", "code":
		return vscodeCommand(path)
	case "obsidian":
		return e.obsidianCommand(path)
	case "custom":
		return e.customCommand(path)
	case "":
		return nil, fmt.Errorf("editor not configured")
	default:
		return nil, fmt.Errorf("unsupported editor: %s", e.name)
	}
}

func (e *Editor) extra() []string {
	trimmed := strings.TrimSpace(e.extraArgs)
	if trimmed == "" {
		return nil
	}
	return strings.Fields(trimmed)
}

func vscodeCommand(path string) (*editorCommand, error) {
	switch runtime.GOOS {
	case "darwin":
		return &editorCommand{command: "open", args: []string{"-n", "-b", "com.microsoft.VSCode", "--args", path}, silence: true}, nil
	case "linux":
		return &editorCommand{command: "code", args: []string{path}, silence: true}, nil
	case "windows":
		return &editorCommand{command: "cmd", args: []string{"/c", "code", path}, silence: true}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func (e *Editor) obsidianCommand(path string) (*editorCommand, error) {
	vaultName := filepath.Base(pathutil.NormalizePath(e.vaultDir))

	relative, err := pathutil.VaultRelative(e.vaultDir, path)
	if err != nil {
		return nil, fmt.Errorf("unable to determine relative path for obsidian: %w", err)
	}

	uri := fmt.Sprintf("obsidian://open?vault=%s&file=%s", vaultName, relative)

	switch runtime.GOOS {
	case "darwin":
		return &editorCommand{command: "open", args: []string{uri}, silence: true}, nil
	case "linux":
		return &editorCommand{command: "xdg-open", args: []string{uri}, silence: true}, nil
	case "windows":
		return &editorCommand{command: "cmd", args: []string{"/c", "start", uri}, silence: true}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// customCommand treats editor_args as a command line with optional {file} and
// {vault} placeholders. The note path is appended when {file} is absent.
func (e *Editor) customCommand(path string) (*editorCommand, error) {
	raw := strings.TrimSpace(e.extraArgs)
	if raw == "" {
		return nil, fmt.Errorf("custom editor requires editor_args")
	}

	expanded := strings.ReplaceAll(raw, "{file}", path)
	expanded = strings.ReplaceAll(expanded, "{vault}", e.vaultDir)

	fields := strings.Fields(expanded)
	args := fields[1:]
	if !strings.Contains(raw, "{file}") {
		args = append(args, path)
	}

	return &editorCommand{command: fields[0], args: args, wait: true}, nil
}
