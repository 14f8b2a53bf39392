package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Dezmoral/Askar/internal/db"
	"github.com/Dezmoral/Askar/internal/i18n"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// emit prints a successful result. Fields are merged next to "ok": true.
func emit(fields map[string]any) error {
	out := map[string]any{"ok": true}
	for k, v := range fields {
		out[k] = v
	}
	return writeJSON(out)
}

// fail prints the failure as {"ok": false, "message": ...}. Store failures
// that are not user errors are logged as well.
func fail(err error) error {
	if !errors.Is(err, db.ErrValidation) && !errors.Is(err, db.ErrConflict) &&
		!errors.Is(err, db.ErrAuthentication) && !errors.Is(err, db.ErrNotFound) {
		logger.Error("operation failed", zap.Error(err))
	}
	if werr := writeJSON(db.ResultOf(err)); werr != nil {
		return werr
	}
	return errReported
}

func writeJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// optionalID maps 0 to "no folder".
func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// promptPassword reads a password without echo when stdin is a terminal,
// and a plain line otherwise. Surrounding spaces are part of the password.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, i18n.T().PasswordPrompt)

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("%s: %w", i18n.T().Error, err)
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("%s: %w", i18n.T().Error, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
