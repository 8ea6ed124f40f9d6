// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mtreilly/arc-books/internal/config"
	"github.com/spf13/cobra"
)

// confirm decides a yes/no question. Explicit --yes/--no flags win, then
// the confirm policy from config; with policy "ask" the user is prompted.
func (a *app) confirm(cmd *cobra.Command, question string, yes, no bool) (bool, error) {
	switch {
	case yes:
		return true, nil
	case no:
		return false, nil
	}
	switch a.settings.Confirm {
	case config.ConfirmAlways:
		return true, nil
	case config.ConfirmNever:
		return false, nil
	}

	return ask(cmd, question)
}

// ask prompts on stdin. Anything but y/yes, including end of input, is no.
func ask(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s? [y/N]: ", capitalize(question))
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
