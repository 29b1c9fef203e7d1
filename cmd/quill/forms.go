package main

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// chooseModel shows a picker over models and returns the choice.
func chooseModel(ctx context.Context, models []string) (string, error) {
	var choice string

	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Select a model").
			Description("Only models that support generateContent are listed.").
			Options(huh.NewOptions(models...)...).
			Value(&choice),
	)).RunWithContext(ctx)
	if err != nil {
		return "", err
	}

	return choice, nil
}

// askAPIKey prompts for the API key without echoing it.
func askAPIKey(ctx context.Context) (string, error) {
	var key string

	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Gemini API key").
			Description("Create one at https://aistudio.google.com/apikey").
			EchoMode(huh.EchoModePassword).
			Validate(validateNonEmpty).
			Value(&key),
	)).RunWithContext(ctx)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(key), nil
}

// confirmReplace asks whether to write the rewrite into the file.
func confirmReplace(ctx context.Context, path string) (bool, error) {
	ok := true

	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Replace the selection in " + path + "?").
			Affirmative("Replace").
			Negative("Keep").
			Value(&ok),
	)).RunWithContext(ctx)
	if err != nil {
		return false, err
	}

	return ok, nil
}

func validateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}
