package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/idlab-discover/berryroc/internal/apperr"
)

// ParseThreshold parses a threshold typed by the user. Only values in [0,1]
// are accepted.
func ParseThreshold(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperr.User("threshold is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperr.Userf("threshold %q is not a number", s)
	}
	if v < 0 || v > 1 {
		return 0, apperr.Userf("threshold %v outside [0,1]", v)
	}
	return v, nil
}

// PromptThreshold asks for a discrimination threshold, starting from initial.
// Aborting the form returns apperr.ErrCancelled.
func PromptThreshold(dataset string, initial float64) (float64, error) {
	value := strconv.FormatFloat(initial, 'f', 2, 64)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Discrimination Threshold").
				Description(fmt.Sprintf("Berries in %s scoring at or above the threshold\nare predicted raspberries.", dataset)),
			huh.NewInput().
				Title("Threshold (0-1)").
				Value(&value).
				Validate(func(s string) error {
					_, err := ParseThreshold(s)
					return err
				}),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return 0, apperr.ErrCancelled
		}
		return 0, err
	}
	return ParseThreshold(value)
}
