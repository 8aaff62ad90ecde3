package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hazyhaar/ementa/pkg/speech"
	"github.com/spf13/cobra"
)

func (a *app) speakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "speak <dish-id>",
		Short: "Read a dish name aloud",
		Long: `Read a dish name aloud with the configured text-to-speech program
(speech.command, default "say" on macOS and "espeak-ng" elsewhere).
A missing or failing synthesizer is logged and does not fail the command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			c, err := reg.Catalog(a.catalog)
			if err != nil {
				return err
			}
			d, err := c.Dish(args[0])
			if err != nil {
				return err
			}

			sp := speech.CommandSpeaker{Command: a.cfg.Speech.Command, Voice: a.cfg.Speech.Voice, Rate: a.cfg.Speech.Rate}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			if err := sp.Speak(ctx, d.Name); err != nil {
				a.logger.Warn("speech failed", "dish", d.ID, "error", err)
				return nil
			}
			fmt.Fprintln(a.out, d.Name)
			return nil
		},
	}
}
