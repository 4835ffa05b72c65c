package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/dmehra2102/prod-golang-projects/healthhub/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/roster"
)

func rosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Work with clinic roster files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Check a roster file against the registration rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ro, err := roster.Load(args[0])
			if err != nil {
				return err
			}

			problems := ro.Validate(time.Now())
			for _, p := range problems {
				fmt.Fprintln(cmd.OutOrStdout(), p.String())
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d problem(s) in %s", len(problems), args[0])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d doctor(s), %d patient(s)\n", len(ro.Doctors), len(ro.Patients))
			return nil
		},
	})

	return cmd
}

// preloadRoster registers every doctor and patient in the file. Any invalid entry
// aborts startup.
func preloadRoster(ctx context.Context, path string, svcs v1.Services, log *zap.Logger) error {
	ro, err := roster.Load(path)
	if err != nil {
		return err
	}
	if problems := ro.Validate(time.Now()); len(problems) > 0 {
		for _, p := range problems {
			log.Error("roster problem", zap.String("problem", p.String()))
		}
		return fmt.Errorf("roster %s: %s", path, problems[0])
	}

	for _, cmd := range ro.DoctorCommands() {
		if _, err := svcs.Doctors.RegisterDoctor(ctx, cmd); err != nil {
			return fmt.Errorf("roster doctor %s: %w", cmd.ID, err)
		}
	}
	for _, cmd := range ro.PatientCommands() {
		if _, err := svcs.Patients.RegisterPatient(ctx, cmd); err != nil {
			return fmt.Errorf("roster patient %s: %w", cmd.ID, err)
		}
	}

	log.Info("roster loaded",
		zap.String("file", path),
		zap.Int("doctors", len(ro.Doctors)),
		zap.Int("patients", len(ro.Patients)),
	)
	return nil
}
