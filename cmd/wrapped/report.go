package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/omarshaarawi/hoopswrapped/internal/analytics"
	"github.com/omarshaarawi/hoopswrapped/internal/service"
)

func reportCmd() *cobra.Command {
	var (
		owner  string
		team   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print one team's season wrap-up",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			report, err := a.wrapped.OwnerReport(cmd.Context(), owner, team)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report, format)
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner SWID (defaults to OWNER_ID, then SWID)")
	cmd.Flags().StringVar(&team, "team", "", "team name, looked up fuzzily; overrides --owner")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}

func validateFormat(format string) error {
	switch strings.ToLower(format) {
	case "text", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unsupported format %q: want text, json or yaml", format)
}

func writeReport(w io.Writer, report analytics.Report, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		_, err := io.WriteString(w, service.FormatReport(report))
		return err
	}
	return validateFormat(format)
}
