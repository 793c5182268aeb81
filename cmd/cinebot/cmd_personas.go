package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mantonx/cinebot/internal/config"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/core/persona"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

var personasFlags struct {
	format  string
	context string
	write   string
}

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the persona catalog",
	Long: `Lists the personas of the configured catalog source. --write saves the
catalog as YAML, ready to be used as a file catalog source.`,
	RunE: runPersonas,
}

func init() {
	f := personasCmd.Flags()
	f.StringVarP(&personasFlags.format, "format", "f", "table", "Output format: table, yaml or json")
	f.StringVar(&personasFlags.context, "context", "", "Only personas tagged with this context")
	f.StringVarP(&personasFlags.write, "write", "w", "", "Write the catalog to this YAML file")
}

func runPersonas(cmd *cobra.Command, _ []string) error {
	svc, cleanup, err := newService(cmd.Context(), config.Get())
	if err != nil {
		return err
	}
	defer cleanup()

	records := svc.Personas()
	if personasFlags.write != "" {
		if err := persona.WriteFile(personasFlags.write, records); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d personas to %s\n", len(records), personasFlags.write)
		return nil
	}

	if personasFlags.context != "" {
		filtered := make([]types.PersonaRecord, 0, len(records))
		for _, p := range records {
			if p.HasContext(types.Context(personasFlags.context)) {
				filtered = append(filtered, p)
			}
		}
		records = filtered
	}

	out := cmd.OutOrStdout()
	switch personasFlags.format {
	case "yaml":
		data, err := persona.MarshalYAML(records)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "table":
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCONTEXTS\tEMOTIONS")
		for _, p := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.DisplayName, joinTags(p.Contexts), joinTags(p.Emotions))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q", personasFlags.format)
	}
}

func joinTags[T ~string](tags []T) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}
