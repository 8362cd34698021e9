package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/dispatchkit/config"
)

func createRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes <config>",
		Short: "Print the config's route table and registered hooks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			defer w.Flush()

			if len(cfg.Routes) > 0 {
				fmt.Fprintf(w, "PATTERN\tHOOK\n")
				for _, r := range cfg.Routes {
					fmt.Fprintf(w, "%s\t%s\n", r.Pattern, r.Hook)
				}
				if cfg.Fallback != "" {
					fmt.Fprintf(w, "(fallback)\t%s\n", cfg.Fallback)
				}
				fmt.Fprintln(w)
			}

			if len(cfg.Hooks) > 0 || len(cfg.Scripts) > 0 {
				fmt.Fprintf(w, "HOOK\tPRIORITY\tGROUP\tSTATE\n")
				for _, h := range cfg.Hooks {
					state := "enabled"
					if h.Disabled {
						state = "disabled"
					}
					fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", h.Name, h.Priority, h.Group, state)
				}
				for _, s := range cfg.Scripts {
					fmt.Fprintf(w, "%s\t%d\t\tscript\n", s.Name, s.Priority)
				}
			}
			return nil
		},
	}
}
