package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tripcal/internal/locale"
)

func newLocalesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locales [query]",
		Short: "List supported display locales, fuzzy-filtered by query",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := o.cfg.LocaleValue().String()
			out := cmd.OutOrStdout()
			for _, l := range locale.Search(strings.Join(args, " ")) {
				mark := " "
				if l.String() == current {
					mark = "*"
				}
				if _, err := fmt.Fprintf(out, "%s %-6s %s (%s)\n", mark, l.String(), l.Name(), l.SelfName()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
