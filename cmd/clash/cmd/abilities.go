package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cory-johannsen/clash/internal/game/combat"
)

type abilityView struct {
	Class        string   `json:"class"`
	Action       string   `json:"action"`
	Name         string   `json:"name"`
	Effects      []string `json:"effects"`
	Enhancements []string `json:"enhancements,omitempty"`
}

func newAbilitiesCmd() *cobra.Command {
	var (
		class  string
		format string
	)
	cmd := &cobra.Command{
		Use:   "abilities",
		Short: "List the ability catalog",
		Long: `List every ability and EX move in the catalog.

Examples:
  clash abilities
  clash abilities --class hacker
  clash abilities --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return fmt.Errorf("loading ability catalog: %w", err)
			}
			var filter combat.Class
			if class != "" {
				if filter, err = combat.ParseClass(class); err != nil {
					return err
				}
			}

			var views []abilityView
			for _, a := range catalog.All() {
				if filter != combat.ClassUnknown && a.Class != filter {
					continue
				}
				views = append(views, abilityView{
					Class:        a.Class.String(),
					Action:       a.Action.String(),
					Name:         a.Name,
					Effects:      describe(a.Effects),
					Enhancements: describe(a.Enhancements),
				})
			}
			for _, m := range catalog.EXMoves() {
				if filter != combat.ClassUnknown && m.Class != filter {
					continue
				}
				views = append(views, abilityView{
					Class:   m.Class.String(),
					Action:  "ex",
					Name:    m.Name,
					Effects: describe(m.Effects),
				})
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			case "table":
				title := cases.Title(language.English)
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "CLASS\tACTION\tNAME\tEFFECTS\tENHANCEMENTS")
				for _, v := range views {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						title.String(v.Class), title.String(v.Action), v.Name,
						strings.Join(v.Effects, "; "), strings.Join(v.Enhancements, "; "))
				}
				return tw.Flush()
			default:
				return fmt.Errorf("unknown format %q: must be table or json", format)
			}
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "show only this class")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")
	return cmd
}

// describe renders effects as "<target> <inflict> <magnitude>", for example
// "target damage 100" or "self prone 2d6".
func describe(specs []combat.EffectSpec) []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		magnitude := fmt.Sprint(s.Value)
		if s.Roll != nil {
			magnitude = s.Roll.String()
		}
		out = append(out, fmt.Sprintf("%s %s %s", s.Target, s.Inflict, magnitude))
	}
	return out
}
