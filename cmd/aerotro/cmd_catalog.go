package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trokit/aerotro/internal/messages"
	"github.com/trokit/aerotro/internal/tro"
	"github.com/trokit/aerotro/pkg/core"
)

var catalogKind string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List known equipment types",
	Long: `Lists the embedded equipment catalog together with any types loaded from
--catalog. Unit files may also define their own types.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		types := application.registry.Types()
		if catalogKind != "" {
			kind := core.EquipmentKind(strings.ToLower(catalogKind))
			filtered := types[:0:0]
			for _, t := range types {
				if t.Kind == kind {
					filtered = append(filtered, t)
				}
			}
			types = filtered
		}
		writeCatalog(cmd.OutOrStdout(), types, application.messages)
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogKind, "kind", "", "only list one kind: weapon, ammo, bay or misc")
}

var catalogRow = tro.RowFormat{
	Widths: []int{24, 8, 8, 6, 18},
	Justs:  []tro.Justification{tro.Left, tro.Left, tro.Center, tro.Center, tro.Left},
}

func writeCatalog(w io.Writer, types []*core.EquipmentType, msgs *messages.Catalog) {
	fmt.Fprintln(w, catalogRow.Format("Name", "Kind", "Tons", "Heat", "AV (S/M/L/E)"))
	for _, t := range types {
		heat, av := "-", "-"
		if t.Kind == core.KindWeapon {
			heat = fmt.Sprint(t.Heat)
			av = fmt.Sprintf("%d/%d/%d/%d", t.ShortAV, t.MediumAV, t.LongAV, t.ExtremeAV)
			if t.Capital {
				av += " cap"
			}
		}
		if t.Kind == core.KindAmmo && t.Shots > 0 {
			av = fmt.Sprintf("%d shots", t.Shots)
		}
		fmt.Fprintln(w, catalogRow.Format(t.Name, string(t.Kind), msgs.Number(t.Tonnage), heat, av))
	}
}
