package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ojsef39/opsops/internal/sopsconfig"
)

var listConfigOutput string

var listConfigCmd = &cobra.Command{
	Use:   "list-config",
	Short: "Parse and display the .sops.yaml for this project",
	Long:  `Shows the assigned 1Password item and every creation rule of the project's .sops.yaml.`,
	Args:  cobra.NoArgs,
	RunE:  runListConfig,
}

func init() {
	listConfigCmd.Flags().StringVarP(&listConfigOutput, "output", "o", "table", "Output format (table, json, yaml)")

	rootCmd.AddCommand(listConfigCmd)
}

func runListConfig(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	cfg, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("no usable SOPS configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	switch listConfigOutput {
	case "json":
		return printConfigJSON(out, cfg)
	case "yaml":
		data, err := sopsconfig.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "table":
		printConfigTable(out, cfg)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", listConfigOutput)
	}
}

func printConfigTable(w io.Writer, cfg *sopsconfig.Config) {
	item := cfg.OnePasswordItem
	if item == "" {
		item = "<none>"
	}
	fmt.Fprintln(w, labelStyle.Render("Assigned 1Password item:")+" "+successStyle.Render(item))

	if len(cfg.CreationRules) == 0 {
		fmt.Fprintln(w, labelStyle.Render("Rules:")+" none")
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "FILE PATTERN", "AGE KEYS"})
	for i, rule := range cfg.CreationRules {
		pattern := rule.PathRegex
		if pattern == "" {
			pattern = "-"
		}
		keys := rule.Keys()
		keyCell := "-"
		if len(keys) > 0 {
			keyCell = strings.Join(keys, "\n")
		}
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), pattern, keyCell})
	}
	fmt.Fprintln(w, tw.Render())
	fmt.Fprintln(w, mutedStyle.Render("This configuration will be used when encrypting files with SOPS."))
}

type ruleView struct {
	PathRegex string     `json:"path_regex,omitempty"`
	Age       string     `json:"age,omitempty"`
	KeyGroups [][]string `json:"key_groups,omitempty"`
}

type configView struct {
	OnePasswordItem string     `json:"onepassworditem"`
	CreationRules   []ruleView `json:"creation_rules"`
}

func printConfigJSON(w io.Writer, cfg *sopsconfig.Config) error {
	view := configView{OnePasswordItem: cfg.OnePasswordItem, CreationRules: []ruleView{}}
	for _, rule := range cfg.CreationRules {
		rv := ruleView{PathRegex: rule.PathRegex, Age: rule.Age}
		for _, g := range rule.KeyGroups {
			rv.KeyGroups = append(rv.KeyGroups, g.Age)
		}
		view.CreationRules = append(view.CreationRules, rv)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
