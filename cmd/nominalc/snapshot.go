package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nominalc/internal/core"
	"nominalc/internal/diag"
	"nominalc/internal/scenario"
)

var snapshotOutPath string

func init() {
	snapshotDumpCmd.Flags().StringVar(&snapshotOutPath, "out", "", "write the msgpack snapshot to this file instead of stdout")
	snapshotCmd.AddCommand(snapshotDumpCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Dump or inspect a Pipeline symbol snapshot",
}

var snapshotDumpCmd = &cobra.Command{
	Use:   "dump <scenario>",
	Short: "Attribute a scenario and msgpack-encode its symbol snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		p := core.New(core.WithReporter(diag.NewBag(256)), core.WithConfig(cfg))
		unit, _, err := scenario.Build(args[0], p.Names)
		if err != nil {
			return err
		}
		p.Attribute(unit)
		p.Analyze(unit)

		w := cmd.OutOrStdout()
		if snapshotOutPath != "" {
			f, err := os.Create(snapshotOutPath)
			if err != nil {
				return fmt.Errorf("snapshot: failed to create %s: %w", snapshotOutPath, err)
			}
			defer f.Close()
			w = f
		}
		return p.DumpSnapshot(w)
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Decode a dumped snapshot and list its entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("snapshot: failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		snap, err := core.LoadSnapshot(f)
		if err != nil {
			return fmt.Errorf("snapshot: failed to decode %s: %w", args[0], err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "schema %d, %d entries\n", snap.Schema, len(snap.Entries))
		for _, e := range snap.Entries {
			fmt.Fprintf(out, "  %-40s kind=%d flags=%04x\n", e.QualifiedName, e.Kind, e.Flags)
		}
		return nil
	},
}
