package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/d2fps/d2interface"
	"github.com/d2fps/d2interface/fileversion"
	"github.com/d2fps/d2interface/pe"
)

func (a *app) versionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List the supported host builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tFINGERPRINT\tTABLE\tMODULE\tDIGEST")
			for _, v := range d2interface.DefaultRegistry.Versions() {
				for _, t := range v.Tables() {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%016x\n", v.Name, v.Fingerprint, t.Name, t.Module, t.Digest())
				}
			}
			return w.Flush()
		},
	}
}

type dumpField struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Address string `yaml:"address"`
}

type dumpTable struct {
	Name   string      `yaml:"name"`
	Module string      `yaml:"module"`
	Digest string      `yaml:"digest"`
	Fields []dumpField `yaml:"fields"`
}

type dumpVersion struct {
	Version     string      `yaml:"version"`
	Fingerprint string      `yaml:"fingerprint"`
	Tables      []dumpTable `yaml:"tables"`
}

func dumpOf(v *d2interface.Version) dumpVersion {
	d := dumpVersion{Version: v.Name, Fingerprint: v.Fingerprint.FileVersion.String()}
	for _, t := range v.Tables() {
		dt := dumpTable{Name: t.Name, Module: t.Module, Digest: fmt.Sprintf("%016x", t.Digest())}
		for _, f := range t.Fields {
			dt.Fields = append(dt.Fields, dumpField{Name: f.Name, Type: f.Type.String(), Address: f.Address.String()})
		}
		d.Tables = append(d.Tables, dt)
	}
	return d
}

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <version>",
		Short: "Print a build's merged tables as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := d2interface.DefaultRegistry.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown version %q", args[0])
			}
			out, err := yaml.Marshal(dumpOf(v))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func (a *app) probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <Game.exe>",
		Short: "Identify the build of a host executable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			q, err := fileversion.FromImage(image)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fp := d2interface.Fingerprint{FileVersion: q}
			v, err := d2interface.DefaultRegistry.Match(fp)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: unsupported\n", fp)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", fp, v.Name)
			return nil
		},
	}
}

func (a *app) exportsCmd() *cobra.Command {
	var base uint32
	cmd := &cobra.Command{
		Use:   "exports <module>",
		Short: "List the exported ordinals of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := pe.Open(args[0])
			if err != nil {
				return err
			}
			m := f.At(uintptr(base))
			a.log.Debug("opened module", "path", args[0], "image_base", fmt.Sprintf("0x%x", f.ImageBase))
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ORDINAL\tRVA\tADDRESS")
			for _, e := range f.Exports() {
				fmt.Fprintf(w, "#%d\t0x%x\t0x%x\n", e.Ordinal, e.RVA, m.Base()+uintptr(e.RVA))
			}
			return w.Flush()
		},
	}
	cmd.Flags().Uint32Var(&base, "at", 0, "load base (default is the image base)")
	return cmd
}

func (a *app) resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve every table against an installation directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bases, err := a.cfg.Game.ModuleBases()
			if err != nil {
				return err
			}
			dir := &pe.Dir{Path: a.cfg.Game.Dir, Bases: bases}
			s := d2interface.NewSession(dir, d2interface.WithLogger(a.log))
			if _, err := s.Attach(); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tFIELD\tTYPE\tENTRY\tADDRESS")
			for _, r := range s.Resolutions() {
				for _, f := range r.Fields() {
					addr := "-"
					if f.Present {
						addr = fmt.Sprintf("0x%x", f.Addr)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Table(), f.Name, f.Type, f.Address, addr)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("dir", ".", "installation directory holding Game.exe")
	cmd.Flags().StringSlice("base", nil, "module load base override as module=base, repeatable")
	return cmd
}
