package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "d2iface.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(nil, writeConfig(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if c.Log.Level != "info" || c.Log.Format != "text" || c.Game.Dir != "." {
		t.Errorf("defaults not applied: %+v", c)
	}
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
game:
  dir: /games/d2
  bases:
    - D2Client.dll=0x6fab0000
`)
	t.Setenv("D2IFACE_LOG_FORMAT", "text")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("dir", "", "")
	if err := cmd.Flags().Set("dir", "/mnt/d2"); err != nil {
		t.Fatal(err)
	}

	c, err := Load(cmd, path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Log.Level != "debug" {
		t.Errorf("level %q, want debug from file", c.Log.Level)
	}
	if c.Log.Format != "text" {
		t.Errorf("format %q, want text from env", c.Log.Format)
	}
	if c.Game.Dir != "/mnt/d2" {
		t.Errorf("dir %q, want /mnt/d2 from flag", c.Game.Dir)
	}
	bases, err := c.Game.ModuleBases()
	if err != nil {
		t.Fatal(err)
	}
	if len(bases) != 1 || bases["D2Client.dll"] != 0x6fab0000 {
		t.Errorf("bases %v", bases)
	}
}

func TestModuleBasesInvalid(t *testing.T) {
	g := Game{Bases: []string{"D2Win.dll=base"}}
	if _, err := g.ModuleBases(); err == nil {
		t.Error("accepted invalid base")
	}
	g.Bases = []string{"D2Win.dll"}
	if _, err := g.ModuleBases(); err == nil {
		t.Error("accepted base without module")
	}
}

func TestLoadMalformed(t *testing.T) {
	if _, err := Load(nil, writeConfig(t, "log: [")); err == nil {
		t.Error("accepted malformed yaml")
	}
}
