package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/gogpu/gglive"
	"github.com/gogpu/gglive/archive"
	"github.com/gogpu/gglive/store"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		format   string
		terminal bool
		wantJSON bool
		wantMsg  bool
	}{
		{"terminal defaults to text", "info", "", true, false, true},
		{"pipe defaults to json", "info", "", false, true, true},
		{"explicit text", "debug", "text", false, false, true},
		{"explicit json", "info", "json", true, true, true},
		{"level filters", "error", "json", false, true, false},
		{"bad level is info", "loud", "json", false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.level, tt.format, tt.terminal)
			l.Info("hello", "k", 1)

			out := buf.String()
			if got := out != ""; got != tt.wantMsg {
				t.Fatalf("logged = %v, want %v (%q)", got, tt.wantMsg, out)
			}
			if !tt.wantMsg {
				return
			}
			if got := json.Valid([]byte(strings.TrimSpace(out))); got != tt.wantJSON {
				t.Errorf("json output = %v, want %v (%q)", got, tt.wantJSON, out)
			}
		})
	}
}

func TestNewLoggerDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "debug", "text", false)
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug logger does not enable debug")
	}
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gglive.yaml")
	if err := os.WriteFile(path, []byte("port: 9000\nwidth: 300\ntoken: filetoken\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	def := gglive.DefaultConfig()
	def.BindFlags(fs)
	if err := fs.Parse([]string{"--width", "640", "--token", ""}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(fs, path)
	if err != nil {
		t.Fatalf("loadConfig() = %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000 from file", cfg.Port)
	}
	if cfg.Width != 640 {
		t.Errorf("Width = %v, want 640 from flag", cfg.Width)
	}
	if cfg.Token != "" {
		t.Errorf("Token = %q, want flag to clear it", cfg.Token)
	}
	if cfg.Height != gglive.DefaultConfig().Height {
		t.Errorf("Height = %v, want default", cfg.Height)
	}
}

func TestLoadConfigInvalidFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	def := gglive.DefaultConfig()
	def.BindFlags(fs)
	if err := fs.Parse([]string{"--width", "-5"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(fs, ""); err == nil {
		t.Error("loadConfig() with negative width = nil error")
	}
}

func TestDrawDemo(t *testing.T) {
	d, err := gglive.Start(gglive.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	if err := drawDemo(d.Host()); err != nil {
		t.Fatalf("drawDemo() = %v", err)
	}
	if got := d.State().PageCount; got != demoPages {
		t.Errorf("PageCount = %d, want %d", got, demoPages)
	}

	tests := []struct {
		page int
		want []string
	}{
		{1, []string{"<circle", "<polyline", "<path", "fill-rule: evenodd"}},
		{2, []string{"<polygon", ">rotation</text>"}},
		{3, []string{"<clipPath", "<image", ">demo chart</text>", "stroke-dasharray"}},
	}
	for _, tt := range tests {
		svg, err := d.Markup(store.Index(tt.page), -1, -1)
		if err != nil {
			t.Fatalf("Markup(%d) = %v", tt.page, err)
		}
		for _, want := range tt.want {
			if !strings.Contains(svg, want) {
				t.Errorf("page %d markup lacks %q", tt.page, want)
			}
		}
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		h, s, l float64
		want    [3]uint8
	}{
		{0, 1, 0.5, [3]uint8{255, 0, 0}},
		{120, 1, 0.5, [3]uint8{0, 255, 0}},
		{240, 1, 0.5, [3]uint8{0, 0, 255}},
		{360, 1, 0.5, [3]uint8{255, 0, 0}},
		{0, 0, 0.5, [3]uint8{128, 128, 128}},
	}
	for _, tt := range tests {
		c := hsl(tt.h, tt.s, tt.l)
		if got := [3]uint8{c.R, c.G, c.B}; got != tt.want || c.A != 255 {
			t.Errorf("hsl(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.l, c, tt.want)
		}
	}
}

func TestShapes(t *testing.T) {
	x, y := star(0, 0, 60, 30, 5)
	if len(x) != 10 || len(y) != 10 {
		t.Fatalf("star() has %d points, want 10", len(x))
	}
	if x[0] > 1e-9 || x[0] < -1e-9 || y[0] != -60 {
		t.Errorf("star() first point = (%v, %v), want (0, -60)", x[0], y[0])
	}

	x, y = cubic(0, 0, 1, 1, 2, 1, 3, 0, 10)
	if len(x) != 11 || x[0] != 0 || x[10] != 3 || y[10] != 0 {
		t.Errorf("cubic() endpoints = (%v, %v) .. (%v, %v)", x[0], y[0], x[len(x)-1], y[len(y)-1])
	}

	x, _ = square(0, 0, 2, 0)
	if x[0] != -1 || x[1] != 1 {
		t.Errorf("square() x = %v, want corners at -1 and 1", x)
	}

	x, y = roundedRect(0, 0, 100, 50, 10)
	for i := range x {
		if x[i] < -1e-9 || x[i] > 100+1e-9 || y[i] < -1e-9 || y[i] > 50+1e-9 {
			t.Fatalf("roundedRect() point %d = (%v, %v) outside the box", i, x[i], y[i])
		}
	}
}

func TestTokenCommand(t *testing.T) {
	out, err := execute(t, "token", "-n", "24")
	if err != nil {
		t.Fatalf("token = %v", err)
	}
	if got := len(strings.TrimSpace(out)); got != 24 {
		t.Errorf("token length = %d, want 24", got)
	}
	if _, err := execute(t, "token", "-n", "0"); err == nil {
		t.Error("token -n 0 = nil error")
	}
}

func TestRenderCommand(t *testing.T) {
	out, err := execute(t, "render", "--page", "2", "--width", "400", "--height", "300")
	if err != nil {
		t.Fatalf("render = %v", err)
	}
	if !strings.Contains(out, "<svg ") || !strings.Contains(out, "viewBox='0 0 400.00 300.00'") {
		t.Errorf("render output = %.120q", out)
	}

	file := filepath.Join(t.TempDir(), "out.svg")
	if _, err := execute(t, "render", "--out-width", "800", "--out-height", "600", "-o", file); err != nil {
		t.Fatalf("render -o = %v", err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "viewBox='0 0 800.00 600.00'") {
		t.Errorf("rendered file lacks the requested size: %.120q", data)
	}

	if _, err := execute(t, "render", "--page", "9"); err == nil {
		t.Error("render --page 9 = nil error")
	}
}

func TestArchiveCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "archive.db")

	out, err := execute(t, "archive", "list", "--db", db)
	if err != nil {
		t.Fatalf("archive list = %v", err)
	}
	if !strings.Contains(out, "no archived sessions") {
		t.Errorf("empty archive list = %q", out)
	}

	a, err := archive.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	session := archive.NewSession()
	pages := []archive.Page{
		{ID: 1, Index: 1, Width: 720, Height: 576, SVG: "<svg>one</svg>"},
		{ID: 2, Index: 2, Width: 720, Height: 576, SVG: "<svg>two</svg>"},
	}
	if err := a.SavePages(context.Background(), session, pages); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	out, err = execute(t, "archive", "list", "--db", db)
	if err != nil {
		t.Fatalf("archive list = %v", err)
	}
	if !strings.Contains(out, session) {
		t.Errorf("archive list lacks session %s: %q", session, out)
	}

	dir := filepath.Join(t.TempDir(), "pages")
	out, err = execute(t, "archive", "show", session, "--db", db, "-o", dir)
	if err != nil {
		t.Fatalf("archive show = %v", err)
	}
	if !strings.Contains(out, "720x576") {
		t.Errorf("archive show = %q, want page sizes", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "page-002.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg>two</svg>" {
		t.Errorf("page-002.svg = %q", data)
	}

	if _, err := execute(t, "archive", "show", archive.NewSession(), "--db", db); err == nil {
		t.Error("archive show of an unknown session = nil error")
	}
}
