package cmd

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvScenarioFile: "env.yaml",
		EnvCurrency:     "USD",
		EnvVerbose:      "true",
	}
	getenv := func(k string) string { return env[k] }

	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "environment only",
			args: nil,
			want: Config{ScenarioFile: "env.yaml", Currency: "USD", Verbose: true},
		},
		{
			name: "flags win",
			args: []string{"-scenario", "flag.yaml", "-currency", "EUR"},
			want: Config{ScenarioFile: "flag.yaml", Currency: "EUR", Verbose: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			f := flag.NewFlagSet("gbce", flag.ContinueOnError)
			c.SetFlags(f)
			if err := f.Parse(tt.args); err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if err := c.ApplyEnv(f, getenv); err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			if c != tt.want {
				t.Errorf("ApplyEnv() = %+v, want %+v", c, tt.want)
			}
		})
	}

	t.Run("invalid verbose", func(t *testing.T) {
		var c Config
		f := flag.NewFlagSet("gbce", flag.ContinueOnError)
		c.SetFlags(f)
		err := c.ApplyEnv(f, func(k string) string {
			if k == EnvVerbose {
				return "maybe"
			}
			return ""
		})
		if err == nil {
			t.Error("ApplyEnv() expected an error")
		}
	})
}

// withConfig sets the global config for the duration of the test.
func withConfig(t *testing.T, c Config) {
	t.Helper()
	old := config
	config = c
	t.Cleanup(func() { config = old })
}

func TestOpenSession(t *testing.T) {
	withConfig(t, Config{})
	s, err := openSession()
	if err != nil {
		t.Fatalf("openSession() error = %v", err)
	}
	if got := s.market.Len(); got != 5 {
		t.Errorf("sample market has %d stocks, want 5", got)
	}
	if got := s.scenario.Window; got != 15*time.Minute {
		t.Errorf("sample window = %v, want 15m", got)
	}
	v, err := s.market.VolumeWeightedPrice("POP", s.now, s.scenario.Window)
	if err != nil {
		t.Fatalf("VolumeWeightedPrice() error = %v", err)
	}
	if got := v.Price.String(); got != "£120.00" {
		t.Errorf("POP vwap = %s, want £120.00", got)
	}
}

func TestOpenSessionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.yaml")
	content := `currency: USD
now: 2025-06-02T10:00:00Z
stocks:
  - {symbol: AAA, type: common, last_dividend: 1, par_value: 10}
trades:
  - {symbol: AAA, time: 2025-06-02T09:50:00Z, quantity: 10, side: buy, price: 20}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	withConfig(t, Config{ScenarioFile: path})
	s, err := openSession()
	if err != nil {
		t.Fatalf("openSession() error = %v", err)
	}
	if want := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC); !s.now.Equal(want) {
		t.Errorf("session time = %v, want %v", s.now, want)
	}
	if got := s.market.Currency(); got != "USD" {
		t.Errorf("market currency = %q, want USD", got)
	}

	withConfig(t, Config{ScenarioFile: filepath.Join(t.TempDir(), "missing.yaml")})
	if _, err := openSession(); err == nil {
		t.Error("openSession() with a missing file expected an error")
	}
}

func TestWindowFlagsResolve(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	withConfig(t, Config{})
	s, err := openSession()
	if err != nil {
		t.Fatalf("openSession() error = %v", err)
	}
	s.now = now

	tests := []struct {
		name       string
		flags      windowFlags
		wantNow    time.Time
		wantWindow time.Duration
		wantErr    bool
	}{
		{name: "defaults", wantNow: now, wantWindow: 15 * time.Minute},
		{name: "window", flags: windowFlags{window: 5 * time.Minute}, wantNow: now, wantWindow: 5 * time.Minute},
		{name: "at", flags: windowFlags{at: "2025-06-02T11:30:00Z"}, wantNow: now.Add(90 * time.Minute), wantWindow: 15 * time.Minute},
		{name: "invalid at", flags: windowFlags{at: "yesterday"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotNow, gotWindow, err := tt.flags.resolve(s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !gotNow.Equal(tt.wantNow) || gotWindow != tt.wantWindow {
				t.Errorf("resolve() = (%v, %v), want (%v, %v)", gotNow, gotWindow, tt.wantNow, tt.wantWindow)
			}
		})
	}
}

func TestQueryJSON(t *testing.T) {
	doc := map[string]any{
		"currency": "GBP",
		"stocks": []map[string]any{
			{"symbol": "TEA", "pe_ratio": nil},
			{"symbol": "POP", "pe_ratio": "15"},
		},
	}

	tests := []struct {
		name    string
		query   string
		want    string
		wantErr bool
	}{
		{name: "field", query: "$.currency", want: `"GBP"`},
		{name: "wildcard", query: "$.stocks[*].symbol", want: `["TEA","POP"]`},
		{name: "index", query: "$.stocks[1].pe_ratio", want: `"15"`},
		{name: "invalid", query: "$.stocks[", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := queryJSON(doc, tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("queryJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			var gotValue, wantValue any
			if err := json.Unmarshal(got, &gotValue); err != nil {
				t.Fatalf("queryJSON() returned invalid JSON %s: %v", got, err)
			}
			if err := json.Unmarshal([]byte(tt.want), &wantValue); err != nil {
				t.Fatal(err)
			}
			g, _ := json.Marshal(gotValue)
			w, _ := json.Marshal(wantValue)
			if string(g) != string(w) {
				t.Errorf("queryJSON(%q) = %s, want %s", tt.query, g, w)
			}
		})
	}
}

func TestCompletion(t *testing.T) {
	global := flag.NewFlagSet("gbce", flag.ContinueOnError)
	var c Config
	c.SetFlags(global)

	root := Completion(global)
	for _, name := range []string{"scenario", "currency", "v"} {
		if _, ok := root.Flags[name]; !ok {
			t.Errorf("missing completion of global flag -%s", name)
		}
	}
	for _, c := range Commands {
		if _, ok := root.Sub[c.Name()]; !ok {
			t.Errorf("missing completion of command %q", c.Name())
		}
	}
	if _, ok := root.Sub["report"].Flags["json"]; !ok {
		t.Error("missing completion of report -json")
	}

	t.Setenv(EnvScenarioFile, "")
	symbols := predictSymbols("")
	if len(symbols) != 5 || symbols[0] != "TEA" {
		t.Errorf("predictSymbols() = %v, want the 5 sample stocks", symbols)
	}
}

func TestIndexCompute(t *testing.T) {
	withConfig(t, Config{})
	s, err := openSession()
	if err != nil {
		t.Fatalf("openSession() error = %v", err)
	}

	tests := []struct {
		name      string
		cmd       indexCmd
		wantLabel string
	}{
		{name: "all share", cmd: indexCmd{}, wantLabel: "GBCE All Share Index"},
		{name: "trade prices", cmd: indexCmd{trades: true}, wantLabel: "Trade Price Index"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, index, err := tt.cmd.compute(s)
			if err != nil {
				t.Fatalf("compute() error = %v", err)
			}
			if label != tt.wantLabel {
				t.Errorf("compute() label = %q, want %q", label, tt.wantLabel)
			}
			if !index.IsPositive() {
				t.Errorf("compute() index = %s, want a positive value", index)
			}
		})
	}
}
