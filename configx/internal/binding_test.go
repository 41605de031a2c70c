package internal

import (
	"testing"
	"time"
)

func TestBindToStruct_BasicTypes(t *testing.T) {
	type Config struct {
		StringField string  `env:"STRING_FIELD"`
		IntField    int     `env:"INT_FIELD"`
		UintField   uint    `env:"UINT_FIELD"`
		BoolField   bool    `env:"BOOL_FIELD"`
		FloatField  float64 `env:"FLOAT_FIELD"`
	}

	snapshot := map[string]string{
		"STRING_FIELD": "test-value",
		"INT_FIELD":    "42",
		"UINT_FIELD":   "100",
		"BOOL_FIELD":   "true",
		"FLOAT_FIELD":  "3.14",
	}

	var cfg Config
	if err := BindToStruct(snapshot, &cfg); err != nil {
		t.Fatalf("BindToStruct() error = %v", err)
	}

	if cfg.StringField != "test-value" {
		t.Errorf("StringField = %q, want %q", cfg.StringField, "test-value")
	}
	if cfg.IntField != 42 {
		t.Errorf("IntField = %d, want 42", cfg.IntField)
	}
	if cfg.UintField != 100 {
		t.Errorf("UintField = %d, want 100", cfg.UintField)
	}
	if !cfg.BoolField {
		t.Errorf("BoolField = %v, want true", cfg.BoolField)
	}
	if cfg.FloatField != 3.14 {
		t.Errorf("FloatField = %f, want 3.14", cfg.FloatField)
	}
}

func TestBindToStruct_Defaults(t *testing.T) {
	type Config struct {
		Config string        `env:"CONFIG" default:"hatch.yaml"`
		Wait   time.Duration `env:"WAIT" default:"2s"`
		Empty  string        `env:"EMPTY" default:"fallback"`
	}

	var cfg Config
	if err := BindToStruct(map[string]string{"EMPTY": ""}, &cfg); err != nil {
		t.Fatalf("BindToStruct() error = %v", err)
	}

	if cfg.Config != "hatch.yaml" {
		t.Errorf("Config = %q, want default", cfg.Config)
	}
	if cfg.Wait != 2*time.Second {
		t.Errorf("Wait = %v, want 2s", cfg.Wait)
	}
	if cfg.Empty != "" {
		t.Errorf("explicit empty value should keep zero value, got %q", cfg.Empty)
	}
}

func TestBindToStruct_NestedAndSlice(t *testing.T) {
	type Paths struct {
		Include []string `env:"INCLUDE"`
	}
	type Config struct {
		Paths Paths
		skip  string `env:"SKIP"`
	}

	var cfg Config
	if err := BindToStruct(map[string]string{"INCLUDE": "a, b,,c", "SKIP": "x"}, &cfg); err != nil {
		t.Fatalf("BindToStruct() error = %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(cfg.Paths.Include) != len(want) {
		t.Fatalf("Include = %v, want %v", cfg.Paths.Include, want)
	}
	for i := range want {
		if cfg.Paths.Include[i] != want[i] {
			t.Errorf("Include[%d] = %q, want %q", i, cfg.Paths.Include[i], want[i])
		}
	}
	if cfg.skip != "" {
		t.Error("unexported fields must not be bound")
	}
}

func TestBindToStruct_Errors(t *testing.T) {
	type Config struct {
		Count int8 `env:"COUNT"`
	}

	tests := []struct {
		name     string
		target   any
		snapshot map[string]string
	}{
		{"non-pointer", Config{}, nil},
		{"nil pointer", (*Config)(nil), nil},
		{"bad int", &Config{}, map[string]string{"COUNT": "many"}},
		{"overflow", &Config{}, map[string]string{"COUNT": "300"}},
		{"unsupported", &struct {
			M map[string]string `env:"M"`
		}{}, map[string]string{"M": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := BindToStruct(tt.snapshot, tt.target); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
