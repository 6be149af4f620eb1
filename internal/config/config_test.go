package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":3000")
	}
	if cfg.PublicURL != "http://localhost:3000" {
		t.Errorf("PublicURL = %q", cfg.PublicURL)
	}
	if cfg.BackendURL != "http://localhost:5000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if want := []string{"index.html", "index.htm"}; !reflect.DeepEqual(cfg.IndexFiles, want) {
		t.Errorf("IndexFiles = %v, want %v", cfg.IndexFiles, want)
	}
	if got := cfg.ReadHeaderTimeoutDuration(); got != 10*time.Second {
		t.Errorf("ReadHeaderTimeoutDuration() = %s, want 10s", got)
	}

	want := CORSConfig{
		AllowOrigin:  "*",
		AllowMethods: "GET, POST, OPTIONS",
		AllowHeaders: "Content-Type",
	}
	if cfg.CORS != want {
		t.Errorf("CORS = %+v, want %+v", cfg.CORS, want)
	}
}

func TestParseErrors(t *testing.T) {
	valid := `
addr = ":3000"
index_files = ["index.html"]
read_header_timeout = "5s"
[cors]
allow_origin = "*"
allow_methods = "GET"
allow_headers = "Content-Type"
`

	if _, err := parse(valid); err != nil {
		t.Fatalf("parse(valid) failed: %v", err)
	}

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "syntax error",
			doc:     "addr = ",
			wantErr: "decode built-in config",
		},
		{
			name:    "unknown key",
			doc:     valid + "\nport = 1\n",
			wantErr: "unknown config keys",
		},
		{
			name:    "empty addr",
			doc:     strings.Replace(valid, `addr = ":3000"`, `addr = ""`, 1),
			wantErr: "addr is empty",
		},
		{
			name:    "index file with separator",
			doc:     strings.Replace(valid, `["index.html"]`, `["../index.html"]`, 1),
			wantErr: "invalid index file name",
		},
		{
			name:    "bad timeout",
			doc:     strings.Replace(valid, `"5s"`, `"soon"`, 1),
			wantErr: "read_header_timeout",
		},
		{
			name:    "missing cors value",
			doc:     strings.Replace(valid, `allow_origin = "*"`, `allow_origin = ""`, 1),
			wantErr: "cors values",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.doc)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
