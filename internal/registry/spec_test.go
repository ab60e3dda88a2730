package registry

import "testing"

func TestParsePackageSpec(t *testing.T) {
	tests := []struct {
		spec    string
		name    string
		version string
	}{
		{"express", "express", ""},
		{"express@4.18.0", "express", "4.18.0"},
		{"@types/node", "@types/node", ""},
		{"@types/node@18.0.0", "@types/node", "18.0.0"},
		{"lodash@latest", "lodash", "latest"},
	}

	for _, tt := range tests {
		name, version := ParsePackageSpec(tt.spec)
		if name != tt.name || version != tt.version {
			t.Errorf("ParsePackageSpec(%q) = (%q, %q), want (%q, %q)",
				tt.spec, name, version, tt.name, tt.version)
		}
	}
}

func TestExtractBasePackage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"express", "express"},
		{"express/lib/router", "express"},
		{"@types/node", "@types/node"},
		{"@types/node/fs", "@types/node"},
	}

	for _, tt := range tests {
		if got := ExtractBasePackage(tt.path); got != tt.want {
			t.Errorf("ExtractBasePackage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
