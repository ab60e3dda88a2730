// # internal/registry/spec.go

// Package registry locates packages: locally installed copies first, the npm
// registry as the fallback.
package registry

import "strings"

// ParsePackageSpec splits a package spec into name and version. The version
// part is the text after the last '@' that is not the scope marker:
// "express@4.18.0" and "@types/node@18.0.0" both carry versions,
// "@types/node" does not.
func ParsePackageSpec(spec string) (name, version string) {
	if strings.HasPrefix(spec, "@") {
		if at := strings.Index(spec[1:], "@"); at >= 0 {
			return spec[:at+1], spec[at+2:]
		}
		return spec, ""
	}

	if at := strings.LastIndex(spec, "@"); at >= 0 {
		return spec[:at], spec[at+1:]
	}
	return spec, ""
}

// ExtractBasePackage reduces a module path to its package name:
// "express/lib/router" -> "express", "@types/node/fs" -> "@types/node".
func ExtractBasePackage(modulePath string) string {
	parts := strings.Split(modulePath, "/")
	if strings.HasPrefix(parts[0], "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
