package output

import (
	"encoding/json"
	"strings"
	"testing"

	"npmlens/internal/config"
	"npmlens/internal/model"
)

func asciiOutput() config.Output {
	return config.Output{
		NoColor:      true,
		ASCII:        true,
		ModuleIcon:   "[M]",
		FunctionIcon: "fn",
		ClassIcon:    "cls",
		ConstantIcon: "const",
		ExportsIcon:  "exp",
		TypeIcon:     "type",
		SignIcon:     "sig",
	}
}

func sampleTree() *model.ModuleInfo {
	root := model.NewModuleInfo("express")
	root.Version = "4.18.0"
	root.AddExport("Router")
	root.AddFunction(model.FunctionInfo{Name: "createApplication"})
	root.AddClass(model.ClassInfo{Name: "Router"})
	root.AddConstant(model.ConstantInfo{Name: "METHODS"})

	sub := model.NewModuleInfo("router")
	sub.AddFunction(model.FunctionInfo{Name: "route"})
	root.AddSubmodule("router", sub)
	return root
}

func TestTreeFormatter(t *testing.T) {
	f := NewTreeFormatter(asciiOutput())

	got, err := f.FormatTree(sampleTree())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"[M] express@4.18.0",
		"exp __all__: Router",
		"fn functions: createApplication",
		"cls classes: Router",
		"const constants: METHODS",
		"[M] router",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestTreeFormatterSignature(t *testing.T) {
	f := NewTreeFormatter(asciiOutput())

	sig := &model.SignatureInfo{
		Name: "connect",
		Kind: model.SignatureFunction,
		Parameters: []model.Parameter{
			{Name: "host", Type: "string"},
			{Name: "port", Type: "number", IsOptional: true, DefaultValue: "80"},
			{Name: "extra", IsRest: true},
		},
		ReturnType: "Socket",
	}

	got, err := f.FormatSignature(sig)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"sig connect",
		"├── Parameters:",
		"├── host: string",
		"├── port?: number = 80",
		"└── ...extra",
		"└── Returns: Socket",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestTreeFormatterNotAvailable(t *testing.T) {
	f := NewTreeFormatter(asciiOutput())
	got := f.FormatSignatureNotAvailable("mystery")
	if !strings.Contains(got, "mystery") || !strings.Contains(got, "signature not available") {
		t.Errorf("got %q", got)
	}
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	f := &JSONFormatter{}

	text, err := f.FormatTree(sampleTree())
	if err != nil {
		t.Fatal(err)
	}

	var decoded model.ModuleInfo
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Name != "express" || decoded.Version != "4.18.0" {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.Submodules) != 1 {
		t.Errorf("submodules = %+v", decoded.Submodules)
	}
}

func TestTSVFormatterTree(t *testing.T) {
	f := &TSVFormatter{}

	got, err := f.FormatTree(sampleTree())
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(got), "\n")
	if lines[0] != "Module\tKind\tName\tDetail" {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{
		"express\tfunction\tcreateApplication",
		"express\tclass\tRouter\t0 methods",
		"express\tconstant\tMETHODS",
		"router\tfunction\troute",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestTSVFormatterSignature(t *testing.T) {
	f := &TSVFormatter{}

	got, err := f.FormatSignature(&model.SignatureInfo{
		Name: "route",
		Kind: model.SignatureMethod,
		Parameters: []model.Parameter{
			{Name: "path", Type: "string"},
		},
		ReturnType: "Route",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "route\tmethod\tpath\tstring\tfalse\t\tRoute") {
		t.Errorf("output:\n%s", got)
	}
}

func TestNewFormatterSelection(t *testing.T) {
	if _, ok := NewFormatter("json", asciiOutput()).(*JSONFormatter); !ok {
		t.Error("expected JSON formatter")
	}
	if _, ok := NewFormatter("tsv", asciiOutput()).(*TSVFormatter); !ok {
		t.Error("expected TSV formatter")
	}
	if _, ok := NewFormatter("pretty", asciiOutput()).(*TreeFormatter); !ok {
		t.Error("expected tree formatter")
	}
	if _, ok := NewFormatter("", asciiOutput()).(*TreeFormatter); !ok {
		t.Error("expected tree formatter for empty format")
	}
}
