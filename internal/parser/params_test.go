package parser

import (
	"strings"
	"testing"
)

func TestSplitParameters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple list",
			input: "a, b, c",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "typed parameters keep internal colons",
			input: "name: string, age: number, isActive: boolean",
			want:  []string{"name: string", "age: number", "isActive: boolean"},
		},
		{
			name:  "generics and function types do not split",
			input: "items: Array<T>, callback: (item: T) => boolean",
			want:  []string{"items: Array<T>", "callback: (item: T) => boolean"},
		},
		{
			name:  "object and tuple literals do not split",
			input: "config: { host: string, port: number }, options: [string, number]",
			want:  []string{"config: { host: string, port: number }", "options: [string, number]"},
		},
		{
			name:  "quoted commas retained",
			input: `sep = ",", label = 'a,b'`,
			want:  []string{`sep = ","`, `label = 'a,b'`},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "trailing comma discarded",
			input: "a, b,",
			want:  []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitParameters(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitParameters(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitParametersIdempotent(t *testing.T) {
	inputs := []string{
		"a, b, c",
		"items: Array<T>, callback: (item: T) => boolean",
		"config: { host: string, port: number }, options: [string, number]",
		"name?: string, timeout: number = 5000, ...rest: any[]",
	}

	for _, input := range inputs {
		first := SplitParameters(input)
		second := SplitParameters(strings.Join(first, ", "))
		if len(first) != len(second) {
			t.Fatalf("resplit of %q changed count: %v vs %v", input, first, second)
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("resplit of %q changed segment %d: %q vs %q", input, i, first[i], second[i])
			}
		}
	}
}

func TestParseParameter(t *testing.T) {
	type expect struct {
		name, typ, def     string
		isOptional, isRest bool
	}
	tests := []struct {
		input string
		want  expect
	}{
		{
			input: "name?: string",
			want:  expect{name: "name", typ: "string", isOptional: true},
		},
		{
			input: "...args: any[]",
			want:  expect{name: "args", typ: "any[]", isRest: true},
		},
		{
			input: "timeout: number = 5000",
			want:  expect{name: "timeout", typ: "number", def: "5000", isOptional: true},
		},
		{
			input: "value",
			want:  expect{name: "value"},
		},
		{
			input: "flag = true",
			want:  expect{name: "flag", def: "true", isOptional: true},
		},
		{
			input: "{ host, port }",
			want:  expect{name: "unknown"},
		},
		{
			input: "cmp: (a, b) => number",
			want:  expect{name: "cmp", typ: "(a, b) => number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseParameter(tt.input)
			if got.Name != tt.want.name {
				t.Errorf("name = %q, want %q", got.Name, tt.want.name)
			}
			if got.Type != tt.want.typ {
				t.Errorf("type = %q, want %q", got.Type, tt.want.typ)
			}
			if got.DefaultValue != tt.want.def {
				t.Errorf("default = %q, want %q", got.DefaultValue, tt.want.def)
			}
			if got.IsOptional != tt.want.isOptional {
				t.Errorf("is_optional = %v, want %v", got.IsOptional, tt.want.isOptional)
			}
			if got.IsRest != tt.want.isRest {
				t.Errorf("is_rest = %v, want %v", got.IsRest, tt.want.isRest)
			}
		})
	}
}

func TestFindAssignmentOperatorIgnoresComparisons(t *testing.T) {
	if pos := findAssignmentOperator("x == y"); pos >= 0 {
		t.Errorf("matched '==' at %d", pos)
	}
	if pos := findAssignmentOperator("flag = a === b"); pos != 5 {
		t.Errorf("pos = %d, want 5", pos)
	}
	if pos := findAssignmentOperator("cb = (a = 1) => a"); pos != 3 {
		t.Errorf("pos = %d, want 3", pos)
	}
}

func TestParseParametersFromSignature(t *testing.T) {
	params := ParseParametersFromSignature("function connect(host: string, port: number = 80): Socket")
	if len(params) != 2 {
		t.Fatalf("got %d parameters, want 2", len(params))
	}
	if params[0].Name != "host" || params[0].Type != "string" {
		t.Errorf("first = %+v", params[0])
	}
	if params[1].Name != "port" || params[1].DefaultValue != "80" || !params[1].IsOptional {
		t.Errorf("second = %+v", params[1])
	}

	if got := ParseParametersFromSignature("no parens here"); got != nil {
		t.Errorf("expected nil for signature without parens, got %v", got)
	}
}
