// # internal/output/tree.go
package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"npmlens/internal/config"
	"npmlens/internal/model"
	"npmlens/internal/shared/util"
)

// TreeFormatter renders the box-drawing tree. Styling is explicit per
// configuration; nothing is read from the environment here.
type TreeFormatter struct {
	icons config.Output

	moduleStyle   lipgloss.Style
	nameStyle     lipgloss.Style
	versionStyle  lipgloss.Style
	exportsStyle  lipgloss.Style
	functionStyle lipgloss.Style
	classStyle    lipgloss.Style
	typeStyle     lipgloss.Style
	constantStyle lipgloss.Style
	paramStyle    lipgloss.Style
	typeHintStyle lipgloss.Style
	returnStyle   lipgloss.Style
	defaultStyle  lipgloss.Style
}

func NewTreeFormatter(out config.Output) *TreeFormatter {
	f := &TreeFormatter{icons: out}

	if out.NoColor {
		plain := lipgloss.NewStyle()
		f.moduleStyle = plain
		f.nameStyle = plain
		f.versionStyle = plain
		f.exportsStyle = plain
		f.functionStyle = plain
		f.classStyle = plain
		f.typeStyle = plain
		f.constantStyle = plain
		f.paramStyle = plain
		f.typeHintStyle = plain
		f.returnStyle = plain
		f.defaultStyle = plain
		return f
	}

	f.moduleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	f.nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	f.versionStyle = lipgloss.NewStyle().Faint(true)
	f.exportsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	f.functionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	f.classStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	f.typeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	f.constantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	f.paramStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	f.typeHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	f.returnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	f.defaultStyle = lipgloss.NewStyle().Faint(true)
	return f
}

func (f *TreeFormatter) FormatTree(tree *model.ModuleInfo) (string, error) {
	var b strings.Builder
	f.formatModule(tree, &b, "", true)
	return b.String(), nil
}

func (f *TreeFormatter) FormatSignature(sig *model.SignatureInfo) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n",
		f.typeStyle.Render(f.icons.SignIcon),
		f.nameStyle.Render(sig.Name))

	if len(sig.Parameters) > 0 {
		b.WriteString("├── Parameters:\n")
		for i, param := range sig.Parameters {
			prefix := "├── "
			if i == len(sig.Parameters)-1 {
				prefix = "└── "
			}
			fmt.Fprintf(&b, "%s%s\n", prefix, f.formatParameter(param))
		}
	}

	if sig.ReturnType != "" {
		fmt.Fprintf(&b, "└── Returns: %s\n", f.returnStyle.Render(sig.ReturnType))
	}

	return b.String(), nil
}

func (f *TreeFormatter) FormatSignatureNotAvailable(symbolName string) string {
	return fmt.Sprintf("%s %s\nsignature not available", f.icons.SignIcon, symbolName)
}

func (f *TreeFormatter) formatModule(module *model.ModuleInfo, b *strings.Builder, prefix string, isLast bool) {
	currentPrefix := ""
	if prefix != "" {
		if isLast {
			currentPrefix = "└── "
		} else {
			currentPrefix = "├── "
		}
	}

	version := ""
	if module.Version != "" {
		version = "@" + f.versionStyle.Render(module.Version)
	}

	fmt.Fprintf(b, "%s%s%s %s%s\n",
		prefix, currentPrefix,
		f.moduleStyle.Render(f.icons.ModuleIcon),
		f.nameStyle.Render(module.Name),
		version)

	childPrefix := ""
	if prefix != "" {
		if isLast {
			childPrefix = prefix + "    "
		} else {
			childPrefix = prefix + "│   "
		}
	}

	if len(module.Exports) > 0 {
		fmt.Fprintf(b, "%s├── %s __all__: %s\n",
			childPrefix,
			f.exportsStyle.Render(f.icons.ExportsIcon),
			f.exportsStyle.Render(strings.Join(module.Exports, ", ")))
	}
	if len(module.Functions) > 0 {
		names := make([]string, len(module.Functions))
		for i, fn := range module.Functions {
			names[i] = fn.Name
		}
		fmt.Fprintf(b, "%s├── %s functions: %s\n",
			childPrefix,
			f.functionStyle.Render(f.icons.FunctionIcon),
			f.functionStyle.Render(strings.Join(names, ", ")))
	}
	if len(module.Classes) > 0 {
		names := make([]string, len(module.Classes))
		for i, cls := range module.Classes {
			names[i] = cls.Name
		}
		fmt.Fprintf(b, "%s├── %s classes: %s\n",
			childPrefix,
			f.classStyle.Render(f.icons.ClassIcon),
			f.classStyle.Render(strings.Join(names, ", ")))
	}
	if len(module.Types) > 0 {
		names := make([]string, len(module.Types))
		for i, typ := range module.Types {
			names[i] = typ.Name
		}
		fmt.Fprintf(b, "%s├── %s types: %s\n",
			childPrefix,
			f.typeStyle.Render(f.icons.TypeIcon),
			f.typeStyle.Render(strings.Join(names, ", ")))
	}
	if len(module.Constants) > 0 {
		names := make([]string, len(module.Constants))
		for i, c := range module.Constants {
			names[i] = c.Name
		}
		fmt.Fprintf(b, "%s├── %s constants: %s\n",
			childPrefix,
			f.constantStyle.Render(f.icons.ConstantIcon),
			f.constantStyle.Render(strings.Join(names, ", ")))
	}

	names := util.SortedStringKeys(module.Submodules)
	for i, name := range names {
		f.formatModule(module.Submodules[name], b, childPrefix, i == len(names)-1)
	}
}

func (f *TreeFormatter) formatParameter(param model.Parameter) string {
	var b strings.Builder

	if param.IsRest {
		b.WriteString("...")
	}
	b.WriteString(f.paramStyle.Render(param.Name))
	if param.IsOptional {
		b.WriteString("?")
	}
	if param.Type != "" {
		b.WriteString(": " + f.typeHintStyle.Render(param.Type))
	}
	if param.DefaultValue != "" {
		b.WriteString(" = " + f.defaultStyle.Render(param.DefaultValue))
	}

	return b.String()
}
