// # internal/output/tsv.go
package output

import (
	"fmt"
	"strings"

	"npmlens/internal/model"
	"npmlens/internal/shared/util"
)

// TSVFormatter emits one row per symbol for spreadsheet or script consumption.
type TSVFormatter struct{}

func (t *TSVFormatter) FormatTree(tree *model.ModuleInfo) (string, error) {
	var buf strings.Builder

	buf.WriteString("Module\tKind\tName\tDetail\n")
	t.writeModule(&buf, tree.Name, tree)

	for _, name := range util.SortedStringKeys(tree.Submodules) {
		t.writeModule(&buf, name, tree.Submodules[name])
	}

	return buf.String(), nil
}

func (t *TSVFormatter) writeModule(buf *strings.Builder, modulePath string, module *model.ModuleInfo) {
	for _, fn := range module.Functions {
		fmt.Fprintf(buf, "%s\tfunction\t%s\t%s\n", modulePath, fn.Name, fn.ReturnType)
	}
	for _, cls := range module.Classes {
		fmt.Fprintf(buf, "%s\tclass\t%s\t%d methods\n", modulePath, cls.Name, len(cls.Methods))
	}
	for _, typ := range module.Types {
		fmt.Fprintf(buf, "%s\ttype\t%s\t%s\n", modulePath, typ.Name, typ.Kind)
	}
	for _, c := range module.Constants {
		fmt.Fprintf(buf, "%s\tconstant\t%s\t%s\n", modulePath, c.Name, c.ValueType)
	}
	for _, export := range module.Exports {
		fmt.Fprintf(buf, "%s\texport\t%s\t\n", modulePath, export)
	}
}

func (t *TSVFormatter) FormatSignature(sig *model.SignatureInfo) (string, error) {
	var buf strings.Builder

	buf.WriteString("Name\tKind\tParameter\tType\tOptional\tDefault\tReturns\n")
	if len(sig.Parameters) == 0 {
		fmt.Fprintf(&buf, "%s\t%s\t\t\t\t\t%s\n", sig.Name, sig.Kind, sig.ReturnType)
		return buf.String(), nil
	}
	for _, param := range sig.Parameters {
		fmt.Fprintf(&buf, "%s\t%s\t%s\t%s\t%t\t%s\t%s\n",
			sig.Name, sig.Kind, param.Name, param.Type, param.IsOptional, param.DefaultValue, sig.ReturnType)
	}

	return buf.String(), nil
}

func (t *TSVFormatter) FormatSignatureNotAvailable(symbolName string) string {
	return fmt.Sprintf("Name\tKind\tParameter\tType\tOptional\tDefault\tReturns\n%s\t\t\t\t\t\t\n", symbolName)
}
