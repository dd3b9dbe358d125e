package generator

import (
	"fmt"
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/denizgursoy/stepindex/internal/step_parser"
)

type (
	// Stub is a step function to be written for an undefined step.
	Stub struct {
		FunctionName string
		Template     string
		// Parameters are the Go types of the placeholders, in order
		Parameters []string
	}

	Output struct {
		Stubs       []*Stub
		PackageName string // Short package name (e.g., "myapp"); if empty, defaults to "main"
	}
)

func (o *Output) Generate(writer io.Writer) error {
	pkgName := o.PackageName
	if pkgName == "" {
		pkgName = "main"
	}
	file := jen.NewFile(pkgName)

	for _, stub := range o.Stubs {
		params := []jen.Code{jen.Id("ctx").Qual("context", "Context")}
		for n, parameter := range stub.Parameters {
			params = append(params, jen.Id(fmt.Sprintf("arg%d", n+1)).Id(parameter))
		}

		file.Add(
			jen.Comment(stub.FunctionName).Line().
				Comment(step_parser.StepPrefix+" `"+stub.Template+"`").Line().
				Func().Id(stub.FunctionName).Params(params...).
				Params(jen.Qual("context", "Context"), jen.Error()).
				Block(
					jen.Return(jen.Id("ctx"), jen.Qual("errors", "New").Call(jen.Lit("pending"))),
				),
		)
	}

	_, err := writer.Write([]byte(file.GoString()))

	return err
}
