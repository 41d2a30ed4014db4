package datatable

import (
	"os"

	"go.uber.org/multierr"
	"golang.org/x/text/encoding"

	"github.com/wippyai/datatable/codegen"
	"github.com/wippyai/datatable/errors"
	"github.com/wippyai/datatable/processor"
)

// Outputs names the files Compile writes. Only Data is required.
type Outputs struct {
	Data    string
	Strings string
	Code    string

	// CodeTemplate overrides codegen.DefaultTemplate.
	CodeTemplate string
	// CodeEncoding encodes the generated code; nil means UTF-8.
	CodeEncoding encoding.Encoding
	CodeParams   codegen.Params
}

// Result reports what Compile produced.
type Result struct {
	Table   string
	Stats   processor.Stats
	Strings int
}

// Compile parses src and writes the outputs. When any step fails, every
// output path is removed so no stale file survives a failed compile.
func Compile(src string, out Outputs, layout processor.Layout, opts ...processor.Option) (*Result, error) {
	if out.Data == "" {
		return nil, errors.InvalidInput(errors.PhaseWrite, "data output path is required")
	}
	res, err := compile(src, out, layout, opts)
	if err != nil {
		return res, multierr.Append(err, removeOutputs(out))
	}
	return res, nil
}

func compile(src string, out Outputs, layout processor.Layout, opts []processor.Option) (*Result, error) {
	p, err := processor.New(src, layout, opts...)
	if err != nil {
		return nil, err
	}
	res := &Result{Table: p.TableName(), Strings: p.StringCount()}

	if res.Stats, err = p.GenerateDataFile(out.Data); err != nil {
		return res, err
	}
	if out.Strings != "" {
		if err := p.GenerateStringFile(out.Strings); err != nil {
			return res, err
		}
	}
	if out.Code != "" {
		tmpl := out.CodeTemplate
		if tmpl == "" {
			tmpl = codegen.DefaultTemplate
		}
		p.SetCodeTemplateText(tmpl)
		p.SetCodeGenerator(codegen.Generator)
		if err := p.GenerateCodeFile(out.Code, out.CodeEncoding, out.CodeParams); err != nil {
			return res, err
		}
	}
	return res, nil
}

func removeOutputs(out Outputs) error {
	var err error
	for _, path := range []string{out.Data, out.Strings, out.Code} {
		if path == "" {
			continue
		}
		if rerr := os.Remove(path); rerr != nil && !os.IsNotExist(rerr) {
			err = multierr.Append(err, errors.IO(errors.PhaseWrite, "remove stale output", path, rerr))
		}
	}
	return err
}
