package processor

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/wippyai/datatable/errors"
)

// CodeGenerator fills code from the processor. code starts out holding the
// template text; userData is passed through from GenerateCodeFile.
type CodeGenerator func(p *Processor, code *strings.Builder, userData any) error

// SetCodeTemplate loads the code template from path.
func (p *Processor) SetCodeTemplate(path string, enc encoding.Encoding) error {
	text, err := ReadText(path, enc)
	if err != nil {
		return err
	}
	p.template = text
	return nil
}

// SetCodeTemplateText sets the code template directly.
func (p *Processor) SetCodeTemplateText(text string) {
	p.template = text
}

// CodeTemplate returns the current code template.
func (p *Processor) CodeTemplate() string {
	return p.template
}

// SetCodeGenerator installs the hook run by GenerateCodeFile.
func (p *Processor) SetCodeGenerator(g CodeGenerator) {
	p.generator = g
}

// GenerateCodeFile runs the code generator over the template and writes the
// result to path encoded with enc. Without a generator the template is
// written unchanged.
func (p *Processor) GenerateCodeFile(path string, enc encoding.Encoding, userData any) error {
	if p.template == "" {
		return errors.State(errors.PhaseGenerate, "you must set code template first")
	}
	if path == "" {
		return errors.InvalidInput(errors.PhaseGenerate, "output file name is invalid")
	}

	var code strings.Builder
	code.WriteString(p.template)
	if p.generator != nil {
		if err := p.generator(p, &code, userData); err != nil {
			p.log.Error("generate code failure", zap.String("output", path), zap.Error(err))
			return errors.WithFile(errors.Wrap(errors.PhaseGenerate, errors.KindInvalidData, err, "code generator"), p.file)
		}
	}

	data, err := encodeText(code.String(), enc)
	if err != nil {
		return errors.Wrap(errors.PhaseGenerate, errors.KindInvalidData, err, "encode code text")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IO(errors.PhaseGenerate, "write", path, err)
	}
	p.log.Info("generate code file success", zap.String("output", path))
	return nil
}
