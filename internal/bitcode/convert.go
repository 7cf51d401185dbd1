package bitcode

import (
	"qirgen/grammar"
	"qirgen/internal/ir"
)

// applyOverrides rewrites the module name and source path in place when
// an override is given. A nil override keeps the stored value.
func applyOverrides(model *ir.SemanticModel, moduleName, sourceFile *string) {
	if moduleName != nil {
		model.Name = *moduleName
	}
	if sourceFile != nil {
		model.SourceFile = *sourceFile
	}
}

// IRToBitcode converts textual IR to the binary form, optionally
// renaming the module or its source path on the way through.
func IRToBitcode(text string, moduleName, sourceFile *string) ([]byte, error) {
	program, err := grammar.ParseString("ir", text)
	if err != nil {
		return nil, err
	}
	model, err := grammar.Lower(program)
	if err != nil {
		return nil, err
	}
	applyOverrides(model, moduleName, sourceFile)
	return Encode(model)
}

// BitcodeToIR converts the binary form back to textual IR, optionally
// renaming the module or its source path on the way through.
func BitcodeToIR(data []byte, moduleName, sourceFile *string) (string, error) {
	model, err := Decode(data)
	if err != nil {
		return "", err
	}
	applyOverrides(model, moduleName, sourceFile)
	return grammar.Print(model)
}
