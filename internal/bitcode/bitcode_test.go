package bitcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qirgen/grammar"
	"qirgen/internal/builder"
	"qirgen/internal/errors"
	"qirgen/internal/ir"
	"qirgen/internal/types"
)

func buildConditional(t *testing.T) *ir.SemanticModel {
	t.Helper()

	module := builder.NewModule("conditional", 2, 2)
	module.SetSourceFile("conditional.qs")
	b := module.Builder()
	qis := builder.NewQisBuilder(b)
	qubits := module.Qubits()
	results := module.Results()

	record, err := module.AddExternalFunction("record", types.Function{
		Params: []types.Type{types.Integer(64)},
		Return: types.ReturnValue(types.Integer(64)),
	})
	require.NoError(t, err)

	qis.H(qubits[0])
	require.NoError(t, qis.RY(0.125, qubits[0]))
	qis.CZ(qubits[0], qubits[1])
	qis.M(qubits[0], results[0])

	err = qis.IfResult(results[0], func() error {
		qis.X(qubits[1])
		sum, err := b.Call(record, 7)
		if err != nil {
			return err
		}
		_, err = b.ICmpSgt(sum, 3)
		return err
	}, nil)
	require.NoError(t, err)

	model, err := module.Finish()
	require.NoError(t, err)
	return model
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	model := buildConditional(t)

	data, err := Encode(model)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, model, decoded)
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	_, err := Decode([]byte{0xc0})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrorBackend))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not msgpack at all"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrorBackend))
}

func TestTextBinaryRoundTrip(t *testing.T) {
	model := buildConditional(t)

	text, err := grammar.Print(model)
	require.NoError(t, err)

	data, err := IRToBitcode(text, nil, nil)
	require.NoError(t, err)

	back, err := BitcodeToIR(data, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, text, back)
}

func TestConversionOverrides(t *testing.T) {
	model := buildConditional(t)

	text, err := grammar.Print(model)
	require.NoError(t, err)

	name := "renamed"
	src := "renamed.qs"
	data, err := IRToBitcode(text, &name, &src)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "renamed", decoded.Name)
	assert.Equal(t, "renamed.qs", decoded.SourceFile)

	// Overriding on the way out must not touch anything else.
	other := "other"
	back, err := BitcodeToIR(data, &other, nil)
	require.NoError(t, err)
	assert.Contains(t, back, `module "other" {`)
	assert.Contains(t, back, `source "renamed.qs"`)
}

func TestIRToBitcodeRejectsBadText(t *testing.T) {
	_, err := IRToBitcode(`module "m" { body { call @nope() } }`, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrorBackend))
}
