package grammar

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qirgen/internal/builder"
	"qirgen/internal/errors"
	"qirgen/internal/ir"
	"qirgen/internal/types"
)

func buildBell(t *testing.T) *ir.SemanticModel {
	t.Helper()

	module := builder.NewModule("bell", 2, 2)
	qis := builder.NewQisBuilder(module.Builder())
	qubits := module.Qubits()
	results := module.Results()

	qis.H(qubits[0])
	qis.CX(qubits[0], qubits[1])
	qis.M(qubits[0], results[0])
	qis.M(qubits[1], results[1])

	model, err := module.Finish()
	require.NoError(t, err)
	return model
}

func buildTeleport(t *testing.T) *ir.SemanticModel {
	t.Helper()

	module := builder.NewModule("teleport", 2, 2)
	module.SetSourceFile("teleport.qs")
	b := module.Builder()
	qis := builder.NewQisBuilder(b)
	qubits := module.Qubits()
	results := module.Results()

	probe, err := module.AddExternalFunction("probe", types.Function{
		Params: []types.Type{types.Integer(64), types.Double},
		Return: types.ReturnValue(types.Bool()),
	})
	require.NoError(t, err)
	logResult, err := module.AddExternalFunction("log_result", types.Function{
		Params: []types.Type{types.Result},
	})
	require.NoError(t, err)

	qis.H(qubits[0])
	require.NoError(t, qis.RZ(0.25, qubits[0]))
	qis.CX(qubits[0], qubits[1])
	qis.M(qubits[0], results[0])

	err = qis.IfResult(results[0], func() error {
		qis.X(qubits[1])
		_, err := b.Call(probe, 5, 0.5)
		return err
	}, func() error {
		_, err := b.Call(logResult, results[0])
		return err
	})
	require.NoError(t, err)

	five, ok := ir.NewInt(64, 5)
	require.True(t, ok)
	_, err = b.Add(five, 3)
	require.NoError(t, err)

	model, err := module.Finish()
	require.NoError(t, err)
	return model
}

func TestPrintBellGolden(t *testing.T) {
	text, err := Print(buildBell(t))
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, "bell", []byte(text))
}

func TestPrintParseLowerRoundTrip(t *testing.T) {
	for name, build := range map[string]func(*testing.T) *ir.SemanticModel{
		"bell":     buildBell,
		"teleport": buildTeleport,
	} {
		t.Run(name, func(t *testing.T) {
			model := build(t)

			text, err := Print(model)
			require.NoError(t, err)

			program, err := ParseString(name+".qir", text)
			require.NoError(t, err)

			lowered, err := Lower(program)
			require.NoError(t, err)
			require.Equal(t, model, lowered)

			// Printing the lowered model must reproduce the text exactly.
			again, err := Print(lowered)
			require.NoError(t, err)
			assert.Equal(t, text, again)
		})
	}
}

func TestPrintTeleport(t *testing.T) {
	text, err := Print(buildTeleport(t))
	require.NoError(t, err)

	expected := `module "teleport" {
    source "teleport.qs"
    qreg qubit 2
    creg result 2
    static_qubit_alloc true
    static_result_alloc true
    declare @probe(i64, double) : i1
    declare @log_result(result)
    body {
        h qubit0
        rz 0.25, qubit0
        cx qubit0, qubit1
        m qubit0, result0
        if result0 {
            x qubit1
            %0:i1 = call @probe(5:i64, 0.5)
        } else {
            call @log_result(result0)
        }
        %1:i64 = add 5:i64, 3:i64
    }
}
`
	assert.Equal(t, expected, text)
}

func TestLowerDefaults(t *testing.T) {
	program, err := ParseString("empty.qir", `module "empty" {
    body {
    }
}
`)
	require.NoError(t, err)

	model, err := Lower(program)
	require.NoError(t, err)
	assert.Equal(t, "empty", model.Name)
	assert.Empty(t, model.SourceFile)
	assert.True(t, model.StaticQubitAlloc)
	assert.True(t, model.StaticResultAlloc)
	assert.Empty(t, model.Instructions)
}

func TestLowerAllocFlagsOff(t *testing.T) {
	program, err := ParseString("dynamic.qir", `module "dynamic" {
    qreg qubit 1
    static_qubit_alloc false
    static_result_alloc false
    body {
        h qubit0
    }
}
`)
	require.NoError(t, err)

	model, err := Lower(program)
	require.NoError(t, err)
	assert.False(t, model.StaticQubitAlloc)
	assert.False(t, model.StaticResultAlloc)
}

func TestLowerComments(t *testing.T) {
	program, err := ParseString("commented.qir", `; header comment
module "commented" {
    qreg qubit 1 ; one qubit
    body {
        h qubit0 ; prepare
    }
}
`)
	require.NoError(t, err)

	model, err := Lower(program)
	require.NoError(t, err)
	require.Len(t, model.Instructions, 1)
	assert.Equal(t, ir.Single{Op: ir.GateH, Qubit: "qubit0"}, model.Instructions[0])
}

func TestLowerRejects(t *testing.T) {
	cases := map[string]string{
		"undeclared function": `module "m" {
    body {
        call @nope()
    }
}
`,
		"unknown type": `module "m" {
    declare @f(widget)
    body {
    }
}
`,
		"oversized integer width": `module "m" {
    declare @f(i99999999999)
    body {
    }
}
`,
		"reference to missing register": `module "m" {
    qreg qubit 1
    body {
        h ancilla0
    }
}
`,
		"reference without slot index": `module "m" {
    qreg qubit 1
    body {
        h qubit
    }
}
`,
		"non-double rotation angle": `module "m" {
    qreg qubit 1
    body {
        rz 5:i64, qubit0
    }
}
`,
		"literal too wide for annotation": `module "m" {
    body {
        %0:i8 = add 256:i8, 1:i8
    }
}
`,
		"duplicate quantum register": `module "m" {
    qreg qubit 1
    qreg qubit 2
    body {
    }
}
`,
		"duplicate function": `module "m" {
    declare @f()
    declare @f()
    body {
    }
}
`,
		"measure into qubit": `module "m" {
    qreg qubit 2
    creg result 1
    body {
        m qubit0, qubit1
    }
}
`,
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			program, err := ParseString(name+".qir", src)
			require.NoError(t, err)

			_, err = Lower(program)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrorBackend), "got %v", err)
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"missing module name": `module {
    body {
    }
}
`,
		"missing else branch": `module "m" {
    qreg qubit 1
    creg result 1
    body {
        if result0 {
            h qubit0
        }
    }
}
`,
		"unknown gate": `module "m" {
    qreg qubit 1
    body {
        warp qubit0
    }
}
`,
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseString(name+".qir", src)
			require.Error(t, err)
		})
	}
}

func TestDoubleFormatting(t *testing.T) {
	module := builder.NewModule("angles", 1, 0)
	qis := builder.NewQisBuilder(module.Builder())
	q := module.Qubits()[0]

	require.NoError(t, qis.RX(1.0, q))
	require.NoError(t, qis.RY(0.5, q))
	require.NoError(t, qis.RZ(2.5e-7, q))

	model, err := module.Finish()
	require.NoError(t, err)

	text, err := Print(model)
	require.NoError(t, err)
	assert.Contains(t, text, "rx 1.0, qubit0")
	assert.Contains(t, text, "ry 0.5, qubit0")
	assert.Contains(t, text, "rz 2.5e-07, qubit0")

	// A whole-valued angle must still lex as a float on the way back in.
	program, err := ParseString("angles.qir", text)
	require.NoError(t, err)
	lowered, err := Lower(program)
	require.NoError(t, err)
	require.Equal(t, model, lowered)
}
