package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qirgen/internal/types"
)

func TestNewIntWidthCheck(t *testing.T) {
	tests := []struct {
		name  string
		width uint32
		value uint64
		fits  bool
	}{
		{"zero fits width 1", 1, 0, true},
		{"one fits width 1", 1, 1, true},
		{"two overflows width 1", 1, 2, false},
		{"255 fits width 8", 8, 255, true},
		{"256 overflows width 8", 8, 256, false},
		{"max uint64 fits width 64", 64, math.MaxUint64, true},
		{"zero fits width 64", 64, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := NewInt(tt.width, tt.value)
			assert.Equal(t, tt.fits, ok)
			if tt.fits {
				assert.Equal(t, tt.width, n.Width())
				assert.Equal(t, tt.value, n.Value())
			}
		})
	}
}

func TestValueTypeDerivation(t *testing.T) {
	n, ok := NewInt(32, 7)
	require.True(t, ok)

	assert.Equal(t, types.Integer(32), n.Type())
	assert.Equal(t, types.Double, Double(0.5).Type())
	assert.Equal(t, types.Qubit, Qubit("qubit0").Type())
	assert.Equal(t, types.Result, Result("result0").Type())
	assert.Equal(t, types.Integer(64), Variable{Ty: types.Integer(64), ID: 3}.Type())
}

func TestVariableIdentityAndSuccessor(t *testing.T) {
	v0 := Variable{Ty: types.Integer(64)}
	v1 := v0.Next(types.Bool())

	assert.Equal(t, uint64(0), v0.ID)
	assert.Equal(t, uint64(1), v1.ID)
	assert.Equal(t, types.Bool(), v1.Ty, "successor takes the requested type")
	assert.NotEqual(t, v0, Variable{Ty: types.Integer(32)},
		"identity is (type, id), not id alone")
}

func TestBinKindNames(t *testing.T) {
	for k := And; k <= ICmpSle; k++ {
		parsed, ok := BinKindFromString(k.String())
		require.True(t, ok, "every kind must round-trip through its name")
		assert.Equal(t, k, parsed)
	}

	_, ok := BinKindFromString("udiv")
	assert.False(t, ok, "the operation set is closed")

	assert.False(t, Add.IsComparison())
	assert.False(t, LShr.IsComparison())
	assert.True(t, ICmpEq.IsComparison())
	assert.True(t, ICmpSle.IsComparison())
}

func TestGateNames(t *testing.T) {
	for op := GateH; op <= GateReset; op++ {
		parsed, ok := SingleOpFromString(op.String())
		require.True(t, ok)
		assert.Equal(t, op, parsed)
	}
	for op := GateCX; op <= GateCZ; op++ {
		parsed, ok := ControlledOpFromString(op.String())
		require.True(t, ok)
		assert.Equal(t, op, parsed)
	}
	for op := GateRX; op <= GateRZ; op++ {
		parsed, ok := RotationOpFromString(op.String())
		require.True(t, ok)
		assert.Equal(t, op, parsed)
	}
}

func TestRegisterIDs(t *testing.T) {
	q := QuantumRegister{Name: "qubit", Index: 2}
	assert.Equal(t, "qubit2", q.ID())

	c := ClassicalRegister{Name: "result", Size: 4}
	assert.Equal(t, "result0", c.ID(0))
	assert.Equal(t, "result3", c.ID(3))
}
