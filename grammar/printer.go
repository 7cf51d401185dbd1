package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"qirgen/internal/errors"
	"qirgen/internal/ir"
)

// Print renders a semantic model in the textual form. The output parses
// back into an equal model.
func Print(model *ir.SemanticModel) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "module %q {\n", model.Name)

	if model.SourceFile != "" {
		fmt.Fprintf(&b, "%ssource %q\n", indent(1), model.SourceFile)
	}

	for _, family := range qubitFamilies(model.Qubits) {
		fmt.Fprintf(&b, "%sqreg %s %d\n", indent(1), family.name, family.size)
	}
	for _, reg := range model.Registers {
		fmt.Fprintf(&b, "%screg %s %d\n", indent(1), reg.Name, reg.Size)
	}

	fmt.Fprintf(&b, "%sstatic_qubit_alloc %t\n", indent(1), model.StaticQubitAlloc)
	fmt.Fprintf(&b, "%sstatic_result_alloc %t\n", indent(1), model.StaticResultAlloc)

	for _, fn := range model.ExternalFunctions {
		writeDeclare(&b, fn)
	}

	fmt.Fprintf(&b, "%sbody {\n", indent(1))
	for _, inst := range model.Instructions {
		if err := writeInst(&b, inst, 2); err != nil {
			return "", err
		}
	}
	fmt.Fprintf(&b, "%s}\n", indent(1))
	b.WriteString("}\n")
	return b.String(), nil
}

func indent(level int) string {
	return strings.Repeat("    ", level)
}

type qubitFamily struct {
	name string
	size uint64
}

// qubitFamilies groups the per-qubit registers back into their declared
// families, preserving first-appearance order.
func qubitFamilies(qubits []ir.QuantumRegister) []qubitFamily {
	families := make([]qubitFamily, 0, 1)
	byName := make(map[string]int)
	for _, q := range qubits {
		i, ok := byName[q.Name]
		if !ok {
			byName[q.Name] = len(families)
			families = append(families, qubitFamily{name: q.Name})
			i = len(families) - 1
		}
		families[i].size++
	}
	return families
}

func writeDeclare(b *strings.Builder, fn ir.ExternalFunction) {
	params := make([]string, len(fn.Type.Params))
	for i, ty := range fn.Type.Params {
		params[i] = ty.String()
	}
	fmt.Fprintf(b, "%sdeclare @%s(%s)", indent(1), fn.Name, strings.Join(params, ", "))
	if fn.Type.Return.HasValue {
		fmt.Fprintf(b, " : %s", fn.Type.Return.Type)
	}
	b.WriteString("\n")
}

func writeInst(b *strings.Builder, inst ir.Instruction, level int) error {
	switch inst := inst.(type) {
	case ir.Single:
		fmt.Fprintf(b, "%s%s %s\n", indent(level), inst.Op, inst.Qubit)
	case ir.Controlled:
		fmt.Fprintf(b, "%s%s %s, %s\n", indent(level), inst.Op, inst.Control, inst.Target)
	case ir.Rotated:
		theta, err := formatValue(inst.Theta)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "%s%s %s, %s\n", indent(level), inst.Op, theta, inst.Qubit)
	case ir.Measure:
		fmt.Fprintf(b, "%sm %s, %s\n", indent(level), inst.Qubit, inst.Target)
	case ir.BinOp:
		lhs, err := formatValue(inst.LHS)
		if err != nil {
			return err
		}
		rhs, err := formatValue(inst.RHS)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "%s%s = %s %s, %s\n", indent(level), formatVariable(inst.Result), inst.Kind, lhs, rhs)
	case ir.Call:
		args := make([]string, len(inst.Args))
		for i, arg := range inst.Args {
			s, err := formatValue(arg)
			if err != nil {
				return err
			}
			args[i] = s
		}
		b.WriteString(indent(level))
		if inst.Result != nil {
			fmt.Fprintf(b, "%s = ", formatVariable(*inst.Result))
		}
		fmt.Fprintf(b, "call @%s(%s)\n", inst.Name, strings.Join(args, ", "))
	case ir.If:
		fmt.Fprintf(b, "%sif %s {\n", indent(level), inst.Condition)
		for _, then := range inst.Then {
			if err := writeInst(b, then, level+1); err != nil {
				return err
			}
		}
		fmt.Fprintf(b, "%s} else {\n", indent(level))
		for _, els := range inst.Else {
			if err := writeInst(b, els, level+1); err != nil {
				return err
			}
		}
		fmt.Fprintf(b, "%s}\n", indent(level))
	default:
		return errors.Backend("cannot print instruction %T", inst)
	}
	return nil
}

func formatValue(v ir.Value) (string, error) {
	switch v := v.(type) {
	case ir.Int:
		return fmt.Sprintf("%d:%s", v.Value(), v.Type()), nil
	case ir.Double:
		return formatDouble(float64(v)), nil
	case ir.Qubit:
		return string(v), nil
	case ir.Result:
		return string(v), nil
	case ir.Variable:
		return formatVariable(v), nil
	}
	return "", errors.Backend("cannot print value %T", v)
}

func formatVariable(v ir.Variable) string {
	return fmt.Sprintf("%%%d:%s", v.ID, v.Ty)
}

// formatDouble keeps the token lexable as a Float by forcing a dot when
// the shortest rendering has neither a dot nor an exponent.
func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
