// Package grammar defines the textual form of a finished program and the
// conversions between that text, its parse tree, and the semantic model.
// The binary form lives in internal/bitcode and shares this package's
// model lowering.
package grammar

// Program is the parse tree of one textual module.
type Program struct {
	Name        string          `parser:"\"module\" @String \"{\""`
	Source      *string         `parser:"[ \"source\" @String ]"`
	QRegs       []*RegisterDecl `parser:"{ \"qreg\" @@ }"`
	CRegs       []*RegisterDecl `parser:"{ \"creg\" @@ }"`
	QubitAlloc  *string         `parser:"[ \"static_qubit_alloc\" @(\"true\" | \"false\") ]"`
	ResultAlloc *string         `parser:"[ \"static_result_alloc\" @(\"true\" | \"false\") ]"`
	Externals   []*ExternalDecl `parser:"{ @@ }"`
	Insts       []*Inst         `parser:"\"body\" \"{\" { @@ } \"}\" \"}\""`
}

// RegisterDecl declares a register family: a qreg line declares Size
// qubits with dense indices, a creg line declares one classical register
// of capacity Size.
type RegisterDecl struct {
	Name string `parser:"@Ident"`
	Size uint64 `parser:"@Int"`
}

// ExternalDecl declares a callable external function. A missing return
// annotation means void.
type ExternalDecl struct {
	Name   string     `parser:"\"declare\" \"@\" @Ident \"(\""`
	Params []*TypeRef `parser:"[ @@ { \",\" @@ } ] \")\""`
	Return *TypeRef   `parser:"[ \":\" @@ ]"`
}

// TypeRef names a value type: i<width>, double, qubit or result.
// Validation happens during lowering.
type TypeRef struct {
	Name string `parser:"@Ident"`
}

type Inst struct {
	If      *IfInst      `parser:"  @@"`
	Call    *CallInst    `parser:"| @@"`
	Bin     *BinInst     `parser:"| @@"`
	Ctl     *CtlInst     `parser:"| @@"`
	Rot     *RotInst     `parser:"| @@"`
	Measure *MeasureInst `parser:"| @@"`
	Single  *SingleInst  `parser:"| @@"`
}

type IfInst struct {
	Condition string  `parser:"\"if\" @Ident \"{\""`
	Then      []*Inst `parser:"{ @@ } \"}\""`
	Else      []*Inst `parser:"\"else\" \"{\" { @@ } \"}\""`
}

type CallInst struct {
	Result *VarRef    `parser:"[ @@ \"=\" ]"`
	Name   string     `parser:"\"call\" \"@\" @Ident \"(\""`
	Args   []*Operand `parser:"[ @@ { \",\" @@ } ] \")\""`
}

type BinInst struct {
	Result *VarRef  `parser:"@@ \"=\""`
	Kind   string   `parser:"@(\"and\" | \"or\" | \"xor\" | \"add\" | \"sub\" | \"mul\" | \"shl\" | \"lshr\" | \"icmp_eq\" | \"icmp_ne\" | \"icmp_ugt\" | \"icmp_uge\" | \"icmp_ult\" | \"icmp_ule\" | \"icmp_sgt\" | \"icmp_sge\" | \"icmp_slt\" | \"icmp_sle\")"`
	LHS    *Operand `parser:"@@ \",\""`
	RHS    *Operand `parser:"@@"`
}

type CtlInst struct {
	Op      string `parser:"@(\"cx\" | \"cz\")"`
	Control string `parser:"@Ident \",\""`
	Target  string `parser:"@Ident"`
}

type RotInst struct {
	Op    string   `parser:"@(\"rx\" | \"ry\" | \"rz\")"`
	Theta *Operand `parser:"@@ \",\""`
	Qubit string   `parser:"@Ident"`
}

type MeasureInst struct {
	Qubit  string `parser:"\"m\" @Ident \",\""`
	Target string `parser:"@Ident"`
}

type SingleInst struct {
	Op    string `parser:"@(\"h\" | \"s_adj\" | \"s\" | \"t_adj\" | \"t\" | \"x\" | \"y\" | \"z\" | \"reset\")"`
	Qubit string `parser:"@Ident"`
}

// VarRef names a builder-allocated variable with its type, e.g. %3:i64.
type VarRef struct {
	ID   uint64 `parser:"\"%\" @Int \":\""`
	Type string `parser:"@Ident"`
}

// IntLit is a width-annotated integer literal, e.g. 7:i32.
type IntLit struct {
	Value uint64 `parser:"@Int \":\""`
	Type  string `parser:"@Ident"`
}

// Operand is one instruction operand. A bare identifier is a qubit or
// result reference, classified against the declared registers during
// lowering.
type Operand struct {
	Var   *VarRef  `parser:"  @@"`
	Int   *IntLit  `parser:"| @@"`
	Float *float64 `parser:"| @Float"`
	Ref   *string  `parser:"| @Ident"`
}
