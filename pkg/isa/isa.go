// Package isa describes the fixed surface of the instruction set: sizing
// constants, reserved names, the opcode table, and the addressing-mode
// rules each opcode enforces. Nothing here depends on source text; pkg/line
// and pkg/assemble consume this table to drive parsing and encoding.
package isa

// Sizing constants, fixed by the target machine.
const (
	MaxLineLen    = 80  // max source line length, excluding terminator
	MaxLabelLen   = 30  // max label length
	MaxMatrixDim  = 15  // max rows or cols in a .mat directive
	MaxDataItems  = 32  // max values on a single .data line
	ImageLen      = 256 // words of addressable image (code + data)
	BaseAddress   = 100 // address of the first code word
	MaxStringLen  = ImageLen - 1
)

// Mode is one of the four addressing modes an operand can use.
type Mode int

const (
	Immediate Mode = iota
	Direct
	MatrixAccess
	RegisterDirect
)

// Opcode enumerates the 16 mnemonics.
type Opcode int

const (
	Mov Opcode = iota
	Cmp
	Add
	Sub
	Lea
	Clr
	Not
	Inc
	Dec
	Jmp
	Bne
	Jsr
	Red
	Prn
	Rts
	Stop
)

// mnemonics maps source text to Opcode; lookups are case-sensitive, as the
// reference assembly language is.
var mnemonics = map[string]Opcode{
	"mov":  Mov,
	"cmp":  Cmp,
	"add":  Add,
	"sub":  Sub,
	"lea":  Lea,
	"clr":  Clr,
	"not":  Not,
	"inc":  Inc,
	"dec":  Dec,
	"jmp":  Jmp,
	"bne":  Bne,
	"jsr":  Jsr,
	"red":  Red,
	"prn":  Prn,
	"rts":  Rts,
	"stop": Stop,
}

// opcodeNames is the inverse of mnemonics, used for diagnostics.
var opcodeNames = map[Opcode]string{
	Mov: "mov", Cmp: "cmp", Add: "add", Sub: "sub", Lea: "lea",
	Clr: "clr", Not: "not", Inc: "inc", Dec: "dec", Jmp: "jmp",
	Bne: "bne", Jsr: "jsr", Red: "red", Prn: "prn", Rts: "rts", Stop: "stop",
}

func (o Opcode) String() string {
	return opcodeNames[o]
}

// operandCount is the fixed required operand count per opcode.
var operandCount = map[Opcode]int{
	Mov: 2, Cmp: 2, Add: 2, Sub: 2, Lea: 2,
	Clr: 1, Not: 1, Inc: 1, Dec: 1, Jmp: 1, Bne: 1, Jsr: 1, Red: 1,
	Prn: 1,
	Rts: 0, Stop: 0,
}

// LookupMnemonic returns the opcode for a mnemonic token, if any.
func LookupMnemonic(s string) (Opcode, bool) {
	op, ok := mnemonics[s]
	return op, ok
}

// OperandCount returns how many comma-separated operands an opcode requires.
func (o Opcode) OperandCount() int {
	return operandCount[o]
}

// Directives, the 5 reserved dot-words.
const (
	DirData   = ".data"
	DirString = ".string"
	DirMat    = ".mat"
	DirEntry  = ".entry"
	DirExtern = ".extern"
)

var directives = map[string]bool{
	DirData: true, DirString: true, DirMat: true, DirEntry: true, DirExtern: true,
}

// IsDirective reports whether s names one of the 5 directives.
func IsDirective(s string) bool {
	return directives[s]
}

// Macro delimiters.
const (
	MacroStart = "mcro"
	MacroEnd   = "mcrend"
)

// registerNames holds "r0".."r7"; register names are reserved identifiers
// just like mnemonics and directives.
var registerNames = func() map[string]bool {
	m := make(map[string]bool, 8)
	for i := 0; i < 8; i++ {
		m["r"+string(rune('0'+i))] = true
	}
	return m
}()

// reserved is the full union of mnemonics, directives, register names, and
// macro delimiters: no label, macro name, or symbol may equal any of them.
var reserved = func() map[string]bool {
	m := make(map[string]bool, len(mnemonics)+len(directives)+len(registerNames)+2)
	for name := range mnemonics {
		m[name] = true
	}
	for name := range directives {
		m[name] = true
	}
	for name := range registerNames {
		m[name] = true
	}
	m[MacroStart] = true
	m[MacroEnd] = true
	return m
}()

// IsReserved reports whether name collides with a mnemonic, directive,
// register name, or macro delimiter.
func IsReserved(name string) bool {
	return reserved[name]
}

// modeRule describes which addressing modes are legal in the source and
// destination operand slots for a family of opcodes.
type modeRule struct {
	src map[Mode]bool
	dst map[Mode]bool
}

func allModes() map[Mode]bool {
	return map[Mode]bool{Immediate: true, Direct: true, MatrixAccess: true, RegisterDirect: true}
}

func allExceptImmediate() map[Mode]bool {
	return map[Mode]bool{Direct: true, MatrixAccess: true, RegisterDirect: true}
}

func directOrMatrix() map[Mode]bool {
	return map[Mode]bool{Direct: true, MatrixAccess: true}
}

func none() map[Mode]bool {
	return map[Mode]bool{}
}

// rules holds one entry per opcode, built once.
var rules = func() map[Opcode]modeRule {
	m := make(map[Opcode]modeRule, 16)
	twoOperand := modeRule{src: allModes(), dst: allExceptImmediate()}
	for _, op := range []Opcode{Mov, Add, Sub} {
		m[op] = twoOperand
	}
	// cmp permits Immediate in both slots (the permissive revision; see
	// SPEC_FULL.md §8 and DESIGN.md for the two historical variants).
	m[Cmp] = modeRule{src: allModes(), dst: allModes()}
	m[Lea] = modeRule{src: directOrMatrix(), dst: allExceptImmediate()}

	singleOperand := modeRule{src: none(), dst: allExceptImmediate()}
	for _, op := range []Opcode{Clr, Not, Inc, Dec, Jmp, Bne, Jsr, Red} {
		m[op] = singleOperand
	}
	m[Prn] = modeRule{src: none(), dst: allModes()}

	noOperand := modeRule{src: none(), dst: none()}
	m[Rts] = noOperand
	m[Stop] = noOperand
	return m
}()

// SourceAllows reports whether mode is legal as opcode's source operand.
func SourceAllows(op Opcode, mode Mode) bool {
	return rules[op].src[mode]
}

// DestAllows reports whether mode is legal as opcode's destination operand
// (for single-operand instructions, the lone operand is validated here).
func DestAllows(op Opcode, mode Mode) bool {
	return rules[op].dst[mode]
}
