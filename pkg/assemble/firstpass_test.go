package assemble

import (
	"testing"

	"tenbit/pkg/isa"
	"tenbit/pkg/symtab"
)

func TestRunFirstPassAssignsCodeAndDataAddresses(t *testing.T) {
	src := []string{
		"MAIN: mov r1,r2",
		"stop",
		"VAL: .data 5,6,7",
	}
	fp := RunFirstPass(src)
	if len(fp.Errors) != 0 {
		t.Fatalf("Errors = %v; want none", fp.Errors)
	}

	main, ok := fp.Symbols.Lookup("MAIN")
	if !ok || main.Address != isa.BaseAddress || !main.Flags.Has(symtab.Code) {
		t.Errorf("MAIN = %+v, %v; want address %d, Code flag", main, ok, isa.BaseAddress)
	}

	val, ok := fp.Symbols.Lookup("VAL")
	if !ok || !val.Flags.Has(symtab.Data) {
		t.Fatalf("VAL = %+v, %v; want Data flag present", val, ok)
	}
	if val.Address != isa.BaseAddress+fp.ICFinal {
		t.Errorf("VAL.Address = %d; want %d (base + ICFinal)", val.Address, isa.BaseAddress+fp.ICFinal)
	}
}

func TestRunFirstPassDuplicateLabelDefinition(t *testing.T) {
	src := []string{
		"FOO: .data 1",
		"FOO: .data 2",
	}
	fp := RunFirstPass(src)
	if len(fp.Errors) == 0 {
		t.Fatal("Errors is empty; want a duplicate-label error")
	}
}

func TestRunFirstPassEntryOnUndefinedSymbolFails(t *testing.T) {
	src := []string{
		".entry GHOST",
		"stop",
	}
	fp := RunFirstPass(src)
	if len(fp.Errors) == 0 {
		t.Fatal("Errors is empty; want an entry-symbol-not-defined error")
	}
}

func TestRunFirstPassEntryForwardReferenceResolves(t *testing.T) {
	src := []string{
		".entry MAIN",
		"MAIN: stop",
	}
	fp := RunFirstPass(src)
	if len(fp.Errors) != 0 {
		t.Fatalf("Errors = %v; want none", fp.Errors)
	}
	sym, ok := fp.Symbols.Lookup("MAIN")
	if !ok || !sym.Flags.Has(symtab.Entry) || !sym.Flags.Has(symtab.Code) {
		t.Errorf("MAIN = %+v, %v; want Entry|Code", sym, ok)
	}
}

func TestRunFirstPassExternCannotBeEntry(t *testing.T) {
	src := []string{
		".extern FOO",
		".entry FOO",
		"stop",
	}
	fp := RunFirstPass(src)
	if len(fp.Errors) == 0 {
		t.Fatal("Errors is empty; want extern-cannot-be-entry error")
	}
}

func TestInstructionWordsTwoRegistersShareOneWord(t *testing.T) {
	src := []string{"mov r1,r2"}
	fp := RunFirstPass(src)
	if len(fp.Errors) != 0 {
		t.Fatalf("Errors = %v; want none", fp.Errors)
	}
	if got := InstructionWords(fp.Parsed[0]); got != 2 {
		t.Errorf("InstructionWords(mov r1,r2) = %d; want 2", got)
	}
}

func TestInstructionWordsMatrixOperandCostsTwoWords(t *testing.T) {
	src := []string{"M: .mat [2][2] 1,2,3,4", "lea M[r1][r2],r3"}
	fp := RunFirstPass(src)
	if len(fp.Errors) != 0 {
		t.Fatalf("Errors = %v; want none", fp.Errors)
	}
	// opcode word + two matrix words + destination register word
	if got := InstructionWords(fp.Parsed[1]); got != 4 {
		t.Errorf("InstructionWords(lea M[r1][r2],r3) = %d; want 4", got)
	}
}

func TestInstructionWordsNoOperand(t *testing.T) {
	src := []string{"stop"}
	fp := RunFirstPass(src)
	if got := InstructionWords(fp.Parsed[0]); got != 1 {
		t.Errorf("InstructionWords(stop) = %d; want 1", got)
	}
}
