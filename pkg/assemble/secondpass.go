package assemble

import (
	"tenbit/pkg/asmerr"
	"tenbit/pkg/isa"
	"tenbit/pkg/line"
	"tenbit/pkg/symtab"
	"tenbit/pkg/word"
)

// ExtUse records one external-symbol usage: the symbol's name and the
// absolute address of the (zero-valued, ARE=E) word generated for it.
type ExtUse struct {
	Name    string
	Address int
}

// Image is the second pass's output: the code and data words in emission
// order (code words start at isa.BaseAddress; data words follow
// immediately after the last code word) and the external-usage list.
type Image struct {
	CodeWords []word.Word
	DataWords []word.Word
	ExtUses   []ExtUse
}

// RunSecondPass encodes every parsed line into code or data words, using
// the parsed lines and the rebased symbol table a prior, error-free
// RunFirstPass produced.
// Callers must not invoke this when fp.Errors is non-empty: an inconsistent
// symbol table would make "undefined symbol" diagnostics meaningless.
func RunSecondPass(fp FirstPassResult) (*Image, []*asmerr.Error) {
	img := &Image{}
	var errs []*asmerr.Error
	codePos := 0

	for i, pl := range fp.Parsed {
		lineNo := i + 1
		switch pl.Kind {
		case line.OperationLine:
			words, extUses, err := encodeOperation(pl, fp.Symbols, isa.BaseAddress+codePos, lineNo)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			img.CodeWords = append(img.CodeWords, words...)
			img.ExtUses = append(img.ExtUses, extUses...)
			codePos += len(words)

		case line.DirectiveLine:
			switch pl.Directive.Kind {
			case line.DataDirective:
				for _, v := range pl.Directive.Values {
					img.DataWords = append(img.DataWords, word.New(uint16(v), word.Absolute))
				}
			case line.StringDirective:
				for _, r := range pl.Directive.Text {
					img.DataWords = append(img.DataWords, word.New(uint16(r), word.Absolute))
				}
				img.DataWords = append(img.DataWords, word.New(0, word.Absolute))
			case line.MatDirective:
				for _, v := range pl.Directive.Cells {
					img.DataWords = append(img.DataWords, word.New(uint16(v), word.Absolute))
				}
			case line.EntryDirective, line.ExternDirective:
				// .entry and .extern emit nothing in the second pass.
			}

		case line.EmptyOrComment:
			// nothing to encode
		}
	}

	return img, errs
}

// encodeOperation encodes one Operation line into its words, returning any
// external-symbol usages it generated. firstWordAddr is the absolute
// address the instruction's own first word will occupy.
func encodeOperation(pl line.ParsedLine, syms *symtab.Table, firstWordAddr int, lineNo int) ([]word.Word, []ExtUse, *asmerr.Error) {
	ops := pl.Operands

	var srcMode, dstMode isa.Mode
	switch len(ops) {
	case 1:
		dstMode = ops[0].Mode
	case 2:
		srcMode = ops[0].Mode
		dstMode = ops[1].Mode
	}

	firstPayload := (uint16(pl.Opcode) << 4) | (uint16(srcMode) << 2) | uint16(dstMode)
	words := []word.Word{word.New(firstPayload, word.Absolute)}
	var extUses []ExtUse

	pos := firstWordAddr + 1 // address of the next word to be emitted

	emitSymbolWord := func(name string) (word.Word, *asmerr.Error) {
		sym, ok := syms.Lookup(name)
		if !ok {
			return 0, &asmerr.Error{Kind: asmerr.UndefinedSymbolUsed, Line: lineNo, Detail: name}
		}
		if sym.Flags.Has(symtab.Extern) {
			extUses = append(extUses, ExtUse{Name: name, Address: pos})
			return word.New(0, word.External), nil
		}
		return word.New(uint16(sym.Address), word.Relocatable), nil
	}

	switch {
	case len(ops) == 2 && ops[0].Mode == isa.RegisterDirect && ops[1].Mode == isa.RegisterDirect:
		combined := (uint16(ops[0].Reg) << 6) | (uint16(ops[1].Reg) << 2)
		words = append(words, word.Word(combined))

	default:
		for idx, op := range ops {
			// A single operand is stored in the source slot and merely
			// validated as a destination (spec.md §4.2); a second operand
			// of a two-operand instruction is always the destination.
			isSource := len(ops) == 1 || idx == 0
			switch op.Mode {
			case isa.Immediate:
				words = append(words, word.New(uint16(op.Imm), word.Absolute))
				pos++

			case isa.Direct:
				w, err := emitSymbolWord(op.Label)
				if err != nil {
					return nil, nil, err
				}
				words = append(words, w)
				pos++

			case isa.MatrixAccess:
				w, err := emitSymbolWord(op.Label)
				if err != nil {
					return nil, nil, err
				}
				words = append(words, w)
				pos++
				regsWord := (uint16(op.Row) << 6) | (uint16(op.Col) << 2)
				words = append(words, word.Word(regsWord))
				pos++

			case isa.RegisterDirect:
				shift := uint(2)
				if isSource {
					shift = 6
				}
				words = append(words, word.NewShifted(uint16(op.Reg), shift, word.Absolute))
				pos++
			}
		}
	}

	return words, extUses, nil
}
