// Package assemble contains the two passes that turn parsed lines into a
// symbol table, a code/data image, and the external-reference list, plus
// the per-file driver that wires the whole pipeline together.
package assemble

import (
	"tenbit/pkg/asmerr"
	"tenbit/pkg/isa"
	"tenbit/pkg/line"
	"tenbit/pkg/symtab"
)

// FirstPassResult is everything the second pass needs: the symbol table
// (already rebased), the parsed lines (aligned 1:1 with the expanded
// source; a line that failed to parse is left as the zero ParsedLine,
// whose Kind is EmptyOrComment), and the final
// instruction/data counters.
type FirstPassResult struct {
	Symbols *symtab.Table
	Parsed  []line.ParsedLine
	ICFinal int
	DCFinal int
	Errors  []*asmerr.Error
}

// RunFirstPass walks expandedLines (already macro-expanded, 1-based line
// numbers implied by index+1), builds the symbol table, and computes
// IC_final/DC_final. It never aborts early: every line is parsed so as
// many diagnostics as possible can surface (spec.md §4.4).
func RunFirstPass(expandedLines []string) FirstPassResult {
	syms := symtab.New()
	parsed := make([]line.ParsedLine, len(expandedLines))
	var errs []*asmerr.Error
	ic, dc := 0, 0

	for i, raw := range expandedLines {
		lineNo := i + 1
		pl, err := line.Parse(raw, lineNo)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		parsed[i] = pl

		switch pl.Kind {
		case line.EmptyOrComment:
			// nothing to do

		case line.OperationLine:
			if pl.HasLabel {
				if defErr := defineLabel(syms, pl.Label, isa.BaseAddress+ic, symtab.Code, lineNo); defErr != nil {
					errs = append(errs, defErr)
				}
			}
			ic += InstructionWords(pl)

		case line.DirectiveLine:
			switch pl.Directive.Kind {
			case line.DataDirective:
				if pl.HasLabel {
					if defErr := defineLabel(syms, pl.Label, isa.BaseAddress+dc, symtab.Data, lineNo); defErr != nil {
						errs = append(errs, defErr)
					}
				}
				dc += len(pl.Directive.Values)

			case line.StringDirective:
				if pl.HasLabel {
					if defErr := defineLabel(syms, pl.Label, isa.BaseAddress+dc, symtab.Data, lineNo); defErr != nil {
						errs = append(errs, defErr)
					}
				}
				dc += len(pl.Directive.Text) + 1

			case line.MatDirective:
				if pl.HasLabel {
					if defErr := defineLabel(syms, pl.Label, isa.BaseAddress+dc, symtab.Data, lineNo); defErr != nil {
						errs = append(errs, defErr)
					}
				}
				dc += pl.Directive.Rows * pl.Directive.Cols

			case line.EntryDirective:
				// A label on an .entry/.extern line itself is ignored
				// (spec.md §4.4 step 2); only Directive.Name matters.
				if defErr := declareFlag(syms, pl.Directive.Name, symtab.Entry, lineNo); defErr != nil {
					errs = append(errs, defErr)
				}

			case line.ExternDirective:
				if defErr := declareFlag(syms, pl.Directive.Name, symtab.Extern, lineNo); defErr != nil {
					errs = append(errs, defErr)
				}
			}
		}
	}

	syms.BumpDataAddresses(ic)

	syms.Iter(func(sym *symtab.Symbol) {
		if !sym.Flags.Has(symtab.Entry) {
			return
		}
		if sym.Flags.Has(symtab.Extern) {
			errs = append(errs, &asmerr.Error{Kind: asmerr.ExternalSymbolCannotBeEntry, Detail: sym.Name})
			return
		}
		if !sym.Flags.Has(symtab.Code) && !sym.Flags.Has(symtab.Data) {
			errs = append(errs, &asmerr.Error{Kind: asmerr.EntrySymbolNotDefined, Detail: sym.Name})
		}
	})

	return FirstPassResult{Symbols: syms, Parsed: parsed, ICFinal: ic, DCFinal: dc, Errors: errs}
}

// defineLabel records a Code or Data label at address. A name that is
// already bound to a Code or Data address is a duplicate definition — that
// check happens here, ahead of symtab.Insert, because Insert's own merge
// rules (spec.md §4.3) only reject flag *conflicts* (Code vs Data, Extern
// vs Code/Data, ...), not a second definition carrying the very same flag.
func defineLabel(syms *symtab.Table, name string, address int, flag symtab.Flag, lineNo int) *asmerr.Error {
	if existing, ok := syms.Lookup(name); ok && (existing.Flags.Has(symtab.Code) || existing.Flags.Has(symtab.Data)) {
		return &asmerr.Error{Kind: asmerr.DuplicateLabelDefinition, Line: lineNo, Detail: name}
	}
	if !syms.Insert(name, address, flag) {
		return &asmerr.Error{Kind: asmerr.DuplicateLabelDefinition, Line: lineNo, Detail: name}
	}
	return nil
}

// declareFlag records an .entry or .extern declaration, translating the
// symtab merge-conflict outcomes into the specific semantic errors spec.md
// §7 names.
func declareFlag(syms *symtab.Table, name string, flag symtab.Flag, lineNo int) *asmerr.Error {
	if existing, ok := syms.Lookup(name); ok {
		switch {
		case flag == symtab.Extern && existing.Flags.Has(symtab.Entry):
			return &asmerr.Error{Kind: asmerr.ExternalSymbolCannotBeEntry, Line: lineNo, Detail: name}
		case flag == symtab.Entry && existing.Flags.Has(symtab.Extern):
			return &asmerr.Error{Kind: asmerr.ExternalSymbolCannotBeEntry, Line: lineNo, Detail: name}
		case flag == symtab.Entry && existing.Flags.Has(symtab.Entry):
			return &asmerr.Error{Kind: asmerr.DuplicateEntryDeclaration, Line: lineNo, Detail: name}
		case flag == symtab.Extern && (existing.Flags.Has(symtab.Code) || existing.Flags.Has(symtab.Data)):
			return &asmerr.Error{Kind: asmerr.DuplicateLabelDefinition, Line: lineNo, Detail: name}
		}
	}
	if !syms.Insert(name, 0, flag) {
		return &asmerr.Error{Kind: asmerr.DuplicateEntryDeclaration, Line: lineNo, Detail: name}
	}
	return nil
}

// InstructionWords computes how many words pl encodes to, per spec.md §3's
// Operand sizing rules and §4.4's correction for a shared register word.
func InstructionWords(pl line.ParsedLine) int {
	words := 1
	for _, op := range pl.Operands {
		switch op.Mode {
		case isa.MatrixAccess:
			words += 2
		default:
			words++
		}
	}
	if len(pl.Operands) == 2 &&
		pl.Operands[0].Mode == isa.RegisterDirect && pl.Operands[1].Mode == isa.RegisterDirect {
		words--
	}
	return words
}
