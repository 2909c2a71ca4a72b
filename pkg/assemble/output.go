package assemble

import (
	"fmt"
	"sort"
	"strings"

	"tenbit/pkg/isa"
	"tenbit/pkg/symtab"
	"tenbit/pkg/word"
)

// ObjectText renders the object file body described in spec.md §7: a
// header line of base-4 code/data lengths, followed by one
// "<address>\t<word>" line per code word and then per data word, addresses
// starting at isa.BaseAddress and increasing by one.
func ObjectText(img *Image) string {
	var b strings.Builder

	codeLen := word.EncodeAddress(len(img.CodeWords), 3)
	dataLen := word.EncodeAddress(len(img.DataWords), 2)
	fmt.Fprintf(&b, "%s %s\n", codeLen, dataLen)

	addr := isa.BaseAddress
	for _, w := range img.CodeWords {
		fmt.Fprintf(&b, "%s\t%s\n", word.EncodeAddress(addr, 4), word.EncodeWord(w))
		addr++
	}
	for _, w := range img.DataWords {
		fmt.Fprintf(&b, "%s\t%s\n", word.EncodeAddress(addr, 4), word.EncodeWord(w))
		addr++
	}

	return b.String()
}

// EntryText renders the entry-symbol file: one "<name>\t<addr>" line per
// symbol carrying the Entry flag. Returns "", false when there are no
// entries — the file must not be created in that case (spec.md §7).
func EntryText(syms *symtab.Table) (string, bool) {
	var names []string
	syms.Iter(func(sym *symtab.Symbol) {
		if sym.Flags.Has(symtab.Entry) {
			names = append(names, sym.Name)
		}
	})
	if len(names) == 0 {
		return "", false
	}

	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		sym, _ := syms.Lookup(name)
		fmt.Fprintf(&b, "%s\t%s\n", name, word.EncodeAddress(sym.Address, 4))
	}
	return b.String(), true
}

// ExternalsText renders the external-references file: one
// "<name>\t<addr>" line per recorded usage, in the order second pass
// produced them (the same symbol may appear multiple times). Returns
// "", false when there are no external usages.
func ExternalsText(img *Image) (string, bool) {
	if len(img.ExtUses) == 0 {
		return "", false
	}
	var b strings.Builder
	for _, use := range img.ExtUses {
		fmt.Fprintf(&b, "%s\t%s\n", use.Name, word.EncodeAddress(use.Address, 4))
	}
	return b.String(), true
}
