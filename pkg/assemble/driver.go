package assemble

import (
	"strings"

	"tenbit/pkg/asmerr"
	"tenbit/pkg/fsio"
	"tenbit/pkg/macro"
)

// AssembleFile runs the full pipeline for one base name (no extension):
// read "<base>.as", macro-expand it to "<base>.am", run the first and
// second pass, and on success write "<base>.ob" and, when non-empty,
// "<base>.ent" and "<base>.ext". It returns the accumulated diagnostics;
// an empty slice means the file assembled cleanly.
//
// Per spec.md §4.1/§4.5/§7, no output file for a phase is left on disk
// when that phase fails, and a stale file from an earlier successful run
// is removed if the current run no longer produces it (e.g. a file that
// used to declare externals and no longer does).
func AssembleFile(base string) []*asmerr.Error {
	srcPath := base + ".as"
	amPath := base + ".am"
	objPath := base + ".ob"
	entPath := base + ".ent"
	extPath := base + ".ext"

	lines, err := fsio.ReadLines(srcPath)
	if err != nil {
		return []*asmerr.Error{{Kind: asmerr.CannotOpenFile, File: srcPath, Detail: err.Error()}}
	}

	expanded, macroErrs := macro.Expand(lines)
	if len(macroErrs) > 0 {
		fsio.RemoveIfExists(amPath)
		return stampFile(macroErrs, srcPath)
	}

	amText := strings.Join(expanded, "\n")
	if len(expanded) > 0 {
		amText += "\n"
	}
	if err := fsio.WriteTextAtomic(amPath, amText); err != nil {
		return []*asmerr.Error{{Kind: asmerr.WriteFailed, File: amPath, Detail: err.Error()}}
	}

	fp := RunFirstPass(expanded)
	if len(fp.Errors) > 0 {
		fsio.RemoveIfExists(objPath)
		fsio.RemoveIfExists(entPath)
		fsio.RemoveIfExists(extPath)
		return stampFile(fp.Errors, srcPath)
	}

	img, secErrs := RunSecondPass(fp)
	if len(secErrs) > 0 {
		fsio.RemoveIfExists(objPath)
		fsio.RemoveIfExists(entPath)
		fsio.RemoveIfExists(extPath)
		return stampFile(secErrs, srcPath)
	}

	return writeOutputs(fp, img, objPath, entPath, extPath, srcPath)
}

func writeOutputs(fp FirstPassResult, img *Image, objPath, entPath, extPath, srcPath string) []*asmerr.Error {
	objText := ObjectText(img)
	entText, hasEnt := EntryText(fp.Symbols)
	extText, hasExt := ExternalsText(img)

	var written []string
	fail := func(path string, cause error) []*asmerr.Error {
		for _, p := range written {
			fsio.RemoveIfExists(p)
		}
		return []*asmerr.Error{{Kind: asmerr.WriteFailed, File: srcPath, Detail: path + ": " + cause.Error()}}
	}

	if err := fsio.WriteTextAtomic(objPath, objText); err != nil {
		return fail(objPath, err)
	}
	written = append(written, objPath)

	if hasEnt {
		if err := fsio.WriteTextAtomic(entPath, entText); err != nil {
			return fail(entPath, err)
		}
		written = append(written, entPath)
	} else {
		fsio.RemoveIfExists(entPath)
	}

	if hasExt {
		if err := fsio.WriteTextAtomic(extPath, extText); err != nil {
			return fail(extPath, err)
		}
		written = append(written, extPath)
	} else {
		fsio.RemoveIfExists(extPath)
	}

	return nil
}

func stampFile(errs []*asmerr.Error, file string) []*asmerr.Error {
	out := make([]*asmerr.Error, len(errs))
	for i, e := range errs {
		cp := *e
		cp.File = file
		out[i] = &cp
	}
	return out
}
