package x86_64

import (
	"fmt"

	"github.com/keurnel/runasm/internal/debugcontext"
)

// SequenceTraced assembles insns exactly like Sequence, additionally
// recording one Trace entry per instruction into dbg — its selected
// Form's encoded length and its Intel-syntax text — before returning the
// same result Sequence would. dbg may be nil, in which case this behaves
// identically to Sequence. This is the optional pass-tracing hook the
// two-pass linker design calls for, without growing Sequence's own
// signature for a diagnostic most callers never need.
func SequenceTraced(insns []Insn, dbg *debugcontext.DebugContext) ([]byte, error) {
	code, offsets, err := SequenceOffsets(insns)
	if dbg == nil {
		return code, err
	}

	dbg.SetPhase("link")
	if err != nil {
		dbg.Error(dbg.Loc(0, 0), err.Error())
		return nil, err
	}

	for i, ins := range insns {
		length := offsets[i+1] - offsets[i]
		dbg.Trace(dbg.Loc(i, offsets[i]), fmt.Sprintf("%s -> %d bytes", Stringify(ins), length))
	}
	return code, nil
}
