package expand

import "github.com/paulocustodio/bfpp/internal/token"

// builtinFunc is the signature every built-in operator handler satisfies.
// It owns consuming tok and whatever argument list follows it from s,
// reporting any diagnostics itself; TryExpand only does the name lookup.
type builtinFunc func(e *Expander, s *Source, tok token.Token)

// builtins is the full dispatch table of built-in operators. Lookup
// happens before user-macro lookup: a program cannot shadow a
// built-in by #define-ing the same name (macrotab.Define never rejects
// it directly, but the parser's #define handling consults IsReservedName
// first).
var builtins = map[string]builtinFunc{
	"alloc_cell8":  handleAllocCell8,
	"alloc_cell16": handleAllocCell16,
	"free_cell8":   handleFreeCell8,
	"free_cell16":  handleFreeCell16,
	"clear8":       handleClear8,
	"clear16":      handleClear16,
	"set8":         handleSet8,
	"set16":        handleSet16,
	"move8":        handleMove8,
	"move16":       handleMove16,
	"copy8":        handleCopy8,
	"copy16":       handleCopy16,

	"not8":  handleNot8,
	"not16": handleNot16,
	"and8":  handleAnd8,
	"and16": handleAnd16,
	"or8":   handleOr8,
	"or16":  handleOr16,
	"xor8":  handleXor8,
	"xor16": handleXor16,

	"add8":   handleAdd8,
	"add16":  handleAdd16,
	"sadd8":  handleAdd8,
	"sadd16": handleAdd16,
	"sub8":   handleSub8,
	"sub16":  handleSub16,
	"ssub8":  handleSub8,
	"ssub16": handleSub16,
	"neg8":   handleNeg8,
	"neg16":  handleNeg16,
	"sign8":  handleSign8,
	"sign16": handleSign16,
	"abs8":   handleAbs8,
	"abs16":  handleAbs16,

	"mul8":   handleMul8,
	"mul16":  handleMul16,
	"smul8":  handleSmul8,
	"smul16": handleSmul16,
	"div8":   handleDiv8,
	"div16":  handleDiv16,
	"sdiv8":  handleSdiv8,
	"sdiv16": handleSdiv16,
	"mod8":   handleMod8,
	"mod16":  handleMod16,
	"smod8":  handleSmod8,
	"smod16": handleSmod16,

	"eq8":   handleEq8,
	"eq16":  handleEq16,
	"seq8":  handleEq8,
	"seq16": handleEq16,
	"ne8":   handleNe8,
	"ne16":  handleNe16,
	"sne8":  handleNe8,
	"sne16": handleNe16,
	"lt8":   handleLt8,
	"lt16":  handleLt16,
	"slt8":  handleSlt8,
	"slt16": handleSlt16,
	"gt8":   handleGt8,
	"gt16":  handleGt16,
	"sgt8":  handleSgt8,
	"sgt16": handleSgt16,
	"le8":   handleLe8,
	"le16":  handleLe16,
	"sle8":  handleSle8,
	"sle16": handleSle16,
	"ge8":   handleGe8,
	"ge16":  handleGe16,
	"sge8":  handleSge8,
	"sge16": handleSge16,

	"shr8":  handleShr8,
	"shr16": handleShr16,
	"shl8":  handleShl8,
	"shl16": handleShl16,

	"if":        handleIf,
	"else":      handleElse,
	"endif":     handleEndif,
	"while":     handleWhile,
	"endwhile":  handleEndwhile,
	"repeat":    handleRepeat,
	"endrepeat": handleEndrepeat,

	"push8":            handlePush8,
	"push16":           handlePush16,
	"push8i":           handlePush8i,
	"push16i":          handlePush16i,
	"pop8":             handlePop8,
	"pop16":             handlePop16,
	"alloc_global16":    handleAllocGlobal16,
	"free_global16":     handleFreeGlobal16,
	"alloc_temp16":      handleAllocTemp16,
	"free_temp16":       handleFreeTemp16,
	"enter_frame16":     handleEnterFrame16,
	"leave_frame16":     handleLeaveFrame16,
	"frame_alloc_temp16": handleFrameAllocTemp16,

	"print_char":     handlePrintChar,
	"print_char8":    handlePrintChar8,
	"print_string":   handlePrintString,
	"print_newline":  handlePrintNewline,
	"print_cell8":    handlePrintCell8,
	"print_cell16":   handlePrintCell16,
	"print_cell8s":   handlePrintCell8s,
	"print_cell16s":  handlePrintCell16s,
}
