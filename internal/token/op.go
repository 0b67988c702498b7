package token

import "fmt"

// Op identifies a builtin word within its Kind.
type Op uint8

// Builtin operations, grouped by kind.
const (
	OpNone Op = iota

	// Arith
	Add // +
	Sub // -
	Mul // *
	Div // /
	Rem // %
	Eq  // =
	Ne  // !=
	Ge  // >=
	Le  // <=
	Gt  // >
	Lt  // <

	// Shuffle
	Dup  // dup
	Drop // drop
	Swap // swap
	Over // over
	Rot  // rot

	// Output
	Print // .
	Depth // .s
	Dump  // .stack
	Emit  // emit
	CR    // cr

	// Control
	If     // if
	ElseIf // elseif
	While  // while
	Then   // then
	Def    // def
	End    // end

	// Cast
	ToInt  // (int)
	ToChar // (char)

	NumOps // number of Op values, for sizing dispatch tables
)

var opSpecs = [NumOps]struct {
	name string
	kind Kind
}{
	OpNone: {"", Word},

	Add: {"+", Arith},
	Sub: {"-", Arith},
	Mul: {"*", Arith},
	Div: {"/", Arith},
	Rem: {"%", Arith},
	Eq:  {"=", Arith},
	Ne:  {"!=", Arith},
	Ge:  {">=", Arith},
	Le:  {"<=", Arith},
	Gt:  {">", Arith},
	Lt:  {"<", Arith},

	Dup:  {"dup", Shuffle},
	Drop: {"drop", Shuffle},
	Swap: {"swap", Shuffle},
	Over: {"over", Shuffle},
	Rot:  {"rot", Shuffle},

	Print: {".", Output},
	Depth: {".s", Output},
	Dump:  {".stack", Output},
	Emit:  {"emit", Output},
	CR:    {"cr", Output},

	If:     {"if", Control},
	ElseIf: {"elseif", Control},
	While:  {"while", Control},
	Then:   {"then", Control},
	Def:    {"def", Control},
	End:    {"end", Control},

	ToInt:  {"(int)", Cast},
	ToChar: {"(char)", Cast},
}

var vocabulary = make(map[string]Op, NumOps)

func init() {
	for op := OpNone + 1; op < NumOps; op++ {
		vocabulary[opSpecs[op].name] = op
	}
}

// Kind returns the token kind that op belongs to.
func (op Op) Kind() Kind {
	if op < NumOps {
		return opSpecs[op].kind
	}
	return Word
}

func (op Op) String() string {
	if op < NumOps {
		return opSpecs[op].name
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Opens returns true for ops that open a block closed by a matching end.
func (op Op) Opens() bool { return op == If || op == While }
