package token

import (
	"fmt"
	"strconv"
)

// Kind classifies a Token.
type Kind uint8

// Token kinds; every builtin kind is further refined by an Op.
const (
	Word    Kind = iota // unresolved word, looked up at expansion time
	Int                 // integer literal
	Char                // character literal
	Str                 // string literal
	Arith               // arithmetic and comparison operators
	Shuffle             // dup drop swap over rot
	Output              // . .s .stack emit cr
	Control             // if elseif while then def end
	Cast                // (int) (char)
)

var kindNames = [...]string{
	Word:    "word",
	Int:     "int",
	Char:    "char",
	Str:     "string",
	Arith:   "arith",
	Shuffle: "shuffle",
	Output:  "output",
	Control: "control",
	Cast:    "cast",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Pos locates a token within a named source; Line and Col are 1-based.
type Pos struct {
	Name string
	Line int
	Col  int
}

func (pos Pos) String() string {
	if pos.Name == "" {
		return fmt.Sprintf("%v:%v", pos.Line, pos.Col)
	}
	return fmt.Sprintf("%v:%v:%v", pos.Name, pos.Line, pos.Col)
}

// Token is an immutable classified unit of source.
// Text always holds the token's spelling as written; Int, Char, and Str
// carry the decoded literal for the corresponding kinds.
type Token struct {
	Kind Kind
	Op   Op
	Pos  Pos
	Text string

	Int  int64
	Char byte
	Str  string
}

// Is returns true if tok is the builtin op; literals and words carry OpNone.
func (tok Token) Is(op Op) bool { return op != OpNone && tok.Op == op }

// Opens returns true if tok opens a block that a matching end closes.
func (tok Token) Opens() bool { return tok.Op.Opens() }

func (tok Token) String() string {
	switch tok.Kind {
	case Int:
		return strconv.FormatInt(tok.Int, 10)
	case Char:
		return strconv.QuoteRuneToASCII(rune(tok.Char))
	case Str:
		return strconv.Quote(tok.Str)
	}
	return tok.Text
}

// Builtin constructs a builtin token for op, as the lexer would.
func Builtin(op Op, pos Pos) Token {
	return Token{Kind: op.Kind(), Op: op, Pos: pos, Text: op.String()}
}

// Lookup classifies a word against the fixed vocabulary; anything not in
// the vocabulary comes back as an unresolved Word.
func Lookup(text string, pos Pos) Token {
	if op, ok := vocabulary[text]; ok {
		return Builtin(op, pos)
	}
	return Token{Kind: Word, Pos: pos, Text: text}
}

// IsBuiltin returns true if text names a fixed vocabulary word.
func IsBuiltin(text string) bool {
	_, ok := vocabulary[text]
	return ok
}
