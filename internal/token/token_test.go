package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/stackc/internal/token"
)

func Test_Lookup(t *testing.T) {
	pos := token.Pos{Name: "test", Line: 1, Col: 1}
	for _, tc := range []struct {
		text string
		kind token.Kind
		op   token.Op
	}{
		{"+", token.Arith, token.Add},
		{"!=", token.Arith, token.Ne},
		{"<=", token.Arith, token.Le},
		{"dup", token.Shuffle, token.Dup},
		{"rot", token.Shuffle, token.Rot},
		{".", token.Output, token.Print},
		{".s", token.Output, token.Depth},
		{".stack", token.Output, token.Dump},
		{"emit", token.Output, token.Emit},
		{"if", token.Control, token.If},
		{"elseif", token.Control, token.ElseIf},
		{"def", token.Control, token.Def},
		{"(int)", token.Cast, token.ToInt},
		{"(char)", token.Cast, token.ToChar},
		{"square", token.Word, token.OpNone},
		{"DUP", token.Word, token.OpNone},
		{"", token.Word, token.OpNone},
	} {
		t.Run(tc.text, func(t *testing.T) {
			tok := token.Lookup(tc.text, pos)
			assert.Equal(t, tc.kind, tok.Kind, "expected kind")
			assert.Equal(t, tc.op, tok.Op, "expected op")
			assert.Equal(t, tc.text, tok.Text, "expected spelling")
			assert.Equal(t, pos, tok.Pos, "expected position")
			assert.Equal(t, tc.kind != token.Word, token.IsBuiltin(tc.text))
		})
	}
}

func Test_Token(t *testing.T) {
	pos := token.Pos{Line: 2, Col: 7}
	assert.Equal(t, "2:7", pos.String())
	assert.Equal(t, "a.stc:2:7", token.Pos{Name: "a.stc", Line: 2, Col: 7}.String())

	assert.True(t, token.Lookup("if", pos).Opens())
	assert.True(t, token.Lookup("while", pos).Opens())
	assert.False(t, token.Lookup("then", pos).Opens())
	assert.False(t, token.Lookup("end", pos).Is(token.If))
	assert.False(t, token.Token{Kind: token.Int, Int: 3}.Is(token.OpNone))

	assert.Equal(t, "-3", token.Token{Kind: token.Int, Int: -3}.String())
	assert.Equal(t, `'\n'`, token.Token{Kind: token.Char, Char: '\n'}.String())
	assert.Equal(t, `"a b"`, token.Token{Kind: token.Str, Str: "a b"}.String())
	assert.Equal(t, "swap", token.Builtin(token.Swap, pos).String())
	assert.Equal(t, "control", token.Control.String())
}
