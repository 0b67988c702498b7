/* Package main: stackc -- a typed concatenative interpreter

A stackc program is a whitespace separated sequence of words, read left to
right. Literals push values onto a shared stack; every other word pops its
operands from that stack and pushes any results:

	3 4 + .          // prints 7
	"hi" .           // prints hi
	'a' 1 + emit cr  // prints b and a newline

Values are typed: 64-bit ints, single byte chars, and byte strings. On the
stack each value is a run of cells topped by a tag cell naming its type, so
that its width can always be recovered from the stack alone; dup, drop, swap,
over, and rot all move whole values, whatever their width.

Section 1: Control Flow

Conditionals and loops are not compiled. Their conditions and bodies are run
straight from the pending token queue, or replayed from spans extracted out of
it:

	if <cond> then <body> elseif <cond> then <body> end
	while <cond> then <body> end

Every condition must leave an int, which is true if non-zero. Blocks nest to
any depth.

Section 2: Definitions

	def square dup * end
	5 square .       // prints 25

A definition records its body, unexecuted. Using the word later splices a
fresh copy of that body into the front of the queue, so it runs as if written
in place; words are looked up only when used, so they may be recursive, or
refer to words defined after them. A definition may not appear inside any
block, and no name may be defined twice.

Section 3: Running

	stackc [-prelude] [-trace] [-timeout d] [-mem-limit cells] <path.stc>
	stackc [flags] -s '<script>'

The whole program is lexed before anything runs. Any error stops the run:
output printed up to that point is flushed, then the error is reported on
stderr along with the source position of the offending token.

See prelude.go for the optional word library, written in stackc itself.

*/
package main
