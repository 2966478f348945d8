/*
Package token defines the lexical categories of the score notation.

Tokens are produced by package lexer and consumed by package parser. They
live only for the duration of a parse run.

BSD License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package token

import (
	"strconv"
)

// Kind is the lexical category of a token.
type Kind int

// Token kinds. Values start at 1 to stay clear of the negative token values
// used by gorgo scanners (scanner.EOF).
const (
	NOTE        Kind = iota + 1 // a … g
	REST                        // r
	SHARP                       // #
	FLAT                        // b, never produced by the scanner
	OCTAVE                      // digit run ending in '0'
	OCTAVE_UP                   // +
	OCTAVE_DOWN                 // -
	DURATION                    // any other digit run
	DOT                         // .
	TRIPLET                     // ~
	BAR                         // |
	REPEAT_START                // |:
	REPEAT_END                  // :|
	DYNAMIC                     // p, mf, ppp, …
	COMMAND                     // \bpm, …
	END                         // end of input
)

const kindname = "NOTERESTSHARPFLATOCTAVEOCTAVE_UPOCTAVE_DOWNDURATIONDOTTRIPLETBARREPEAT_STARTREPEAT_ENDDYNAMICCOMMANDEND"

var kindindex = [...]uint8{0, 4, 8, 13, 17, 23, 32, 43, 51, 54, 61, 64, 76, 86, 93, 100, 103}

// String returns the upper-case name of a token kind.
func (k Kind) String() string {
	if k < NOTE || k > END {
		return "Kind(" + strconv.FormatInt(int64(k), 10) + ")"
	}
	i := k - NOTE
	return kindname[kindindex[i]:kindindex[i+1]]
}

// Token is a single lexeme of score notation. Tokens are values and are never
// changed after the scanner created them.
type Token struct {
	Kind Kind   // lexical category
	Text string // lexeme; empty for END, backslash-free for COMMAND
	Line int    // 1-based source line of the token's first character
}

// New creates a token.
func New(kind Kind, text string, line int) Token {
	return Token{Kind: kind, Text: text, Line: line}
}

// HasText is false for tokens without a lexeme, i.e. END.
func (t Token) HasText() bool {
	return t.Kind != END
}

// String is a simple stringer for debugging purposes.
func (t Token) String() string {
	line := strconv.Itoa(t.Line)
	if !t.HasText() {
		return "Token(" + t.Kind.String() + ", None, line=" + line + ")"
	}
	return "Token(" + t.Kind.String() + ", '" + t.Text + "', line=" + line + ")"
}
