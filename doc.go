/*
Package scoretree reads a small, LilyPond-like text notation for music and
turns it into a score tree.

Description

Score notation is a sequence of whitespace separated lexemes:

   \bpm 96  mf  |: c4 e8 g8 | c+2. :|  r4 p f4~#

Pitches are the letters a to g, optionally followed by an octave marker
(a number ending in '0', or '+' and '-' for one octave up or down), a
duration (any other number n, denoting 1/n of a whole note, optionally
dotted with '.' or marked as a triplet with '~') and modifiers ('#').
Bar lines '|' separate bars, '|:' and ':|' enclose a repeat section.
Dynamics start with 'p' or 'm', commands with a backslash.

Processing is done in three steps, each in its own sub-package:

   lexer   : source text  -> tokens (package token)
   parser  : tokens       -> score tree (package ast)
   printer : score tree   -> indented text

Package scoretree itself is a thin facade on top of these steps. Scanners are
short-lived objects, therefore the facade keeps them in a pool.

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
package scoretree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}
