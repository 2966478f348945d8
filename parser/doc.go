/*
Package parser builds score trees from token sequences.

The parser is a recursive descent parser over a small statement grammar
(notes, rests, bar lines, repeat sections, dynamics, commands). On top of the
grammar it runs a grouping state machine: notes and rests are collected into a
pending bar, bars are attached to the current section, which is either the
score root or an open repeat section. Bar lines, dynamics, tempo markings and
repeat sections flush the pending bar.

Error handling is lenient. Tokens which do not start a statement are dropped,
and an unterminated repeat section is re-parsed as plain statements, losing
its opening repeat sign. The only fatal condition is a \bpm command without a
following number (or with a number too large for an int), which is reported
as a *SyntaxError.

Some behaviour of the grouping state machine may be surprising:

  - After a repeat section has been closed, it stays the current section.
    Subsequent bars are attached to it, while dynamics and tempo markings are
    attached to the score root.
  - A bar which is still pending when a repeat section starts is discarded.
  - Inside a repeat section, dynamics, tempo markings and commands are
    children of the repeat node.
  - A bar line always closes the pending bar, even an empty one. At top
    level, dynamics, tempo markings, commands, repeat sections and the end of
    input drop an empty pending bar.

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
package parser

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}
