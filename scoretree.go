package scoretree

import (
	"context"
	"time"

	pool "github.com/jolestar/go-commons-pool"
	"github.com/npillmayer/scoretree/ast"
	"github.com/npillmayer/scoretree/lexer"
	"github.com/npillmayer/scoretree/parser"
	"github.com/npillmayer/scoretree/token"
)

// Parse tokenizes a source text and builds a score tree from it.
// It returns the SCORE root, or a *parser.SyntaxError.
//
// Lexical anomalies are not fatal; they are traced to the core tracer.
func Parse(source string, opts ...parser.Option) (*ast.Node, error) {
	start := time.Now()
	tokens := Tokenize(source)
	score, err := parser.New(tokens, opts...).Parse()
	CT().Debugf("parsing %d tokens took %v", len(tokens), time.Since(start))
	return score, err
}

// Tokenize splits a source text into tokens. The last token is always of
// kind token.END.
func Tokenize(source string) []token.Token {
	sc := borrowScanner(source)
	defer releaseScanner(sc)
	return sc.Tokens()
}

// Scanners are short-lived objects. To avoid allocating one for every
// source text, we pool them.
type scannerPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalScannerPool *scannerPool

func init() {
	globalScannerPool = &scannerPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return lexer.NewScanner(""), nil
		})
	globalScannerPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalScannerPool.opool = pool.NewObjectPool(globalScannerPool.ctx, factory, config)
}

// borrowScanner returns a pooled scanner, initialized with source.
func borrowScanner(source string) *lexer.Scanner {
	o, err := globalScannerPool.opool.BorrowObject(globalScannerPool.ctx)
	if err != nil {
		CT().Errorf("cannot borrow scanner from pool: %v", err)
		return lexer.NewScanner(source)
	}
	sc := o.(*lexer.Scanner)
	sc.Init(source)
	return sc
}

// releaseScanner clears a scanner and puts it back into the pool.
func releaseScanner(sc *lexer.Scanner) {
	sc.Init("")
	sc.SetErrorHandler(nil)
	_ = globalScannerPool.opool.ReturnObject(globalScannerPool.ctx, sc)
}
