package driver

import (
	"cppdoc/internal/comment"
	"cppdoc/internal/decl"
	"cppdoc/internal/diag"
	"cppdoc/internal/extract"
	"cppdoc/internal/lexer"
	"cppdoc/internal/source"
	"cppdoc/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Blocks  []comment.Block
	Bag     *diag.Bag
}

// Tokenize lexes one file with the session's hidden tokens for it.
func Tokenize(sess *Session, path string) (*TokenizeResult, error) {
	fileID, err := sess.FileSet.Load(path)
	if err != nil {
		return nil, err
	}
	file := sess.FileSet.Get(fileID)
	bag := diag.NewBag(sess.maxDiagnostics())

	tokens := lexer.Tokenize(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Hidden:   lexer.HiddenSet(sess.Hidden(path)),
	})
	return &TokenizeResult{
		FileSet: sess.FileSet,
		File:    file,
		Tokens:  tokens,
		Blocks:  comment.Scan(file, tokens),
		Bag:     bag,
	}, nil
}

type ExtractResult struct {
	TokenizeResult
	Records []decl.Record
}

// Extract runs the extractor without correlating comments.
func Extract(sess *Session, path string) (*ExtractResult, error) {
	tr, err := Tokenize(sess, path)
	if err != nil {
		return nil, err
	}
	records := extract.Extract(tr.File, tr.Tokens, extract.Options{
		Reporter:  diag.BagReporter{Bag: tr.Bag},
		MaxErrors: sess.maxErrors(),
	})
	tr.Bag.Sort()
	return &ExtractResult{TokenizeResult: *tr, Records: records}, nil
}
