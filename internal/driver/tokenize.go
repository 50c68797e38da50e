package driver

import (
	"rsnfmt/internal/lexer"
	"rsnfmt/internal/source"
	"rsnfmt/internal/token"
)

// TokenizeResult holds the token stream of one file. On a lexer error Tokens holds
// everything read before it and Err is the *lexer.Error.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Err     error
}

// Tokenize loads path and lexes it to EOF or the first error. Only I/O failures are
// returned as error.
func Tokenize(path string) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	res := &TokenizeResult{FileSet: fs, File: file}
	lx := lexer.New(file)
	for {
		tok, err := lx.Next()
		if err != nil {
			res.Err = err
			break
		}
		res.Tokens = append(res.Tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return res, nil
}
