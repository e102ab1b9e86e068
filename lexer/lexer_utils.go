/*
File   : proofcheck/lexer/lexer_utils.go
Package: lexer
*/
package lexer

import "strconv"

// itoa and quoteByte are small formatting helpers kept local to this
// package so LexError.Error doesn't need to import fmt for two calls.
func itoa(n int) string {
	return strconv.Itoa(n)
}

func quoteByte(b byte) string {
	return strconv.QuoteRune(rune(b))
}
