package assembler

type tokenType int

const (
	tokEOF tokenType = iota
	tokEOL
	tokMnemonic
	tokIdent
	tokLabel // identifier immediately followed by ':'
	tokHex8
	tokHex16
	tokPound
	tokIndexX
	tokIndexY
	tokParenOpen
	tokParenClose
)

type token struct {
	typ  tokenType
	text string
	u8   uint8
	u16  uint16
	line int
}
