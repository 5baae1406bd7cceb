package board

// Colour identifies a side.
type Colour uint8

const (
	White Colour = iota
	Black
)

func (c Colour) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Kind is the type of a piece regardless of colour.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{
	NoKind: "none",
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "none"
}

// Code returns the notation letter of the kind. Pawns have the empty code.
func (k Kind) Code() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Rook:
		return "R"
	}
	return ""
}

// KindFromCode maps a notation letter to a kind. The empty code is a pawn.
func KindFromCode(code string) (Kind, bool) {
	switch code {
	case "":
		return Pawn, true
	case "K":
		return King, true
	case "Q":
		return Queen, true
	case "B":
		return Bishop, true
	case "N":
		return Knight, true
	case "R":
		return Rook, true
	}
	return NoKind, false
}

// Symbol is the rendered glyph occupying a square. Empty is the zero value.
type Symbol rune

const (
	Empty Symbol = 0

	WhiteKing   Symbol = '♔'
	WhiteQueen  Symbol = '♕'
	WhiteRook   Symbol = '♖'
	WhiteBishop Symbol = '♗'
	WhiteKnight Symbol = '♘'
	WhitePawn   Symbol = '♙'

	BlackKing   Symbol = '♚'
	BlackQueen  Symbol = '♛'
	BlackRook   Symbol = '♜'
	BlackBishop Symbol = '♝'
	BlackKnight Symbol = '♞'
	BlackPawn   Symbol = '♟'
)

type symbolInfo struct {
	kind   Kind
	colour Colour
}

var symbols = map[Symbol]symbolInfo{
	WhiteKing:   {King, White},
	WhiteQueen:  {Queen, White},
	WhiteRook:   {Rook, White},
	WhiteBishop: {Bishop, White},
	WhiteKnight: {Knight, White},
	WhitePawn:   {Pawn, White},
	BlackKing:   {King, Black},
	BlackQueen:  {Queen, Black},
	BlackRook:   {Rook, Black},
	BlackBishop: {Bishop, Black},
	BlackKnight: {Knight, Black},
	BlackPawn:   {Pawn, Black},
}

var bySide = [2][King + 1]Symbol{
	White: {Pawn: WhitePawn, Knight: WhiteKnight, Bishop: WhiteBishop, Rook: WhiteRook, Queen: WhiteQueen, King: WhiteKing},
	Black: {Pawn: BlackPawn, Knight: BlackKnight, Bishop: BlackBishop, Rook: BlackRook, Queen: BlackQueen, King: BlackKing},
}

// SymbolOf returns the glyph for a kind and colour, or Empty for NoKind.
func SymbolOf(k Kind, c Colour) Symbol {
	if k == NoKind || k > King || c > Black {
		return Empty
	}
	return bySide[c][k]
}

// SymbolFor returns the glyph for a notation code. Unknown codes fall back
// to a pawn, matching the pawn's empty code.
func SymbolFor(code string, c Colour) Symbol {
	k, ok := KindFromCode(code)
	if !ok {
		k = Pawn
	}
	return SymbolOf(k, c)
}

// SymbolFromRune returns the Symbol for a figurine glyph.
func SymbolFromRune(r rune) (Symbol, bool) {
	s := Symbol(r)
	_, ok := symbols[s]
	return s, ok
}

// IsEmpty reports whether the square holds no piece.
func (s Symbol) IsEmpty() bool { return s == Empty }

// Kind returns the kind of the piece, or NoKind for Empty.
func (s Symbol) Kind() Kind { return symbols[s].kind }

// Code returns the notation letter of the piece. Pawns map back to "".
func (s Symbol) Code() string { return s.Kind().Code() }

// Colour returns the side owning the piece; ok is false for Empty.
func (s Symbol) Colour() (Colour, bool) {
	info, ok := symbols[s]
	return info.colour, ok
}

func (s Symbol) String() string {
	if s == Empty {
		return ""
	}
	return string(rune(s))
}
