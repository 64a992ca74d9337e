// Package token defines the lexer's output vocabulary: token kinds,
// positions, and the Token record itself (spec.md section 3, "Token Model").
//
// The keyword and punctuator tables are adapted from
// assyrianic-sptools/sptools/tokenizer.go's TokenKind/Keywords/Opers tables,
// trimmed and renamed to the Kind* spelling used throughout this module and
// extended with the meta kinds (NONE/EOL/EOF/UNKNOWN/COMMENT) and the
// preprocessor-directive keywords spec.md section 4.G requires.
package token

import "github.com/assyrianic/spc/internal/atom"

import "github.com/assyrianic/spc/internal/source"

// Kind classifies a Token.
type Kind uint16

const (
	// Meta kinds. NONE is returned when the scanner consumed input but
	// produced no token for the parser (a directive line, a macro
	// expansion) — spec.md section 4.J: "next should be understood as
	// produce a token or yield control".
	KindNone Kind = iota
	KindEOL
	KindEOF
	KindUnknown
	KindComment

	// Literal kinds.
	KindName
	KindLabel
	KindIntegerLiteral
	KindHexLiteral
	KindFloatLiteral
	KindCharLiteral
	KindStringLiteral

	keywordsBegin
	// Language keywords (subset of SourcePawn's reserved words, adapted
	// from assyrianic-sptools/sptools/tokenizer.go's Keywords table).
	KindAcquire
	KindAs
	KindAssert
	KindBreak
	KindBuiltin
	KindCatch
	KindCase
	KindCastTo
	KindChar
	KindConst
	KindContinue
	KindDecl
	KindDefault
	KindDefined
	KindDelete
	KindDo
	KindDouble
	KindElse
	KindEnum
	KindExit
	KindExplicit
	KindFalse
	KindFinally
	KindFor
	KindForEach
	KindForward
	KindFuncEnum
	KindFuncTag
	KindFunction
	KindGoto
	KindIf
	KindImplicit
	KindImport
	KindIn
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindIntN
	KindInterface
	KindLet
	KindMethodMap
	KindNameSpace
	KindNative
	KindNew
	KindNull
	KindNullable
	KindObject
	KindOperator
	KindPackage
	KindPrivate
	KindProtected
	KindPublic
	KindReadOnly
	KindReturn
	KindSealed
	KindSizeof
	KindStatic
	KindStaticAssert
	KindStock
	KindStruct
	KindSwitch
	KindThis
	KindThrow
	KindTrue
	KindTry
	KindTypedef
	KindTypeof
	KindTypeset
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindUnion
	KindUsing
	KindVar
	KindVariant
	KindViewAs
	KindVirtual
	KindVoid
	KindVolatile
	KindWhile
	KindWith

	// Preprocessor directive keywords, only recognized by the Directive
	// Engine reading the identifier immediately following a line-leading
	// '#' (spec.md section 4.G).
	KindMDefine
	KindMUndef
	KindMIf
	KindMElse
	KindMEndif
	KindMInclude
	KindMTryInclude
	KindMEndInput
	KindMPragma
	keywordsEnd

	// Delimiters.
	KindLParen
	KindRParen
	KindLBracket
	KindRBracket
	KindLBrace
	KindRBrace
	KindComma
	KindColon
	KindSemicolon
	KindHash

	// Operators, maximal-munch ordered families per spec.md section 4.J.
	KindDot
	KindDotDot
	KindEllipsis
	KindPlus
	KindMinus
	KindStar
	KindSlash
	KindPercent
	KindTilde
	KindQMark
	KindBitAnd
	KindBitOr
	KindBitXor
	KindShl
	KindShr
	KindUShr
	KindLt
	KindGt
	KindGe
	KindLe
	KindNotEquals
	KindEquals
	KindAnd
	KindOr
	KindNot
	KindAssign
	KindAssignAdd
	KindAssignSub
	KindAssignMul
	KindAssignDiv
	KindAssignMod
	KindAssignBitAnd
	KindAssignBitOr
	KindAssignBitXor
	KindAssignShl
	KindAssignShr
	KindAssignUShr
	KindIncrement
	KindDecrement
)

// names backs String(); kept in one table rather than scattered switch
// statements, matching assyrianic-sptools/sptools/tokenizer.go's TokenToStr.
var names = map[Kind]string{
	KindNone: "<none>", KindEOL: "<eol>", KindEOF: "<eof>",
	KindUnknown: "<unknown>", KindComment: "<comment>",
	KindName: "<name>", KindLabel: "<label>",
	KindIntegerLiteral: "<integer>", KindHexLiteral: "<hex>",
	KindFloatLiteral: "<float>", KindCharLiteral: "<char>", KindStringLiteral: "<string>",

	KindAcquire: "acquire", KindAs: "as", KindAssert: "assert", KindBreak: "break",
	KindBuiltin: "builtin", KindCatch: "catch", KindCase: "case", KindCastTo: "cast_to",
	KindChar: "char", KindConst: "const", KindContinue: "continue", KindDecl: "decl",
	KindDefault: "default", KindDefined: "defined", KindDelete: "delete", KindDo: "do",
	KindDouble: "double", KindElse: "else", KindEnum: "enum", KindExit: "exit",
	KindExplicit: "explicit", KindFalse: "false", KindFinally: "finally", KindFor: "for",
	KindForEach: "foreach", KindForward: "forward", KindFuncEnum: "funcenum",
	KindFuncTag: "functag", KindFunction: "function", KindGoto: "goto", KindIf: "if",
	KindImplicit: "implicit", KindImport: "import", KindIn: "in", KindInt: "int",
	KindInt8: "int8", KindInt16: "int16", KindInt32: "int32", KindInt64: "int64",
	KindIntN: "intn", KindInterface: "interface", KindLet: "let", KindMethodMap: "methodmap",
	KindNameSpace: "namespace", KindNative: "native", KindNew: "new", KindNull: "null",
	KindNullable: "__nullable__", KindObject: "object", KindOperator: "operator",
	KindPackage: "package", KindPrivate: "private", KindProtected: "protected",
	KindPublic: "public", KindReadOnly: "readonly", KindReturn: "return",
	KindSealed: "sealed", KindSizeof: "sizeof", KindStatic: "static",
	KindStaticAssert: "static_assert", KindStock: "stock", KindStruct: "struct",
	KindSwitch: "switch", KindThis: "this", KindThrow: "throw", KindTrue: "true",
	KindTry: "try", KindTypedef: "typedef", KindTypeof: "typeof", KindTypeset: "typeset",
	KindUInt8: "uint8", KindUInt16: "uint16", KindUInt32: "uint32", KindUInt64: "uint64",
	KindUnion: "union", KindUsing: "using", KindVar: "var", KindVariant: "variant",
	KindViewAs: "view_as", KindVirtual: "virtual", KindVoid: "void", KindVolatile: "volatile",
	KindWhile: "while", KindWith: "with",

	KindMDefine: "#define", KindMUndef: "#undef", KindMIf: "#if", KindMElse: "#else",
	KindMEndif: "#endif", KindMInclude: "#include", KindMTryInclude: "#tryinclude",
	KindMEndInput: "#endinput", KindMPragma: "#pragma",

	KindLParen: "(", KindRParen: ")", KindLBracket: "[", KindRBracket: "]",
	KindLBrace: "{", KindRBrace: "}", KindComma: ",", KindColon: ":",
	KindSemicolon: ";", KindHash: "#",

	KindDot: ".", KindDotDot: "..", KindEllipsis: "...",
	KindPlus: "+", KindMinus: "-", KindStar: "*", KindSlash: "/", KindPercent: "%",
	KindTilde: "~", KindQMark: "?",
	KindBitAnd: "&", KindBitOr: "|", KindBitXor: "^",
	KindShl: "<<", KindShr: ">>", KindUShr: ">>>",
	KindLt: "<", KindGt: ">", KindGe: ">=", KindLe: "<=",
	KindNotEquals: "!=", KindEquals: "==", KindAnd: "&&", KindOr: "||", KindNot: "!",
	KindAssign: "=", KindAssignAdd: "+=", KindAssignSub: "-=", KindAssignMul: "*=",
	KindAssignDiv: "/=", KindAssignMod: "%=", KindAssignBitAnd: "&=",
	KindAssignBitOr: "|=", KindAssignBitXor: "^=", KindAssignShl: "<<=",
	KindAssignShr: ">>=", KindAssignUShr: ">>>=",
	KindIncrement: "++", KindDecrement: "--",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "<?>"
}

// Keywords maps every language keyword (not directive names, which share
// spelling with some keywords — e.g. "if" — and are resolved separately by
// the directive engine's own table; see internal/lexer/directive.go) to its
// Kind. This is the table `findKeyword` (spec.md section 6) is built from.
var Keywords = func() map[string]Kind {
	m := make(map[string]Kind, int(KindMDefine-keywordsBegin))
	for k := keywordsBegin + 1; k < KindMDefine; k++ {
		m[names[k]] = k
	}
	return m
}()

// IsKeyword reports whether k is a language keyword (not a directive name).
func (k Kind) IsKeyword() bool { return k > keywordsBegin && k < KindMDefine }

// IsDirective reports whether k is a preprocessor directive keyword.
func (k Kind) IsDirective() bool { return k >= KindMDefine && k < keywordsEnd }

// Pos is a token boundary: the byte-offset Location plus the 1-based line it
// falls on, per spec.md section 3 ("Token Position").
type Pos struct {
	Loc  source.Location
	Line int
}

// Token is spec.md's tagged token record. Only the field matching Kind is
// meaningful for a given token; the rest are zero.
type Token struct {
	Kind       Kind
	Start, End Pos

	Int    uint64
	Float  float64
	Char   rune
	Atom   atom.ID
}

// String returns the spelling of the token's Kind; a literal's payload is
// not rendered.
func (t Token) String() string {
	return t.Kind.String()
}
