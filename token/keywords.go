package token

// keywords maps every recognized English and Japanese spelling to its
// Kind. Lookup is a single map access against both scripts: two
// spellings per concept, one table.
var keywords = map[string]Kind{
	// Type keywords.
	"integer":   IntegerType,
	"整数型":       IntegerType,
	"real":      RealType,
	"実数型":       RealType,
	"character": CharacterType,
	"文字型":       CharacterType,
	"string":    StringType,
	"文字列型":      StringType,
	"boolean":   BooleanType,
	"論理型":       BooleanType,
	"record":    RecordType,
	"レコード":     RecordType,
	"array":     ArrayType,
	"配列":       ArrayType,

	// Control flow.
	"if":        If,
	"もし":        If,
	"then":      Then,
	"ならば":       Then,
	"else":      Else,
	"そうでなければ":  Else,
	"end":       EndIf, // "end <construct>" is resolved by the lexer; a bare "end" stays EndIf
	"終わり":      EndIf,
	"while":     While,
	"間":         While,
	"do":        Do,
	"実行":        Do,
	"for":       For,
	"繰り返し":      For,
	"in":        In,
	"の中で":       In,
	"to":        To,
	"まで":        To,
	"step":      Step,
	"刻み":        Step,
	"function":  Function,
	"関数":        Function,
	"procedure": Procedure,
	"手続き":       Procedure,
	"return":    Return,
	"戻り値":       Return,
	"break":     Break,
	"中断":        Break,

	// Logical.
	"and": And,
	"かつ": And,
	"or":  Or,
	"または": Or,
	"not": Not,
	"でない": Not,

	// Boolean literals.
	"true":  True,
	"真":     True,
	"false": False,
	"偽":     False,

	// Declarations.
	"variable": Var,
	"変数":       Var,
	"constant": Const,
	"定数":       Const,
	"of":       OfKeyword,
	"の":        OfKeyword,
}

// compoundEnd maps the second keyword after "end"/"終わり" to the specific
// closing Kind, since "end if"/"end while"/"end for"/"end function"/
// "end procedure" share the leading token.
var compoundEnd = map[string]Kind{
	"if":        EndIf,
	"もし":        EndIf,
	"while":     EndWhile,
	"間":         EndWhile,
	"for":       EndFor,
	"繰り返し":      EndFor,
	"function":  EndFunction,
	"関数":        EndFunction,
	"procedure": EndProcedure,
	"手続き":       EndProcedure,
}

// LookupKeyword returns the Kind for text if it names a keyword in either
// script, and Identifier otherwise.
func LookupKeyword(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Identifier
}

// LookupCompoundEnd resolves the second word of an "end <construct>"
// sequence to its specific closing Kind. ok is false for an unrecognized
// second word (the lexer then keeps the leading word as a token of its own).
func LookupCompoundEnd(text string) (Kind, bool) {
	kind, ok := compoundEnd[text]
	return kind, ok
}

// IsEndLeader reports whether text is the leading word of a compound
// "end ..." keyword ("end" or "終わり").
func IsEndLeader(text string) bool {
	return text == "end" || text == "終わり"
}
