package scanner

// precededBy reports whether the prefix.length bytes ending at i
// (inclusive) equal prefix, and a keyword boundary precedes that
// prefix.
func precededBy(src []byte, i int, prefix string) bool {
	n := len(prefix)
	start := i - n + 1
	if start < 0 || i >= len(src) {
		return false
	}
	if string(src[start:i+1]) != prefix {
		return false
	}
	return keywordBoundaryBefore(src, start)
}

// followsAt reports whether the literal bytes of want begin exactly
// at position i (used for the driver's "import"/"export"/"class"
// checks and for the words the import/export recognizers look for).
func followsAt(src []byte, i int, want string) bool {
	end := i + len(want)
	if end > len(src) {
		return false
	}
	return string(src[i:end]) == want
}

// expressionKeywords ending at i, dispatched by final byte for O(1)
// lookup. Matches: case delete do else in instanceof new return throw
// typeof void yield await debugger.
func isExpressionKeyword(src []byte, i int) bool {
	if i < 0 || i >= len(src) {
		return false
	}
	switch src[i] {
	case 'e':
		return precededBy(src, i, "case") || precededBy(src, i, "delete") || precededBy(src, i, "else")
	case 'o':
		return precededBy(src, i, "do")
	case 'n':
		return precededBy(src, i, "in") || precededBy(src, i, "return")
	case 'f':
		return precededBy(src, i, "instanceof") || precededBy(src, i, "typeof")
	case 'w':
		return precededBy(src, i, "new") || precededBy(src, i, "throw")
	case 'd':
		return precededBy(src, i, "void") || precededBy(src, i, "yield")
	case 't':
		return precededBy(src, i, "await")
	case 'r':
		return precededBy(src, i, "debugger")
	}
	return false
}

// isParenKeyword matches while/for/if ending at i.
func isParenKeyword(src []byte, i int) bool {
	if i < 0 || i >= len(src) {
		return false
	}
	switch src[i] {
	case 'e':
		return precededBy(src, i, "while")
	case 'r':
		return precededBy(src, i, "for")
	case 'f':
		return precededBy(src, i, "if")
	}
	return false
}

// isExpressionTerminator matches ';', ')', '=>' (via '>' preceded by
// '='), or the closing byte of 'finally', 'catch', 'else' — tokens
// after which a following '{' opens a block, not an object literal.
func isExpressionTerminator(src []byte, i int) bool {
	if i < 0 || i >= len(src) {
		return false
	}
	switch src[i] {
	case ';', ')':
		return true
	case '>':
		return i > 0 && src[i-1] == '='
	case 'y':
		return precededBy(src, i, "finally")
	case 'h':
		return precededBy(src, i, "catch")
	case 'e':
		return precededBy(src, i, "else")
	}
	return false
}
