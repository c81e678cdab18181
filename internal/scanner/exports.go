package scanner

// identContinuesAfter reports whether the byte right after word
// (starting at pos) is itself an identifier byte, meaning word was
// only a prefix of a longer identifier rather than a whole keyword.
func identContinuesAfter(src []byte, pos int, word string) bool {
	end := pos + len(word)
	return end < len(src) && isIdentByte(src[end])
}

func readIdentifier(s *Scanner) (start, end int) {
	start = s.i
	for s.i < len(s.src) && isIdentByte(s.src[s.i]) {
		s.i++
	}
	return start, s.i
}

// recognizeExport runs when the driver has confirmed s.src[start]
// starts the literal keyword "export" at top level and at a keyword
// boundary. See §4.4.3.
func (s *Scanner) recognizeExport(start int) *ParseError {
	s.i = start + len("export")
	if err := s.skipTrivia(); err != nil {
		return err
	}
	if s.i >= len(s.src) {
		return nil
	}

	switch s.src[s.i] {
	case 'd':
		if followsAt(s.src, s.i, "default") && !identContinuesAfter(s.src, s.i, "default") {
			nameStart := s.i
			nameEnd := nameStart + len("default")
			s.exports = append(s.exports, Export{NameStart: nameStart, NameEnd: nameEnd})
			s.lastToken = nameEnd - 1
			s.i = nameEnd
		}
		return nil

	case 'a':
		if followsAt(s.src, s.i, "async") && !identContinuesAfter(s.src, s.i, "async") {
			s.i += len("async")
			if err := s.skipTrivia(); err != nil {
				return err
			}
			return s.recognizeFunctionDecl()
		}
		return nil

	case 'f':
		if followsAt(s.src, s.i, "function") && !identContinuesAfter(s.src, s.i, "function") {
			return s.recognizeFunctionDecl()
		}
		return nil

	case 'c':
		if followsAt(s.src, s.i, "class") && !identContinuesAfter(s.src, s.i, "class") {
			return s.recognizeClassDecl()
		}
		if followsAt(s.src, s.i, "const") && !identContinuesAfter(s.src, s.i, "const") {
			s.i += len("const")
			return s.recognizeBindingList()
		}
		return nil

	case 'v':
		if followsAt(s.src, s.i, "var") && !identContinuesAfter(s.src, s.i, "var") {
			s.i += len("var")
			return s.recognizeBindingList()
		}
		return nil

	case 'l':
		if followsAt(s.src, s.i, "let") && !identContinuesAfter(s.src, s.i, "let") {
			s.i += len("let")
			return s.recognizeBindingList()
		}
		return nil

	case '{':
		return s.recognizeNamedExportList(start)

	case '*':
		return s.recognizeStarExport(start)

	default:
		return nil
	}
}

// recognizeFunctionDecl handles `function [*] name` with s.i on the
// 'f' of "function".
func (s *Scanner) recognizeFunctionDecl() *ParseError {
	s.i += len("function")
	if err := s.skipTrivia(); err != nil {
		return err
	}
	if s.i < len(s.src) && s.src[s.i] == '*' {
		s.i++
		if err := s.skipTrivia(); err != nil {
			return err
		}
	}
	nameStart, nameEnd := readIdentifier(s)
	if nameEnd > nameStart {
		s.exports = append(s.exports, Export{NameStart: nameStart, NameEnd: nameEnd})
		s.lastToken = nameEnd - 1
	}
	return nil
}

// recognizeClassDecl handles `class name` with s.i on the 'c' of
// "class".
func (s *Scanner) recognizeClassDecl() *ParseError {
	s.i += len("class")
	if err := s.skipTrivia(); err != nil {
		return err
	}
	nameStart, nameEnd := readIdentifier(s)
	if nameEnd > nameStart {
		s.exports = append(s.exports, Export{NameStart: nameStart, NameEnd: nameEnd})
		s.lastToken = nameEnd - 1
	}
	return nil
}

// recognizeBindingList handles comma-separated `var`/`let`/`const`
// bindings, stopping at the first initializer or destructuring
// pattern without attempting to walk it.
func (s *Scanner) recognizeBindingList() *ParseError {
	for {
		if err := s.skipTrivia(); err != nil {
			return err
		}
		if s.i >= len(s.src) {
			return nil
		}
		b := s.src[s.i]
		if b == '=' || b == '{' || b == '[' || !isIdentByte(b) {
			return nil
		}

		nameStart, nameEnd := readIdentifier(s)
		s.exports = append(s.exports, Export{NameStart: nameStart, NameEnd: nameEnd})
		s.lastToken = nameEnd - 1

		if err := s.skipTrivia(); err != nil {
			return err
		}
		if s.i < len(s.src) && s.src[s.i] == ',' {
			s.i++
			continue
		}
		return nil
	}
}

// recognizeNamedExportList handles `{ a, b as c }` optionally followed
// by `from "mod"`. declStart is the byte offset of the `export`
// keyword, used as the re-export StatementStart.
func (s *Scanner) recognizeNamedExportList(declStart int) *ParseError {
	s.i++ // skip '{'
	for {
		if err := s.skipTrivia(); err != nil {
			return err
		}
		if s.i >= len(s.src) {
			return s.fail(declStart, ReasonInvalidExportToken)
		}
		if s.src[s.i] == '}' {
			s.i++
			break
		}
		if s.src[s.i] == ',' {
			s.i++
			continue
		}
		if !isIdentByte(s.src[s.i]) {
			return s.fail(s.i, ReasonInvalidExportToken)
		}

		publicStart, publicEnd := readIdentifier(s)

		if err := s.skipTrivia(); err != nil {
			return err
		}
		if s.i < len(s.src) && followsAt(s.src, s.i, "as") && !identContinuesAfter(s.src, s.i, "as") {
			s.i += len("as")
			if err := s.skipTrivia(); err != nil {
				return err
			}
			aliasStart, aliasEnd := readIdentifier(s)
			if aliasEnd > aliasStart {
				publicStart, publicEnd = aliasStart, aliasEnd
			}
		}

		s.exports = append(s.exports, Export{NameStart: publicStart, NameEnd: publicEnd})
		s.lastToken = publicEnd - 1

		if err := s.skipTrivia(); err != nil {
			return err
		}
		if s.i >= len(s.src) {
			return s.fail(declStart, ReasonInvalidExportToken)
		}
		if s.src[s.i] == ',' || s.src[s.i] == '}' {
			continue
		}
		return s.fail(s.i, ReasonInvalidExportToken)
	}

	if err := s.skipTrivia(); err != nil {
		return err
	}
	if s.i < len(s.src) && followsAt(s.src, s.i, "from") && !identContinuesAfter(s.src, s.i, "from") {
		s.i += len("from")
		if err := s.skipTrivia(); err != nil {
			return err
		}
		if err := s.advanceToQuote(declStart); err != nil {
			return err
		}
		return s.emitStaticImport(declStart)
	}
	return nil
}

// recognizeStarExport handles `* [as name] from "mod"`.
func (s *Scanner) recognizeStarExport(declStart int) *ParseError {
	s.i++ // skip '*'
	if err := s.skipTrivia(); err != nil {
		return err
	}
	if s.i < len(s.src) && followsAt(s.src, s.i, "as") && !identContinuesAfter(s.src, s.i, "as") {
		s.i += len("as")
		if err := s.skipTrivia(); err != nil {
			return err
		}
		nameStart, nameEnd := readIdentifier(s)
		if nameEnd > nameStart {
			s.exports = append(s.exports, Export{NameStart: nameStart, NameEnd: nameEnd})
			s.lastToken = nameEnd - 1
		}
		if err := s.skipTrivia(); err != nil {
			return err
		}
	}
	if s.i < len(s.src) && followsAt(s.src, s.i, "from") && !identContinuesAfter(s.src, s.i, "from") {
		s.i += len("from")
		if err := s.skipTrivia(); err != nil {
			return err
		}
		if err := s.advanceToQuote(declStart); err != nil {
			return err
		}
		return s.emitStaticImport(declStart)
	}
	return nil
}
