package scanner

// recognizeImport runs when the driver has confirmed position start
// holds the literal keyword "import" at a keyword boundary, not
// continued by an identifier byte. See §4.4.2. Dynamic import and
// import.meta are recognized at any bracket depth; the static forms
// (bare/named/namespace/default specifiers) are only recognized at
// top level.
func (s *Scanner) recognizeImport() *ParseError {
	start := s.i
	s.i += len("import")

	if s.i >= len(s.src) {
		s.lastToken = start + 5
		return nil
	}

	switch next := s.src[s.i]; {
	case next == '(':
		return s.recognizeDynamicImport(start)

	case next == '.':
		return s.recognizeMetaImport(start)

	case next == '\'' || next == '"':
		if s.openDepth != 0 {
			s.lastToken = start + 5
			return nil
		}
		return s.emitStaticImport(start)

	case next == '{' || next == '*':
		if s.openDepth != 0 {
			s.lastToken = start + 5
			return nil
		}
		if err := s.advanceToQuote(start); err != nil {
			return err
		}
		return s.emitStaticImport(start)

	case isWhitespaceOrBreak(next):
		// Default import: `import Name from "mod"`, possibly combined
		// with a named/namespace clause. All shapes converge on the
		// same next task: find the specifier string.
		if s.openDepth != 0 {
			s.lastToken = start + 5
			return nil
		}
		if err := s.skipTrivia(); err != nil {
			return err
		}
		if err := s.advanceToQuote(start); err != nil {
			return err
		}
		return s.emitStaticImport(start)

	default:
		// Not a recognized import form (e.g. `import` used as a plain
		// identifier in non-module code). Treat the keyword itself as
		// the last significant token and move on.
		s.lastToken = start + 5
		return nil
	}
}

// recognizeDynamicImport handles `import(...)` once the driver has
// confirmed s.i sits on the '(' immediately after "import".
func (s *Scanner) recognizeDynamicImport(start int) *ParseError {
	parenPos := s.i
	isMethodCall := s.lastToken != noToken && s.src[s.lastToken] == '.'

	s.pushOpen()
	s.lastToken = parenPos
	s.i = parenPos + 1

	if isMethodCall {
		// `<expr>.import(...)` — a method call named import, not a
		// module import.
		return nil
	}

	rec := &DynamicImport{
		StatementStart:     start,
		SpecifierExprStart: s.i,
		SpecifierExprEnd:   unpatchedSentinel,
	}
	s.imports = append(s.imports, rec)
	return nil
}

// recognizeMetaImport handles `import.meta` once the driver has
// confirmed s.i sits on the '.' immediately after "import".
func (s *Scanner) recognizeMetaImport(start int) *ParseError {
	dotPos := s.i
	s.i++
	if err := s.skipTrivia(); err != nil {
		return err
	}

	if s.i < len(s.src) && followsAt(s.src, s.i, "meta") {
		metaEnd := s.i + len("meta")
		afterMeta := metaEnd
		isPropertyChain := s.lastToken != noToken && s.src[s.lastToken] == '.'
		if !isPropertyChain {
			rec := MetaImport{
				StatementStart: start,
				Start:          start,
				End:            afterMeta,
				StatementEnd:   afterMeta,
			}
			s.imports = append(s.imports, rec)
		}
		s.lastToken = afterMeta - 1
		s.i = afterMeta
		return nil
	}

	// Not `import.meta` — leave the '.' as the last significant token
	// and let the driver continue from here.
	s.lastToken = dotPos
	return nil
}

// emitStaticImport lexes the string literal at s.i (which must be on
// an opening quote) and emits a StaticImport covering it.
func (s *Scanner) emitStaticImport(declStart int) *ParseError {
	quoteStart := s.i
	quote := s.src[quoteStart]
	if err := s.lexQuotedString(quote); err != nil {
		return err
	}
	rec := StaticImport{
		StatementStart: declStart,
		SpecifierStart: quoteStart + 1,
		SpecifierEnd:   s.i,
		StatementEnd:   s.i + 1,
	}
	s.imports = append(s.imports, rec)
	s.lastToken = s.i
	s.i++
	return nil
}

// advanceToQuote scans forward, skipping comments, until it finds the
// opening quote of the specifier string.
func (s *Scanner) advanceToQuote(declStart int) *ParseError {
	for {
		if s.i >= len(s.src) {
			return s.fail(declStart, ReasonUnexpectedEndOfInput)
		}
		b := s.src[s.i]
		switch {
		case b == '\'' || b == '"':
			return nil
		case b == '/' && s.i+1 < len(s.src) && s.src[s.i+1] == '/':
			s.lexLineComment()
		case b == '/' && s.i+1 < len(s.src) && s.src[s.i+1] == '*':
			if err := s.lexBlockComment(); err != nil {
				return err
			}
		default:
			s.i++
		}
	}
}

// skipTrivia advances past whitespace/break bytes and comments.
func (s *Scanner) skipTrivia() *ParseError {
	for s.i < len(s.src) {
		b := s.src[s.i]
		switch {
		case isWhitespaceOrBreak(b):
			s.i++
		case b == '/' && s.i+1 < len(s.src) && s.src[s.i+1] == '/':
			s.lexLineComment()
		case b == '/' && s.i+1 < len(s.src) && s.src[s.i+1] == '*':
			if err := s.lexBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}
