package scanner

// Parse scans source for import and export syntax without building a
// syntax tree, returning every import site and exported name in
// encounter order. Scanning stops at the first malformed construct.
func Parse(source []byte) (ScanResult, *ParseError) {
	s := newScanner(source)
	var templateAnchors []int

	for s.i < len(s.src) {
		b := s.src[s.i]

		switch {
		case isWhitespaceOrBreak(b):
			s.i++

		case b == '/' && s.i+1 < len(s.src) && s.src[s.i+1] == '/':
			s.lexLineComment()

		case b == '/' && s.i+1 < len(s.src) && s.src[s.i+1] == '*':
			if err := s.lexBlockComment(); err != nil {
				return ScanResult{}, err
			}

		case b == '/':
			if s.regexAllowed() {
				if err := s.lexRegexBody(); err != nil {
					return ScanResult{}, err
				}
				s.i++ // past the closing '/'
				for s.i < len(s.src) && isIdentByte(s.src[s.i]) {
					s.i++ // trailing flags
				}
				s.lastToken = s.i - 1
				s.lastSlashWasDivision = false
			} else {
				s.lastToken = s.i
				s.lastSlashWasDivision = true
				s.i++
			}

		case b == '\'' || b == '"':
			if err := s.lexQuotedString(b); err != nil {
				return ScanResult{}, err
			}
			s.lastToken = s.i
			s.i++

		case b == '`':
			anchor := s.i
			s.i++
			outcome, err := s.lexTemplateChunk(anchor)
			if err != nil {
				return ScanResult{}, err
			}
			if outcome == templateEnded {
				s.lastToken = s.i - 1
			} else {
				templateAnchors = append(templateAnchors, anchor)
			}

		case b == '(':
			s.pushOpen()
			s.lastToken = s.i
			s.i++

		case b == ')':
			if s.openDepth == 0 || len(s.openTokenStack) == 0 {
				return ScanResult{}, s.fail(s.i, ReasonUnbalancedBracket)
			}
			if di, ok := s.lastIsDynamicImportAwaitingEnd(); ok {
				di.SpecifierExprEnd = s.i
			}
			saved := s.popOpen()
			s.lastCloseParenIsKeywordParen = isParenKeyword(s.src, saved)
			s.lastToken = s.i
			s.i++

		case b == '{':
			if _, ok := s.lastDynamicImportClosedAt(s.lastToken); ok {
				// `import(...)` immediately followed by `{` was a
				// shorthand method named import, not a call.
				s.dropLastImport()
			}
			s.pushOpen()
			s.pushClassBrace()
			s.lastToken = s.i
			s.i++

		case b == '}':
			if s.openDepth == 0 {
				return ScanResult{}, s.fail(s.i, ReasonUnbalancedBracket)
			}
			if s.templateDepth != noTemplateDepth && s.openDepth == s.templateDepth {
				s.openDepth--
				s.templateDepth = s.templateStack[len(s.templateStack)-1]
				s.templateStack = s.templateStack[:len(s.templateStack)-1]
				s.i++

				anchor := templateAnchors[len(templateAnchors)-1]
				templateAnchors = templateAnchors[:len(templateAnchors)-1]
				outcome, err := s.lexTemplateChunk(anchor)
				if err != nil {
					return ScanResult{}, err
				}
				if outcome == templateEnded {
					s.lastToken = s.i - 1
				} else {
					templateAnchors = append(templateAnchors, anchor)
				}
				continue
			}

			if len(s.openTokenStack) == 0 || len(s.openClassStack) == 0 {
				return ScanResult{}, s.fail(s.i, ReasonUnbalancedBracket)
			}
			saved := s.popOpen()
			wasClass := s.popClassBrace()
			s.lastBraceAllowsRegex = isExpressionTerminator(s.src, saved) || wasClass
			if s.templateDepth != noTemplateDepth && s.openDepth < s.templateDepth {
				return ScanResult{}, s.fail(s.i, ReasonUnbalancedTemplate)
			}
			s.lastToken = s.i
			s.i++

		case b == 'i':
			if followsAt(s.src, s.i, "import") &&
				!identContinuesAfter(s.src, s.i, "import") &&
				keywordBoundaryBefore(s.src, s.i) {
				if err := s.recognizeImport(); err != nil {
					return ScanResult{}, err
				}
			} else {
				s.scanOther()
			}

		case b == 'e':
			if s.openDepth == 0 &&
				followsAt(s.src, s.i, "export") &&
				!identContinuesAfter(s.src, s.i, "export") &&
				keywordBoundaryBefore(s.src, s.i) {
				if err := s.recognizeExport(s.i); err != nil {
					return ScanResult{}, err
				}
			} else {
				s.scanOther()
			}

		case b == 'c':
			if followsAt(s.src, s.i, "class") &&
				!identContinuesAfter(s.src, s.i, "class") &&
				keywordBoundaryBefore(s.src, s.i) {
				after := s.i + len("class")
				if after < len(s.src) && isWhitespaceOrBreak(s.src[after]) {
					s.nextBraceIsClass = true
				}
				s.lastToken = after - 1
				s.i = after
			} else {
				s.scanOther()
			}

		default:
			s.scanOther()
		}
	}

	if s.openDepth != 0 {
		return ScanResult{}, s.fail(len(s.src), ReasonUnbalancedBracket)
	}
	if s.templateDepth != noTemplateDepth {
		return ScanResult{}, s.fail(len(s.src), ReasonUnbalancedTemplate)
	}

	return ScanResult{Imports: s.imports, Exports: s.exports}, nil
}

// scanOther advances past a single punctuator byte, or an
// identifier/keyword/number run, recording it as the last significant
// token. This is the fallback for every byte the driver doesn't
// dispatch on directly.
func (s *Scanner) scanOther() {
	if isPunctuator(s.src[s.i]) {
		s.lastToken = s.i
		s.i++
		return
	}
	start := s.i
	for s.i < len(s.src) && isIdentByte(s.src[s.i]) {
		s.i++
	}
	if s.i == start {
		s.i++
	}
	s.lastToken = s.i - 1
}
