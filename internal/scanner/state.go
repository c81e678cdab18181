package scanner

// noToken is the sentinel for Scanner.lastToken meaning "no
// significant token has been seen yet" (start of input).
const noToken = -1

// noTemplateDepth is the sentinel for Scanner.templateDepth meaning
// "not currently inside a template substitution".
const noTemplateDepth = -1

// Scanner holds all mutable state for one call to Parse. Its lifetime
// is a single scan; it is never reused across inputs.
//
// The bracket stack is a contiguous slice indexed by depth (cheap
// append/truncate) rather than a linked structure, following the
// teacher's StateMachine.contextStack shape in
// pkgs/lexer/lexer_state.go.
type Scanner struct {
	src []byte
	i   int

	lastToken int

	openDepth       int
	openTokenStack  []int
	openClassStack  []bool

	nextBraceIsClass bool

	// lastCloseParenIsKeywordParen, lastBraceAllowsRegex, and
	// lastSlashWasDivision carry §4.4.1 disambiguation context forward
	// from the token that was just closed to the next '/' dispatch.
	// Each is only meaningful while lastToken still points at that
	// token's byte.
	lastCloseParenIsKeywordParen bool
	lastBraceAllowsRegex         bool
	lastSlashWasDivision         bool

	templateDepth int
	templateStack []int

	imports []ImportRecord
	exports []Export
}

func newScanner(src []byte) *Scanner {
	return &Scanner{
		src:            src,
		lastToken:      noToken,
		templateDepth:  noTemplateDepth,
		openTokenStack: make([]int, 0, 16),
		openClassStack: make([]bool, 0, 16),
		templateStack:  make([]int, 0, 4),
		imports:        make([]ImportRecord, 0, 8),
		exports:        make([]Export, 0, 8),
	}
}

func (s *Scanner) pushOpen() {
	s.openTokenStack = append(s.openTokenStack, s.lastToken)
	s.openDepth++
}

// popOpen pops the bracket stack, returning the token saved when the
// matching opener was pushed. Caller must have checked that
// openTokenStack is non-empty.
func (s *Scanner) popOpen() int {
	top := s.openTokenStack[len(s.openTokenStack)-1]
	s.openTokenStack = s.openTokenStack[:len(s.openTokenStack)-1]
	s.openDepth--
	return top
}

func (s *Scanner) pushClassBrace() {
	s.openClassStack = append(s.openClassStack, s.nextBraceIsClass)
	s.nextBraceIsClass = false
}

func (s *Scanner) popClassBrace() bool {
	top := s.openClassStack[len(s.openClassStack)-1]
	s.openClassStack = s.openClassStack[:len(s.openClassStack)-1]
	return top
}

// lastIsDynamicImportAwaitingEnd reports whether the most recently
// emitted import record is a DynamicImport whose closing paren has
// not yet been seen, returning it for patching.
func (s *Scanner) lastIsDynamicImportAwaitingEnd() (*DynamicImport, bool) {
	if len(s.imports) == 0 {
		return nil, false
	}
	di, ok := s.imports[len(s.imports)-1].(*DynamicImport)
	if !ok || di.SpecifierExprEnd != unpatchedSentinel {
		return nil, false
	}
	return di, true
}

// dropLastImport removes the most recently emitted import record,
// used when `import(` turns out to have been a method name.
func (s *Scanner) dropLastImport() {
	s.imports = s.imports[:len(s.imports)-1]
}

// lastDynamicImportClosedAt reports whether the most recently emitted
// import record is a DynamicImport whose closing paren sits exactly at
// pos, meaning nothing has been scanned since that ')' — the shape a
// retracted `import(){ ... }` method definition takes.
func (s *Scanner) lastDynamicImportClosedAt(pos int) (*DynamicImport, bool) {
	if len(s.imports) == 0 {
		return nil, false
	}
	di, ok := s.imports[len(s.imports)-1].(*DynamicImport)
	if !ok || di.SpecifierExprEnd != pos {
		return nil, false
	}
	return di, true
}
