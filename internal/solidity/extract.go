package solidity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/secudityLabs/secudity-audit-toolkit/internal/model"
	"github.com/secudityLabs/secudity-audit-toolkit/internal/util"
)

// Extract parses contract source text into structural units. It is total: a
// malformed unit becomes a parse-warning finding instead of an error, and a
// failure in one unit never blocks extraction of its siblings.
func Extract(source, file string) ([]ContractUnit, []model.Finding) {
	rawLines := strings.Split(source, "\n")
	lines := stripComments(rawLines)

	var units []ContractUnit
	var warnings []model.Finding

	headers := findContractHeaders(lines)
	if len(headers) == 0 {
		if strings.TrimSpace(source) != "" {
			warnings = append(warnings, parseWarning(file, "", 1, "no contract declaration recognized in source unit"))
		}
		return units, warnings
	}

	for i, h := range headers {
		end := len(lines) - 1
		if i+1 < len(headers) {
			end = headers[i+1].line - 1
		}
		unit, warn := extractUnit(lines, rawLines, file, len(units), h, end)
		if warn != nil {
			warnings = append(warnings, *warn)
		}
		if unit != nil {
			units = append(units, *unit)
		}
	}
	return units, warnings
}

type contractHeader struct {
	line int // 0-based
	kind string
	name string
}

var reContract = regexp.MustCompile(`^\s*(?:abstract\s+)?(contract|interface|library)\s+([A-Za-z_$][\w$]*)`)

func findContractHeaders(lines []string) []contractHeader {
	var out []contractHeader
	depth := 0
	for i, l := range lines {
		if depth == 0 {
			if m := reContract.FindStringSubmatch(l); m != nil {
				out = append(out, contractHeader{line: i, kind: m[1], name: m[2]})
			}
		}
		depth += strings.Count(l, "{") - strings.Count(l, "}")
		if depth < 0 {
			depth = 0 // tolerate stray closing braces
		}
	}
	return out
}

// extractUnit builds one ContractUnit. A panic while parsing adversarial
// input is converted to a parse warning so sibling units still extract.
func extractUnit(lines, rawLines []string, file string, index int, h contractHeader, maxEnd int) (unit *ContractUnit, warn *model.Finding) {
	defer func() {
		if r := recover(); r != nil {
			w := parseWarning(file, h.name, h.line+1, fmt.Sprintf("unit %s could not be fully parsed: %v", h.name, r))
			w.ContractIndex = index
			warn = &w
			unit = nil
		}
	}()

	open := -1
	for i := h.line; i <= maxEnd; i++ {
		if strings.Contains(lines[i], "{") {
			open = i
			break
		}
	}
	if open < 0 {
		w := parseWarning(file, h.name, h.line+1, fmt.Sprintf("unit %s has no body", h.name))
		w.ContractIndex = index
		return nil, &w
	}
	end, closed := findUnitEnd(lines, open, maxEnd)
	if !closed {
		w := parseWarning(file, h.name, h.line+1, fmt.Sprintf("unit %s has an unterminated body; extraction is best-effort", h.name))
		w.ContractIndex = index
		warn = &w
	}

	u := &ContractUnit{
		Name:   h.name,
		Kind:   h.kind,
		File:   file,
		Index:  index,
		Line:   h.line + 1,
		Source: rawLines,
	}

	collectStateVars(u, lines, open, end)
	collectMembers(u, lines, open, end)
	return u, warn
}

// findUnitEnd walks brace depth from the opening line to the line closing
// the unit. The second return is false when the body never closes.
func findUnitEnd(lines []string, open, maxEnd int) (int, bool) {
	if maxEnd >= len(lines) {
		maxEnd = len(lines) - 1
	}
	depth := 0
	for i := open; i <= maxEnd; i++ {
		depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		if depth <= 0 {
			return i, true
		}
	}
	return maxEnd, false
}

var memberKeywords = map[string]bool{
	"function": true, "constructor": true, "receive": true, "fallback": true,
	"modifier": true, "event": true, "error": true, "struct": true,
	"enum": true, "using": true, "emit": true, "type": true,
	"import": true, "pragma": true, "return": true, "require": true,
	"if": true, "for": true, "while": true, "assembly": true,
}

// collectStateVars scans depth-1 declarations ending in ';'.
func collectStateVars(u *ContractUnit, lines []string, open, end int) {
	depth := 0
	for i := open; i <= end; i++ {
		atTop := depth == 1
		depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		if i == open {
			continue
		}
		trimmed := strings.TrimSpace(lines[i])
		if !atTop || trimmed == "" || !strings.HasSuffix(trimmed, ";") || strings.Contains(trimmed, "{") {
			continue
		}
		first := firstWord(trimmed)
		if memberKeywords[first] {
			continue
		}
		if sv, ok := parseStateVar(trimmed, i+1); ok {
			u.StateVars = append(u.StateVars, sv)
		}
	}
}

var reIdent = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

func parseStateVar(decl string, line int) (StateVariable, bool) {
	body := strings.TrimSuffix(decl, ";")
	hasInit := false
	if i := indexTopLevel(body, '='); i >= 0 {
		hasInit = true
		body = body[:i]
	}
	typ, rest := splitLeadingType(strings.TrimSpace(body))
	if typ == "" {
		return StateVariable{}, false
	}
	sv := StateVariable{Type: typ, Visibility: VisibilityInternal, Mutability: VarMutable, HasInitializer: hasInit, Line: line}
	for _, tok := range strings.Fields(rest) {
		switch tok {
		case "public":
			sv.Visibility = VisibilityPublic
		case "private":
			sv.Visibility = VisibilityPrivate
		case "internal":
			sv.Visibility = VisibilityInternal
		case "constant":
			sv.Mutability = VarConstant
		case "immutable":
			sv.Mutability = VarImmutable
		case "override", "payable":
			// qualifier on the declaration, not the name
		default:
			if sv.Name == "" && reIdent.MatchString(tok) {
				sv.Name = tok
			}
		}
	}
	if sv.Name == "" {
		return StateVariable{}, false
	}
	return sv, true
}

// splitLeadingType peels the declared type off a declaration, handling
// mapping(...) and array suffixes.
func splitLeadingType(s string) (string, string) {
	if strings.HasPrefix(s, "mapping") {
		openIdx := strings.Index(s, "(")
		if openIdx < 0 {
			return "", ""
		}
		closeIdx := matchParen(s, openIdx)
		if closeIdx < 0 {
			return "", ""
		}
		typ := s[:closeIdx+1]
		rest := s[closeIdx+1:]
		// array-of-mapping suffixes
		for strings.HasPrefix(strings.TrimSpace(rest), "[") {
			rest = strings.TrimSpace(rest)
			rb := strings.Index(rest, "]")
			if rb < 0 {
				break
			}
			typ += rest[:rb+1]
			rest = rest[rb+1:]
		}
		return typ, rest
	}
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return "", ""
	}
	typ := fields[0]
	rest := strings.Join(fields[1:], " ")
	if typ == "address" && strings.HasPrefix(rest, "payable ") {
		typ = "address payable"
		rest = strings.TrimPrefix(rest, "payable ")
	}
	return typ, rest
}

var (
	reFunction    = regexp.MustCompile(`^\s*function\s+([A-Za-z_$][\w$]*)\s*\(`)
	reConstructor = regexp.MustCompile(`^\s*constructor\s*\(`)
	reReceive     = regexp.MustCompile(`^\s*receive\s*\(`)
	reFallback    = regexp.MustCompile(`^\s*fallback\s*\(`)
	reModifier    = regexp.MustCompile(`^\s*modifier\s+([A-Za-z_$][\w$]*)`)
)

// collectMembers walks depth-1 lines looking for function and modifier
// declarations and parses their bodies into classified statements.
func collectMembers(u *ContractUnit, lines []string, open, end int) {
	stateNames := make([]string, 0, len(u.StateVars))
	for _, sv := range u.StateVars {
		stateNames = append(stateNames, sv.Name)
	}

	depth := 0
	i := open
	for i <= end {
		atTop := depth == 1
		line := lines[i]
		if atTop {
			isFn := reFunction.MatchString(line) || reConstructor.MatchString(line) ||
				reReceive.MatchString(line) || reFallback.MatchString(line)
			isMod := reModifier.MatchString(line)
			if isFn || isMod {
				headerEnd, bodyOpen, bodyClose := memberSpan(lines, i, end)
				header := joinTrim(lines[i : headerEnd+1])
				var stmts []Statement
				if bodyOpen >= 0 {
					stmts = classifyBody(lines, bodyOpen, bodyClose, stateNames)
				}
				if isMod {
					m := reModifier.FindStringSubmatch(line)
					mod := Modifier{Name: m[1], Line: i + 1, Statements: stmts}
					mod.EnforcesAuth = enforcesAuth(stmts)
					u.Modifiers = append(u.Modifiers, mod)
				} else {
					fn := parseFunctionHeader(header, i+1)
					fn.Index = len(u.Functions)
					fn.Statements = stmts
					for _, s := range stmts {
						if s.Kind == StmtExternalCall {
							fn.HasExternalCall = true
						}
						if s.Kind == StmtLoopHeader {
							fn.HasLoop = true
						}
					}
					u.Functions = append(u.Functions, fn)
				}
				// advance past the member
				next := headerEnd
				if bodyClose > next {
					next = bodyClose
				}
				for j := i; j <= next && j < len(lines); j++ {
					depth += strings.Count(lines[j], "{") - strings.Count(lines[j], "}")
				}
				i = next + 1
				continue
			}
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		i++
	}
}

// memberSpan locates the end of a member header (line of its '{' or ';') and
// the body's open/close lines. bodyOpen is -1 for bodyless declarations.
func memberSpan(lines []string, start, max int) (headerEnd, bodyOpen, bodyClose int) {
	for i := start; i <= max; i++ {
		if idx := strings.Index(lines[i], "{"); idx >= 0 {
			headerEnd = i
			bodyOpen = i
			depth := 0
			for j := i; j <= max; j++ {
				depth += strings.Count(lines[j], "{") - strings.Count(lines[j], "}")
				if depth <= 0 {
					return headerEnd, bodyOpen, j
				}
			}
			return headerEnd, bodyOpen, max
		}
		if strings.Contains(lines[i], ";") {
			return i, -1, i
		}
	}
	return start, -1, start
}

func joinTrim(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, strings.TrimSpace(l))
	}
	joined := strings.Join(parts, " ")
	if idx := strings.Index(joined, "{"); idx >= 0 {
		joined = joined[:idx]
	}
	return strings.TrimSpace(joined)
}

var fnKeywords = map[string]bool{
	"public": true, "external": true, "internal": true, "private": true,
	"pure": true, "view": true, "payable": true, "virtual": true,
	"override": true, "returns": true, "memory": true, "calldata": true,
	"storage": true,
}

var reParenSuffix = regexp.MustCompile(`\s*(returns|override)\s*\([^)]*\)`)

func parseFunctionHeader(header string, line int) Function {
	fn := Function{Line: line, Signature: header, Visibility: VisibilityPublic, Mutability: MutabilityNonPayable}
	switch {
	case strings.HasPrefix(header, "constructor"):
		fn.Name = "constructor"
		fn.IsConstructor = true
	case strings.HasPrefix(header, "receive"):
		fn.Name = "receive"
		fn.IsReceiveOrFallback = true
		fn.Visibility = VisibilityExternal
	case strings.HasPrefix(header, "fallback"):
		fn.Name = "fallback"
		fn.IsReceiveOrFallback = true
		fn.Visibility = VisibilityExternal
	default:
		if m := reFunction.FindStringSubmatch(header); m != nil {
			fn.Name = m[1]
		}
	}

	openIdx := strings.Index(header, "(")
	if openIdx < 0 {
		return fn
	}
	closeIdx := matchParen(header, openIdx)
	if closeIdx < 0 {
		return fn
	}
	fn.Params = paramNames(header[openIdx+1 : closeIdx])

	rest := reParenSuffix.ReplaceAllString(header[closeIdx+1:], "")
	for _, tok := range strings.Fields(rest) {
		name := tok
		if p := strings.Index(name, "("); p >= 0 {
			name = name[:p]
		}
		switch name {
		case "public":
			fn.Visibility = VisibilityPublic
		case "external":
			fn.Visibility = VisibilityExternal
		case "internal":
			fn.Visibility = VisibilityInternal
		case "private":
			fn.Visibility = VisibilityPrivate
		case "pure":
			fn.Mutability = MutabilityPure
		case "view":
			fn.Mutability = MutabilityView
		case "payable":
			fn.Mutability = MutabilityPayable
		case "virtual", "override", "returns", "":
			// not a modifier
		default:
			if reIdent.MatchString(name) {
				fn.Modifiers = append(fn.Modifiers, name)
			}
		}
	}
	return fn
}

var reTypeWord = regexp.MustCompile(`^(uint\d*|int\d*|bytes\d*|bool|address|string|mapping)(\[\])*$`)

func paramNames(params string) []string {
	var out []string
	for _, piece := range splitTopLevel(params, ',') {
		fields := strings.Fields(strings.TrimSpace(piece))
		if len(fields) == 0 {
			continue
		}
		last := fields[len(fields)-1]
		if fnKeywords[last] || reTypeWord.MatchString(last) || !reIdent.MatchString(last) {
			continue // unnamed parameter
		}
		if len(fields) == 1 && reTypeWord.MatchString(fields[0]) {
			continue
		}
		out = append(out, last)
	}
	return out
}

// classifyBody turns the lines of a member body into ordered statements.
// Source order is preserved exactly; a line with several ';'-separated
// statements yields one Statement per segment in order.
func classifyBody(lines []string, open, close int, stateNames []string) []Statement {
	var stmts []Statement
	depth := 0
	var loopDepths []int
	asmDepth := -1

	for i := open; i <= close && i < len(lines); i++ {
		seg := lines[i]
		if i == open {
			if idx := strings.Index(seg, "{"); idx >= 0 {
				seg = seg[idx+1:]
			}
		}
		if i == close {
			if idx := strings.LastIndex(seg, "}"); idx >= 0 {
				seg = seg[:idx]
			}
		}

		depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		// pop loop scopes that closed on this line
		for len(loopDepths) > 0 && depth < loopDepths[len(loopDepths)-1] {
			loopDepths = loopDepths[:len(loopDepths)-1]
		}
		if asmDepth >= 0 && depth < asmDepth {
			asmDepth = -1
		}

		for _, piece := range splitTopLevel(seg, ';') {
			trimmed := strings.TrimSpace(piece)
			trimmed = strings.Trim(trimmed, "{}")
			trimmed = strings.TrimSpace(trimmed)
			if trimmed == "" {
				continue
			}
			inAsm := asmDepth >= 0
			st := classifyStatement(trimmed, i+1, stateNames, len(loopDepths) > 0, inAsm)
			stmts = append(stmts, st)
			if st.Kind == StmtLoopHeader {
				loopDepths = append(loopDepths, depth)
			}
			if firstWord(trimmed) == "assembly" && asmDepth < 0 {
				asmDepth = depth
			}
		}
	}
	return stmts
}

var reCallPrim = regexp.MustCompile(`\.\s*(call|delegatecall|staticcall|send|transfer)\s*[({]`)
var reAssign = regexp.MustCompile(`(^|[^=!<>+\-*/%&|^])=([^=]|$)`)
var reCompound = regexp.MustCompile(`(\+=|-=|\*=|/=|%=|\+\+|--)`)

func classifyStatement(trimmed string, line int, stateNames []string, inLoop, inAsm bool) Statement {
	st := Statement{Kind: StmtOther, Line: line, Raw: trimmed, InLoop: inLoop}
	st.Reads = referencedState(trimmed, stateNames)
	if inAsm {
		return st // assembly is opaque
	}
	first := firstWord(trimmed)

	switch {
	case first == "for" || first == "while" || first == "do":
		st.Kind = StmtLoopHeader
		return st
	case first == "require" || first == "assert":
		st.Kind = StmtRequire
		st.Keyword = first
		st.Cond, st.HasStringMessage = parseCondition(trimmed)
		return st
	case first == "if":
		st.Kind = StmtRequire
		st.Keyword = "if"
		st.Cond, _ = parseCondition(trimmed)
		return st
	case first == "return":
		st.Kind = StmtReturn
		return st
	}

	if m := reCallPrim.FindStringSubmatchIndex(trimmed); m != nil {
		fillExternalCall(&st, trimmed, m)
		return st
	}

	if loc := reAssign.FindStringIndex(trimmed); loc != nil || reCompound.MatchString(trimmed) {
		lhs := trimmed
		if loc != nil {
			lhs = trimmed[:loc[0]+1]
		} else if cl := reCompound.FindStringIndex(trimmed); cl != nil {
			lhs = trimmed[:cl[0]]
		}
		base := baseIdentifier(lhs)
		if base != "" && containsString(stateNames, base) {
			st.Kind = StmtStorageWrite
			st.VarRef = base
			return st
		}
		st.Kind = StmtAssignment
		return st
	}

	if len(st.Reads) > 0 {
		st.Kind = StmtStorageRead
		st.VarRef = st.Reads[0]
	}
	return st
}

// fillExternalCall populates call fields from a primitive match. m holds the
// regexp submatch indexes of reCallPrim.
func fillExternalCall(st *Statement, trimmed string, m []int) {
	st.Kind = StmtExternalCall
	prim := trimmed[m[2]:m[3]]
	st.Call = CallKind(prim)
	st.CallTarget = callTarget(trimmed, m[0])

	rest := trimmed[m[1]-1:] // starts at '(' or '{'
	if strings.HasPrefix(rest, "{") {
		if closeIdx := matchBrace(rest, 0); closeIdx > 0 {
			opts := rest[1:closeIdx]
			if v := strings.Index(opts, "value:"); v >= 0 {
				st.CallValue = strings.TrimSpace(strings.SplitN(opts[v+len("value:"):], ",", 2)[0])
			} else {
				st.CallValue = strings.TrimSpace(opts)
			}
			rest = rest[closeIdx+1:]
		}
	}
	if p := strings.Index(rest, "("); p >= 0 {
		if q := matchParen(rest, p); q > p {
			st.CallArgs = rest[p+1 : q]
		}
	}
	if st.Call == CallTransfer || st.Call == CallSend {
		if st.CallValue == "" {
			st.CallValue = strings.TrimSpace(st.CallArgs)
		}
	}
	st.BoundVars = boundVars(trimmed, m[0])
}

// callTarget walks backwards from the call primitive's dot to recover the
// receiver expression, balancing parens and brackets.
func callTarget(s string, dot int) string {
	depth := 0
	i := dot - 1
	for i >= 0 {
		c := s[i]
		switch c {
		case ')', ']':
			depth++
		case '(', '[':
			if depth == 0 {
				goto done
			}
			depth--
		case ' ', '\t', '=', ',', '+', '-', '*', '/', '!', '&', '|', '<', '>':
			if depth == 0 {
				goto done
			}
		}
		i--
	}
done:
	return strings.TrimSpace(s[i+1 : dot])
}

// boundVars extracts identifiers on the left of an assignment preceding the
// call, e.g. (bool success, ) = target.call(...).
func boundVars(s string, callStart int) []string {
	eq := -1
	for i := 0; i < callStart; i++ {
		if s[i] == '=' && (i+1 >= len(s) || s[i+1] != '=') && (i == 0 || s[i-1] != '=' && s[i-1] != '!' && s[i-1] != '<' && s[i-1] != '>') {
			eq = i
			break
		}
	}
	if eq < 0 {
		return nil
	}
	lhs := strings.Trim(strings.TrimSpace(s[:eq]), "()")
	var out []string
	for _, piece := range strings.Split(lhs, ",") {
		fields := strings.Fields(strings.TrimSpace(piece))
		if len(fields) == 0 {
			continue
		}
		name := fields[len(fields)-1]
		if reIdent.MatchString(name) && !fnKeywords[name] && !reTypeWord.MatchString(name) {
			out = append(out, name)
		}
	}
	return out
}

// parseCondition extracts the condition text of require/assert/if statements
// and whether a string message argument is present.
func parseCondition(s string) (string, bool) {
	open := strings.Index(s, "(")
	if open < 0 {
		return "", false
	}
	closeIdx := matchParen(s, open)
	if closeIdx < 0 {
		closeIdx = len(s)
	}
	args := s[open+1 : closeIdx]
	hasMsg := false
	cond := args
	if q := strings.Index(args, `"`); q >= 0 {
		hasMsg = true
		if c := strings.LastIndex(args[:q], ","); c >= 0 {
			cond = args[:c]
		}
	}
	return strings.TrimSpace(cond), hasMsg
}

func enforcesAuth(stmts []Statement) bool {
	for i, st := range stmts {
		if st.Kind != StmtRequire || !strings.Contains(st.Cond, "msg.sender") {
			continue
		}
		if st.Keyword == "require" || st.Keyword == "assert" {
			return true
		}
		// bare if-guard counts only when a revert follows
		for _, later := range stmts[i:] {
			if strings.Contains(later.Raw, "revert") {
				return true
			}
		}
	}
	return false
}

func referencedState(line string, stateNames []string) []string {
	var out []string
	for _, name := range stateNames {
		if containsWord(line, name) {
			out = append(out, name)
		}
	}
	return out
}

func parseWarning(file, contract string, line int, msg string) model.Finding {
	return model.Finding{
		RuleID:        "SOL-PARSE-WARNING",
		Category:      model.CategoryParseWarning,
		Severity:      model.SeverityInfo,
		Confidence:    1.0,
		File:          file,
		Contract:      contract,
		Line:          line,
		Message:       msg,
		Remediation:   "Check the source for syntax errors; unparsed regions are excluded from analysis.",
		Fingerprint:   util.Fingerprint("SOL-PARSE-WARNING", file, line, msg),
		ContractIndex: -1,
		FunctionIndex: -1,
	}
}

// ---- lexical helpers ----

// stripComments removes // and /* */ comments, preserving line count and
// string literals.
func stripComments(lines []string) []string {
	out := make([]string, len(lines))
	inBlock := false
	for i, l := range lines {
		var b strings.Builder
		inStr := false
		j := 0
		for j < len(l) {
			c := l[j]
			switch {
			case inBlock:
				if c == '*' && j+1 < len(l) && l[j+1] == '/' {
					inBlock = false
					j++
				}
			case inStr:
				b.WriteByte(c)
				if c == '\\' && j+1 < len(l) {
					b.WriteByte(l[j+1])
					j++
				} else if c == '"' {
					inStr = false
				}
			case c == '"':
				inStr = true
				b.WriteByte(c)
			case c == '/' && j+1 < len(l) && l[j+1] == '/':
				j = len(l)
				continue
			case c == '/' && j+1 < len(l) && l[j+1] == '*':
				inBlock = true
				j++
			default:
				b.WriteByte(c)
			}
			j++
		}
		out[i] = b.String()
	}
	return out
}

func firstWord(s string) string {
	end := 0
	for end < len(s) && (isIdentChar(s[end])) {
		end++
	}
	return s[:end]
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func baseIdentifier(s string) string {
	s = strings.TrimSpace(s)
	// skip leading unary operators and parens
	s = strings.TrimLeft(s, "(!+-")
	end := 0
	for end < len(s) && isIdentChar(s[end]) {
		end++
	}
	return s[:end]
}

// ContainsWord reports whether word occurs in s as a whole identifier.
func ContainsWord(s, word string) bool { return containsWord(s, word) }

func containsWord(s, word string) bool {
	idx := 0
	for {
		p := strings.Index(s[idx:], word)
		if p < 0 {
			return false
		}
		p += idx
		beforeOK := p == 0 || !isIdentChar(s[p-1])
		after := p + len(word)
		afterOK := after >= len(s) || !isIdentChar(s[after])
		if beforeOK && afterOK {
			return true
		}
		idx = p + len(word)
	}
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// matchParen returns the index of the ')' matching the '(' at open, or -1.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func matchBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on sep occurrences outside parens/brackets/braces.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		default:
			if s[i] == sep && depth == 0 {
				out = append(out, s[last:i])
				last = i + 1
			}
		}
	}
	out = append(out, s[last:])
	return out
}

// indexTopLevel finds c outside parens/brackets, or -1.
func indexTopLevel(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		default:
			if s[i] == c && depth == 0 {
				return i
			}
		}
	}
	return -1
}
