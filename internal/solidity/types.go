package solidity

// Structural model produced by Extract. Everything here is derived from the
// source text lexically; no compilation or expression evaluation happens.
// Units are built once per scan and read-only afterwards.

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityExternal Visibility = "external"
	VisibilityInternal Visibility = "internal"
	VisibilityPrivate  Visibility = "private"
)

type StateMutability string

const (
	MutabilityPure       StateMutability = "pure"
	MutabilityView       StateMutability = "view"
	MutabilityPayable    StateMutability = "payable"
	MutabilityNonPayable StateMutability = "nonpayable"
)

// VarMutability qualifies a state variable declaration.
type VarMutability string

const (
	VarMutable   VarMutability = "mutable"
	VarConstant  VarMutability = "constant"
	VarImmutable VarMutability = "immutable"
)

type StmtKind string

const (
	StmtExternalCall StmtKind = "external-call"
	StmtStorageWrite StmtKind = "storage-write"
	StmtStorageRead  StmtKind = "storage-read"
	StmtRequire      StmtKind = "require"
	StmtAssignment   StmtKind = "assignment"
	StmtLoopHeader   StmtKind = "loop-header"
	StmtReturn       StmtKind = "return"
	StmtOther        StmtKind = "other"
)

type CallKind string

const (
	CallLowLevel CallKind = "call"
	CallDelegate CallKind = "delegatecall"
	CallStatic   CallKind = "staticcall"
	CallTransfer CallKind = "transfer"
	CallSend     CallKind = "send"
)

// ValueBearing reports whether the call kind moves ether by construction
// (transfer/send always do; low-level call only with a value option, which
// the extractor records separately in CallValue).
func (k CallKind) ValueBearing() bool { return k == CallTransfer || k == CallSend }

// Statement is one classified source statement. Classification is a tagged
// union with StmtOther as the totality fallback: anything the classifier does
// not recognize (inline assembly included) lands there instead of failing.
type Statement struct {
	Kind StmtKind
	Line int    // 1-based line in the source unit
	Raw  string // trimmed source text of the line

	// External call fields (Kind == StmtExternalCall).
	Call       CallKind
	CallTarget string   // expression the call primitive is invoked on
	CallValue  string   // value option text, empty when absent
	CallArgs   string   // raw argument text
	BoundVars  []string // identifiers the call result is bound to

	// Condition fields (Kind == StmtRequire; covers require/assert and
	// bare if-guards, distinguished by Keyword).
	Keyword          string
	Cond             string
	HasStringMessage bool

	// Storage fields (Kind == StmtStorageWrite / StmtStorageRead).
	VarRef string

	// Context computed for every statement regardless of kind.
	InLoop bool     // lexically inside a for/while body
	Reads  []string // state variables referenced on this line, declaration order
}

type StateVariable struct {
	Name           string
	Type           string
	Visibility     Visibility
	Mutability     VarMutability
	HasInitializer bool
	Line           int
}

type Modifier struct {
	Name       string
	Line       int
	Statements []Statement
	// EnforcesAuth is true when the body compares msg.sender and reverts on
	// mismatch; only modifiers declared in the same unit are ever resolved.
	EnforcesAuth bool
}

type Function struct {
	Name       string
	Index      int // declaration order within the unit
	Line       int
	Signature  string // raw header text
	Visibility Visibility
	Mutability StateMutability
	Params     []string // parameter names, in order
	Modifiers  []string // applied modifier names, in order
	Statements []Statement

	HasExternalCall     bool
	HasLoop             bool
	IsConstructor       bool
	IsReceiveOrFallback bool
}

// ContractUnit is one declared contract/library/interface.
type ContractUnit struct {
	Name      string
	Kind      string // contract | interface | library
	File      string
	Index     int // declaration order within the source unit
	Line      int
	StateVars []StateVariable
	Functions []Function
	Modifiers []Modifier

	// Source holds the full file's lines for snippet extraction.
	Source []string
}

func (u *ContractUnit) StateVar(name string) *StateVariable {
	for i := range u.StateVars {
		if u.StateVars[i].Name == name {
			return &u.StateVars[i]
		}
	}
	return nil
}

func (u *ContractUnit) ModifierByName(name string) *Modifier {
	for i := range u.Modifiers {
		if u.Modifiers[i].Name == name {
			return &u.Modifiers[i]
		}
	}
	return nil
}

// AcceptsEther reports whether the unit can receive value: a payable
// receive/fallback or any payable function.
func (u *ContractUnit) AcceptsEther() bool {
	for _, f := range u.Functions {
		if f.Mutability == MutabilityPayable {
			return true
		}
	}
	return false
}
