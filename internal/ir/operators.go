package ir

// UnaryOperator, BinaryOperator, TernaryOperator and NaryOperator are all
// plain named string types: encoding/json marshals a named string as a
// bare JSON string by default, so the variant name alone ("Add", "Print",
// ...) is the wire representation, matching the original implementation's
// enum serde helper without any custom MarshalJSON here.
type UnaryOperator string

const (
	UnaryNot    UnaryOperator = "Not"
	UnaryBitNot UnaryOperator = "BitNot"
	UnaryMinus  UnaryOperator = "Minus"
	UnaryType   UnaryOperator = "Type"
	UnaryErr    UnaryOperator = "Err"
	UnaryBool   UnaryOperator = "Bool"
	UnaryInt    UnaryOperator = "Int"
	UnaryFloat  UnaryOperator = "Float"
	UnaryStr    UnaryOperator = "Str"
	UnaryLen    UnaryOperator = "Len"
	UnaryPrint  UnaryOperator = "Print"
	UnaryRead   UnaryOperator = "Read"
)

// BinaryOperator covers every IR-level two-operand operation, including
// the built-in call forms that take exactly two arguments (push, remove,
// index, join, write) alongside the comparison/arithmetic/bitwise set.
// Comparison desugaring means only Eq, Lt, Leq and Is ever appear as
// primitive comparisons; `!=`, `>` and `>=` never reach the IR.
type BinaryOperator string

const (
	BinaryAdd        BinaryOperator = "Add"
	BinarySub        BinaryOperator = "Sub"
	BinaryMul        BinaryOperator = "Mul"
	BinaryDiv        BinaryOperator = "Div"
	BinaryModulo     BinaryOperator = "Modulo"
	BinaryGetItem    BinaryOperator = "GetItem"
	BinaryEq         BinaryOperator = "Eq"
	BinaryIs         BinaryOperator = "Is"
	BinaryLt         BinaryOperator = "Lt"
	BinaryLeq        BinaryOperator = "Leq"
	BinaryBitAnd     BinaryOperator = "BitAnd"
	BinaryBitOr      BinaryOperator = "BitOr"
	BinaryBitXor     BinaryOperator = "BitXor"
	BinaryLeftShift  BinaryOperator = "LeftShift"
	BinaryRightShift BinaryOperator = "RightShift"
	BinaryAnd        BinaryOperator = "And"
	BinaryOr         BinaryOperator = "Or"
	BinaryPush       BinaryOperator = "Push"
	BinaryRemove     BinaryOperator = "Remove"
	BinaryIndex      BinaryOperator = "Index"
	BinaryJoin       BinaryOperator = "Join"
	BinaryWrite      BinaryOperator = "Write"
)

// TernaryOperator names the IR's three-operand forms: Branch is the `if
// cond then a else b` conditional *expression* (distinct from the statement-level
// BranchStmt), SetItem is `a[b] = c`.
type TernaryOperator string

const (
	TernaryBranch  TernaryOperator = "Branch"
	TernarySetItem TernaryOperator = "SetItem"
)

// NaryOperator names variadic IR operations. List is the only one the
// grammar currently produces (`[a, b, c]`); Tuple is retained, unemitted,
// for back-end compatibility per the surface grammar's absence of a tuple
// literal.
type NaryOperator string

const (
	NaryTuple NaryOperator = "Tuple"
	NaryList  NaryOperator = "List"
)
