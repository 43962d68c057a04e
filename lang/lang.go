// Package lang implements the yascl runtime: values, scope frames, the
// tree-walking evaluator and the core builtin functions.
package lang

// VarArgSymbol is the symbol that indicates a variadic function argument in a
// builtin's list of formal arguments.
const VarArgSymbol = "&"

// DefaultMaxStackHeight is the default limit on nested function calls.
const DefaultMaxStackHeight = 10000
