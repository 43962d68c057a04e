package lang

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/luthersystems/yascl/ast"
	"github.com/luthersystems/yascl/langerr"
	"github.com/luthersystems/yascl/parser/token"
)

const anonymousFunction = "anonymous function"

// EvalSource parses and evaluates source in env using the runtime's Reader.
// It is the single embedding point for drivers.
func (env *Env) EvalSource(name string, source string) (*Value, error) {
	return env.Load(name, strings.NewReader(source))
}

// Load reads a program from r and evaluates it in env.
func (env *Env) Load(name string, r io.Reader) (*Value, error) {
	if env.Runtime.Reader == nil {
		return nil, fmt.Errorf("no reader for environment runtime")
	}
	prog, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	return env.EvalProgram(prog)
}

// EvalProgram evaluates each statement of prog in env.  A return statement
// terminates the program and its operand is the result.  Otherwise the result
// is the value of the last statement, or null for an empty program.
func (env *Env) EvalProgram(prog *ast.Program) (*Value, error) {
	v, err := env.evalStatements(prog.Statements)
	if err != nil {
		return nil, err
	}
	return unwrapReturn(v), nil
}

func (env *Env) evalStatements(stmts []ast.Statement) (*Value, error) {
	result := Null()
	for _, stmt := range stmts {
		v, err := env.EvalStatement(stmt)
		if err != nil {
			return nil, err
		}
		if v.Type == TReturn {
			return v, nil
		}
		result = v
	}
	return result, nil
}

// EvalStatement evaluates stmt in env.  Let and mut statements evaluate to
// the value they bind.
func (env *Env) EvalStatement(stmt ast.Statement) (*Value, error) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		return env.evalBinding(s.Name.Name, s.Value, false)
	case *ast.MutStatement:
		return env.evalBinding(s.Name.Name, s.Value, true)
	case *ast.ReturnStatement:
		v, err := env.Eval(s.Value)
		if err != nil || v.Type == TReturn {
			return v, err
		}
		return Return(v), nil
	case *ast.ExpressionStatement:
		return env.Eval(s.Expression)
	default:
		return nil, env.Errorf(stmt.Pos(), "invalid statement: %T", stmt)
	}
}

func (env *Env) evalBinding(name string, expr ast.Expression, mutable bool) (*Value, error) {
	v, err := env.Eval(expr)
	if err != nil || v.Type == TReturn {
		return v, err
	}
	env.Define(name, v, mutable)
	return v, nil
}

// Eval evaluates expr in the context (scope) of env and returns the resulting
// Value.  A return statement nested in expr produces a TReturn marker which
// the caller must propagate.
func (env *Env) Eval(expr ast.Expression) (*Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return Int(e.Value), nil
	case *ast.FloatLiteral:
		return Float(e.Value), nil
	case *ast.StringLiteral:
		return String(e.Value), nil
	case *ast.BooleanLiteral:
		return Bool(e.Value), nil
	case *ast.Identifier:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, env.Errorf(e.Pos(), "name '%s' is not defined", e.Name)
		}
		return v, nil
	case *ast.ArrayLiteral:
		cells, ret, err := env.evalList(e.Elements)
		if err != nil || ret != nil {
			return ret, err
		}
		return Array(cells), nil
	case *ast.HashLiteral:
		return env.evalHash(e)
	case *ast.IndexExpression:
		target, err := env.Eval(e.Target)
		if err != nil || target.Type == TReturn {
			return target, err
		}
		mark := env.Runtime.hold(target)
		index, err := env.Eval(e.Index)
		env.Runtime.unhold(mark)
		if err != nil || index.Type == TReturn {
			return index, err
		}
		return env.evalIndex(e, target, index)
	case *ast.PrefixExpression:
		right, err := env.Eval(e.Right)
		if err != nil || right.Type == TReturn {
			return right, err
		}
		return env.evalPrefix(e, right)
	case *ast.InfixExpression:
		// Both operands are always evaluated, even for && and ||.
		left, err := env.Eval(e.Left)
		if err != nil || left.Type == TReturn {
			return left, err
		}
		mark := env.Runtime.hold(left)
		right, err := env.Eval(e.Right)
		env.Runtime.unhold(mark)
		if err != nil || right.Type == TReturn {
			return right, err
		}
		return env.evalInfix(e, left, right)
	case *ast.BlockExpression:
		return env.EvalBlock(e)
	case *ast.IfExpression:
		cond, err := env.Eval(e.Condition)
		if err != nil || cond.Type == TReturn {
			return cond, err
		}
		if cond.IsTruthy() {
			return env.EvalBlock(e.Consequence)
		}
		if e.Alternative != nil {
			return env.EvalBlock(e.Alternative)
		}
		return Null(), nil
	case *ast.FunctionLiteral:
		env.capture()
		return Function(e.ParamNames(), e.Body, env), nil
	case *ast.CallExpression:
		fn, err := env.Eval(e.Function)
		if err != nil || fn.Type == TReturn {
			return fn, err
		}
		mark := env.Runtime.hold(fn)
		args, ret, err := env.evalList(e.Arguments)
		env.Runtime.unhold(mark)
		if err != nil || ret != nil {
			return ret, err
		}
		name := anonymousFunction
		if id, ok := e.Function.(*ast.Identifier); ok {
			name = id.Name
		}
		return env.call(e.Pos(), name, fn, args)
	case *ast.AssignExpression:
		v, err := env.Eval(e.Value)
		if err != nil || v.Type == TReturn {
			return v, err
		}
		_, err = env.Mutate(e.Name.Name, v)
		switch {
		case errors.Is(err, ErrUnbound):
			return nil, env.Errorf(e.Pos(), "cannot assign to undefined name '%s'", e.Name.Name)
		case errors.Is(err, ErrImmutable):
			return nil, env.Errorf(e.Pos(), "cannot assign to immutable binding '%s'", e.Name.Name)
		case err != nil:
			return nil, env.Error(e.Pos(), err)
		}
		return v, nil
	default:
		return nil, env.Errorf(expr.Pos(), "invalid expression: %T", expr)
	}
}

// EvalBlock evaluates the statements of block in a new child scope of env.
func (env *Env) EvalBlock(block *ast.BlockExpression) (*Value, error) {
	scope := env.Extend()
	defer scope.release()
	return scope.evalStatements(block.Statements)
}

// evalList evaluates exprs from left to right.  If an expression produces a
// return marker evaluation stops and the marker is returned as ret.
func (env *Env) evalList(exprs []ast.Expression) (vals []*Value, ret *Value, err error) {
	defer env.Runtime.unhold(env.Runtime.hold())
	vals = make([]*Value, len(exprs))
	for i, expr := range exprs {
		v, err := env.Eval(expr)
		if err != nil {
			return nil, nil, err
		}
		if v.Type == TReturn {
			return nil, v, nil
		}
		vals[i] = v
		env.Runtime.hold(v)
	}
	return vals, nil, nil
}

func (env *Env) evalHash(e *ast.HashLiteral) (*Value, error) {
	defer env.Runtime.unhold(env.Runtime.hold())
	m := make(map[string]*Value, len(e.Pairs))
	for _, pair := range e.Pairs {
		key, err := env.Eval(pair.Key)
		if err != nil || key.Type == TReturn {
			return key, err
		}
		if key.Type != TString {
			return nil, env.Errorf(pair.Key.Pos(), "cannot use '%s' as a key", key)
		}
		val, err := env.Eval(pair.Value)
		if err != nil || val.Type == TReturn {
			return val, err
		}
		m[key.Str] = val
		env.Runtime.hold(val)
	}
	return Hash(m), nil
}

// Call invokes fn with args.  Builtin functions use Call to invoke the
// function values they are given.
func (env *Env) Call(fn *Value, args []*Value) (*Value, error) {
	var loc *token.Location
	if top := env.Runtime.Stack.Top(); top != nil {
		loc = top.Source
	}
	return env.call(loc, anonymousFunction, fn, args)
}

func (env *Env) call(loc *token.Location, name string, fn *Value, args []*Value) (*Value, error) {
	switch fn.Type {
	case TFunction:
		if len(args) != len(fn.Params) {
			return nil, env.Errorf(loc, "expected %d argument(s), got %d", len(fn.Params), len(args))
		}
		if err := env.Runtime.Stack.Push(name, loc); err != nil {
			return nil, env.Error(loc, err)
		}
		defer env.Runtime.Stack.Pop()
		scope := fn.Env.Extend()
		defer scope.release()
		for i, param := range fn.Params {
			scope.Define(param, args[i], false)
		}
		env.Runtime.maybeCollect()
		v, err := scope.evalStatements(fn.Body.Statements)
		if err != nil {
			return nil, err
		}
		return unwrapReturn(v), nil
	case TBuiltin:
		def := fn.Builtin
		if err := checkArity(def.Formals(), len(args)); err != nil {
			return nil, env.Errorf(loc, "%s: %v", def.Name(), err)
		}
		if err := env.Runtime.Stack.Push(def.Name(), loc); err != nil {
			return nil, env.Error(loc, err)
		}
		defer env.Runtime.Stack.Pop()
		defer env.Runtime.unhold(env.Runtime.hold(args...))
		v, err := def.Eval(env, args)
		if err != nil {
			if langerr.KindOf(err) != langerr.Invalid {
				return nil, err
			}
			return nil, env.Errorf(loc, "%s: %v", def.Name(), err)
		}
		return v, nil
	default:
		return nil, env.Errorf(loc, "value '%s' of type %s is not callable", fn, fn.Type)
	}
}

func unwrapReturn(v *Value) *Value {
	if v.Type == TReturn {
		return v.Cells[0]
	}
	return v
}
