package yascltest

import "testing"

func TestScope(t *testing.T) {
	tests := TestSuite{
		{"blocks", TestSequence{
			{"let x = 1", "1", ""},
			{"{ let x = 2 x }", "2", ""},
			{"x", "1", ""},
			{"{ let y = 5 }", "5", ""},
			{"y", "RuntimeError: test:1:1: name 'y' is not defined", ""},
		}},
		{"mutation", TestSequence{
			{"mut m = 1", "1", ""},
			{"{ m = 2 }", "2", ""},
			{"m", "2", ""},
			{"{ mut m = 10 m = 20 }", "20", ""},
			{"m", "2", ""},
			{"z = 1", "RuntimeError: test:1:1: cannot assign to undefined name 'z'", ""},
			{"z", "RuntimeError: test:1:1: name 'z' is not defined", ""},
		}},
		{"immutable bindings", TestSequence{
			{"let k = 1", "1", ""},
			{"k = 2", "RuntimeError: test:1:1: cannot assign to immutable binding 'k'", ""},
			{"k", "1", ""},
			{"let k = 3", "3", ""},
			{"k", "3", ""},
			{"let f = fun(a) { a = 1 }", "<function(a)>", ""},
			{"f(0)", "RuntimeError: test:1:18: cannot assign to immutable binding 'a'", ""},
			{"len = 1", "RuntimeError: test:1:1: cannot assign to immutable binding 'len'", ""},
		}},
		{"assignment expressions", TestSequence{
			{"mut q = 0", "0", ""},
			{"q = q + 5", "5", ""},
			{"mut r = 0", "0", ""},
			{"q = r = 7", "7", ""},
			{"q + r", "14", ""},
		}},
		{"lexical scope", TestSequence{
			{`let v = "global"`, "global", ""},
			{"let getv = fun() { v }", "<function()>", ""},
			{`let shadow = fun() { let v = "local" getv() }`, "<function()>", ""},
			{"shadow()", "global", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestClosures(t *testing.T) {
	tests := TestSuite{
		{"adder", TestSequence{
			{"let add = fun(a) { fun(b) { a + b } }", "<function(a)>", ""},
			{"let add5 = add(5)", "<function(b)>", ""},
			{"add5(3)", "8", ""},
			{"add5(10)", "15", ""},
			{"add(1)(1)", "2", ""},
		}},
		{"shared state", TestSequence{
			{"let counter = fun() { mut n = 0 fun() { n = n + 1 } }", "<function()>", ""},
			{"let c = counter()", "<function()>", ""},
			{"c()", "1", ""},
			{"c()", "2", ""},
			{"let d = counter()", "<function()>", ""},
			{"d()", "1", ""},
			{"c()", "3", ""},
		}},
		{"capture by reference", TestSequence{
			{"mut seen = 1", "1", ""},
			{"let peek = fun() { seen }", "<function()>", ""},
			{"seen = 2", "2", ""},
			{"peek()", "2", ""},
		}},
		{"recursion", TestSequence{
			{"let fib = fun(n) { if n < 2 { n } else { fib(n - 1) + fib(n - 2) } }", "<function(n)>", ""},
			{"fib(15)", "610", ""},
		}},
		{"higher order", TestSequence{
			{"let twice = fun(f, x) { f(f(x)) }", "<function(f, x)>", ""},
			{"twice(fun(x) { x * 3 }, 2)", "18", ""},
			{"let xs = [fun() { 1 }, fun() { 2 }]", "[<function()>, <function()>]", ""},
			{"xs[1]()", "2", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestReturn(t *testing.T) {
	tests := TestSuite{
		{"early return", TestSequence{
			{`let f = fun(x) { if x > 0 { return "pos" } "nonpos" }`, "<function(x)>", ""},
			{"f(1)", "pos", ""},
			{"f(-1)", "nonpos", ""},
		}},
		{"nested blocks", TestSequence{
			{"let g = fun() { { { return 1 } } 2 }", "<function()>", ""},
			{"g()", "1", ""},
			{"let h = fun() { 1 + { return 5 } }", "<function()>", ""},
			{"h()", "5", ""},
			{"let i = fun() { write(if true { return 6 }) 7 }", "<function()>", ""},
			{"i()", "6", ""},
		}},
		{"function boundary", TestSequence{
			{"let r = fun() { return 1 }", "<function()>", ""},
			{"r() + 1", "2", ""},
			{"let outer = fun() { let v = r() v + 10 }", "<function()>", ""},
			{"outer()", "11", ""},
		}},
		{"top level", TestSequence{
			{`return 1 write("unreachable")`, "1", ""},
			{"{ return 3 } 4", "3", ""},
			{"let after = 1 return after + 1 after", "2", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestCalls(t *testing.T) {
	tests := TestSuite{
		{"arity", TestSequence{
			{"let two = fun(a, b) { a + b }", "<function(a, b)>", ""},
			{"two(1)", "RuntimeError: test:1:4: expected 2 argument(s), got 1", ""},
			{"two(1, 2, 3)", "RuntimeError: test:1:4: expected 2 argument(s), got 3", ""},
			{"two(1, 2)", "3", ""},
		}},
		{"not callable", TestSequence{
			{"5(1)", "RuntimeError: test:1:2: value '5' of type Integer is not callable", ""},
			{`"s"()`, "RuntimeError: test:1:4: value 's' of type String is not callable", ""},
			{"null()", "RuntimeError: test:1:5: value 'null' of type Null is not callable", ""},
		}},
		{"argument order", TestSequence{
			{"let pair = fun(a, b) { [a, b] }", "<function(a, b)>", ""},
			{`pair(write("a"), write("b"))`, "[null, null]", "a\nb\n"},
		}},
	}
	RunTestSuite(t, tests)
}
