package yascltest

import "testing"

func TestIndex(t *testing.T) {
	tests := TestSuite{
		{"arrays", TestSequence{
			{"let a = [1, 2, 3]", "[1, 2, 3]", ""},
			{"a[0]", "1", ""},
			{"a[2]", "3", ""},
			{"a[3]", "RuntimeError: test:1:2: index 3 out of range for array of length 3", ""},
			{"a[-1]", "RuntimeError: test:1:2: index -1 out of range for array of length 3", ""},
			{"a[1 + 1]", "3", ""},
			{`a["x"]`, "RuntimeError: test:1:2: value of type Array is not indexable with String", ""},
			{"[[1, 2], [3]][0][1]", "2", ""},
		}},
		{"slices", TestSequence{
			{"let a = [1, 2, 3]", "[1, 2, 3]", ""},
			{"a[0..3]", "[1, 2, 3]", ""},
			{"a[1..2]", "[2]", ""},
			{"a[3..3]", "[]", ""},
			{"a[4..5]", "RuntimeError: test:1:2: range 4..5 out of bounds for array of length 3", ""},
			{"a[2..1]", "RuntimeError: test:1:2: range 2..1 out of bounds for array of length 3", ""},
			{"let r = 0..2", "0..2", ""},
			{"a[r]", "[1, 2]", ""},
		}},
		{"hashes", TestSequence{
			{`let h = {"k": 1, "n": {"deep": true}}`, "{k: 1, n: {deep: true}}", ""},
			{`h["k"]`, "1", ""},
			{`h["n"]["deep"]`, "true", ""},
			{`h["z"]`, "RuntimeError: test:1:2: key 'z' not found in hash", ""},
			{"h[0]", "RuntimeError: test:1:2: value of type Hash is not indexable with Integer", ""},
			{"{1: 2}", "RuntimeError: test:1:2: cannot use '1' as a key", ""},
			{`let key = "k"`, "k", ""},
			{`{key: 1, "k" + "2": 2}`, "{k: 1, k2: 2}", ""},
			{`{"a": 1, "a": 2}`, "{a: 2}", ""},
		}},
		{"strings", TestSequence{
			{`"héllo"[1]`, "é", ""},
			{`"héllo"[1..3]`, "él", ""},
			{`"abc"[0..0]`, "", ""},
			{`"abc"[5]`, "RuntimeError: test:1:6: index 5 out of range for string of length 3", ""},
			{`"abc"[2..4]`, "RuntimeError: test:1:6: range 2..4 out of bounds for string of length 3", ""},
		}},
		{"other values", TestSequence{
			{"5[0]", "RuntimeError: test:1:2: value of type Integer is not indexable with Integer", ""},
			{"null[0]", "RuntimeError: test:1:5: value of type Null is not indexable with Integer", ""},
		}},
	}
	RunTestSuite(t, tests)
}
