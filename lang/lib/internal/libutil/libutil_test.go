package libutil

import (
	"testing"

	"github.com/luthersystems/yascl/lang"
	"github.com/stretchr/testify/assert"
)

func TestNumeric(t *testing.T) {
	x, err := Numeric(lang.Int(3))
	assert.NoError(t, err)
	assert.Equal(t, 3.0, x)

	x, err = Numeric(lang.Float(0.5))
	assert.NoError(t, err)
	assert.Equal(t, 0.5, x)

	_, err = Numeric(lang.String("3"))
	assert.EqualError(t, err, "argument is not a number: String")
}

func TestStr(t *testing.T) {
	s, err := Str(lang.String("abc"))
	assert.NoError(t, err)
	assert.Equal(t, "abc", s)

	_, err = Str(lang.Null())
	assert.EqualError(t, err, "argument is not a string: Null")
}
