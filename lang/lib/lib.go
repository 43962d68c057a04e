// Package lib is used to conveniently load the standard library into a yascl
// environment.
package lib

import (
	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/lang/lib/libjson"
	"github.com/luthersystems/yascl/lang/lib/libmath"
	"github.com/luthersystems/yascl/lang/lib/libstring"
	"github.com/luthersystems/yascl/lang/lib/libtesting"
	"github.com/luthersystems/yascl/parser"
)

// LoadLibrary loads the standard library into env.
func LoadLibrary(env *lang.Env) error {
	loaders := []func(*lang.Env) error{
		libmath.LoadPackage,
		libstring.LoadPackage,
		libjson.LoadPackage,
		libtesting.LoadPackage,
	}
	for _, load := range loaders {
		if err := load(env); err != nil {
			return err
		}
	}
	return nil
}

// NewEnv returns a root environment that reads source with the yascl parser
// and has the core builtins and the standard library bound.  Config is
// applied before anything is bound.
func NewEnv(config ...lang.Config) (*lang.Env, error) {
	env := lang.NewEnv()
	config = append([]lang.Config{lang.WithReader(parser.NewReader())}, config...)
	err := lang.InitializeUserEnv(env, config...)
	if err != nil {
		return nil, err
	}
	err = LoadLibrary(env)
	if err != nil {
		return nil, err
	}
	return env, nil
}
