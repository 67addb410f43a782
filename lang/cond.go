package lang

import (
	"log/slog"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// conditionSource tests one variable of the table against an expected value.
// An unbound variable reads as false.
const conditionSource = `(name in vars ? vars[name] : false) == want`

// conditionEnv is the environment an if condition runs in. Vars holds the
// native form of every bound variable.
type conditionEnv struct {
	Vars map[string]any `expr:"vars"`
	Name string         `expr:"name"`
	Want any            `expr:"want"`
}

//nolint:gochecknoglobals
var conditionProgram = sync.OnceValues(func() (*vm.Program, error) {
	return expr.Compile(conditionSource, expr.Env(conditionEnv{}), expr.AsBool())
})

// condition reports whether variable name holds want. Values are compared in
// native form, so a string never equals a boolean and null equals only null.
func (in *Interpreter) condition(name string, want Value) (bool, error) {
	program, err := conditionProgram()
	if err != nil {
		return false, ErrCondition.Wrap(err).With(slog.String("source", conditionSource))
	}

	vars := make(map[string]any, len(in.vars))
	for k, v := range in.vars {
		vars[k] = v.ToNative()
	}

	out, err := expr.Run(program, conditionEnv{
		Vars: vars,
		Name: name,
		Want: want.ToNative(),
	})
	if err != nil {
		return false, ErrCondition.Wrap(err).With(slog.String("variable", name))
	}

	ok, _ := out.(bool)

	return ok, nil
}
