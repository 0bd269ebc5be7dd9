package sidebar

import (
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// Rule is an expr-lang boolean expression evaluated against a node.
// See https://expr-lang.org/docs/language-definition
type Rule struct {
	script  string
	program *vm.Program

	compileOnce sync.Once
	compileErr  error
}

// Match evaluates the rule for the node found at the given depth.
func (r *Rule) Match(depth int, n *Node) (bool, error) {
	program, err := r.getProgram()
	if err != nil {
		return false, errors.WithStack(err)
	}

	result, err := expr.Run(program, ruleEnv(depth, n))
	if err != nil {
		return false, errors.WithStack(err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("unexpected rule '%s' result type '%T', expected boolean", r.script, result)
	}

	return matched, nil
}

// Compile checks the rule syntax without evaluating it.
func (r *Rule) Compile() error {
	_, err := r.getProgram()
	return errors.WithStack(err)
}

func (r *Rule) getProgram() (*vm.Program, error) {
	r.compileOnce.Do(func() {
		program, err := expr.Compile(r.script, expr.AsBool(), expr.Env(ruleEnv(0, &Node{})))
		if err != nil {
			r.compileErr = errors.WithStack(err)
			return
		}

		r.program = program
	})
	if r.compileErr != nil {
		return nil, errors.WithStack(r.compileErr)
	}

	return r.program, nil
}

func (r *Rule) String() string {
	return r.script
}

func NewRule(script string) *Rule {
	return &Rule{script: script}
}

func ruleEnv(depth int, n *Node) map[string]any {
	badge := ""
	if n.Badge != nil {
		badge = n.Badge.Text
	}

	directory := ""
	if n.Autogenerate != nil {
		directory = n.Autogenerate.Directory
	}

	return map[string]any{
		"label":     n.Label,
		"slug":      n.Slug,
		"link":      n.Link,
		"depth":     depth,
		"group":     n.IsGroup(),
		"collapsed": n.Collapsed,
		"badge":     badge,
		"directory": directory,
		"attrs":     n.Attrs,
	}
}
