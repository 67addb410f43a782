package lang

import "strings"

// Evaluate resolves a token to a value. In order:
//
//  1. a token wrapped in double quotes is the unquoted string
//  2. a bound variable name is that variable's value
//  3. true or -true is boolean true; false or -false is boolean false
//  4. null is the null value
//  5. anything else is the token itself as a string
//
// Literal keywords are matched case-insensitively.
func (in *Interpreter) Evaluate(token string) Value {
	token = strings.TrimSpace(token)

	if strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) {
		if len(token) < 2 {
			return String("")
		}

		return String(token[1 : len(token)-1])
	}

	if v, ok := in.vars[token]; ok {
		return v
	}

	switch strings.ToLower(token) {
	case "true", "-true":
		return Bool(true)
	case "false", "-false":
		return Bool(false)
	case "null":
		return Null
	}

	return String(token)
}
