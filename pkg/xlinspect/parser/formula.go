package parser

import (
	"strings"

	"github.com/xuri/efp"
)

// TokenizeFormula lists the function names a formula calls and the cell or
// range operands it references, each in order of first appearance.
func TokenizeFormula(formula string) (functions, references []string) {
	formula = strings.TrimPrefix(formula, FormulaPrefix)
	if formula == "" {
		return nil, nil
	}

	ps := efp.ExcelParser()
	tokens := ps.Parse(formula)

	seenFn := make(map[string]bool)
	seenRef := make(map[string]bool)
	for _, token := range tokens {
		switch {
		case token.TType == efp.TokenTypeFunction && token.TSubType == efp.TokenSubTypeStart:
			name := strings.ToUpper(token.TValue)
			if name != "" && !seenFn[name] {
				seenFn[name] = true
				functions = append(functions, name)
			}
		case token.TType == efp.TokenTypeOperand && token.TSubType == efp.TokenSubTypeRange:
			ref := token.TValue
			if ref != "" && !seenRef[ref] {
				seenRef[ref] = true
				references = append(references, ref)
			}
		}
	}
	return functions, references
}
