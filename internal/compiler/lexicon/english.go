package lexicon

import "github.com/aster-lang/aster/internal/compiler/tokenkind"

// English returns the built-in English lexicon. English keywords are the
// canonical surface forms every other locale's post-translation step
// rewrites into, so this lexicon doubles as the target vocabulary for
// the canonicalizer's keyword-translation step.
func English() *Lexicon {
	keywords := map[tokenkind.Kind]string{
		tokenkind.KindModule: "Module", tokenkind.KindUse: "use", tokenkind.KindAs: "as",

		tokenkind.KindData: "Data", tokenkind.KindEnum: "Enum",
		tokenkind.KindTypeAlias: "type", tokenkind.KindHas: "has",

		tokenkind.KindRule: "Rule", tokenkind.KindTo: "To", tokenkind.KindGiven: "given",
		tokenkind.KindWith: "with", tokenkind.KindProduce: "produce", tokenkind.KindFunc: "function",

		tokenkind.KindIf: "If", tokenkind.KindOtherwise: "Otherwise", tokenkind.KindMatch: "Match",
		tokenkind.KindWhen: "When", tokenkind.KindReturn: "Return",

		tokenkind.KindLet: "Let", tokenkind.KindBe: "be", tokenkind.KindSet: "Set", tokenkind.KindOf: "of",

		tokenkind.KindTrue: "true", tokenkind.KindFalse: "false",
		tokenkind.KindAnd: "and", tokenkind.KindOr: "or", tokenkind.KindNot: "not",

		tokenkind.KindPlus: "plus", tokenkind.KindMinus: "minus",
		tokenkind.KindTimes: "times", tokenkind.KindDividedBy: "divided by",

		tokenkind.KindLessThan: "less than", tokenkind.KindGreaterThan: "greater than",
		tokenkind.KindEqualsTo: "equals to", tokenkind.KindUnder: "under", tokenkind.KindOver: "over",

		tokenkind.KindOk: "Ok", tokenkind.KindErr: "Err", tokenkind.KindSome: "Some", tokenkind.KindNone: "None",
		tokenkind.KindList: "List", tokenkind.KindMap: "Map",
		tokenkind.KindMaybe: "Maybe", tokenkind.KindOption: "Option", tokenkind.KindResult: "Result",

		tokenkind.KindNull: "null",

		tokenkind.KindInt: "Int", tokenkind.KindLong: "Long", tokenkind.KindFloat: "Float",
		tokenkind.KindDouble: "Double", tokenkind.KindText: "Text", tokenkind.KindBoolType: "Bool",
		tokenkind.KindDateTime: "DateTime",

		tokenkind.KindPure: "pure", tokenkind.KindCPU: "cpu", tokenkind.KindIO: "io", tokenkind.KindAsync: "async",

		tokenkind.KindWorkflow: "Workflow", tokenkind.KindStep: "Step", tokenkind.KindCompensate: "Compensate",

		tokenkind.KindStart: "Start", tokenkind.KindWait: "Wait", tokenkind.KindFor: "for",

		tokenkind.KindPerforms: "performs", tokenkind.KindCapability: "capability", tokenkind.KindSensitive: "sensitive",
	}

	punct := Punctuation{
		StatementEnd:     ".",
		ListSeparator:    ",",
		EnumSeparator:    ",",
		BlockStart:       ":",
		StringQuoteOpen:  `"`,
		StringQuoteClose: `"`,
	}

	canon := CanonConfig{
		FullWidthToHalf: false,
		WhitespaceMode:  WhitespaceEnglish,
		RemoveArticles:  true,
		Articles:        []string{"the", "a", "an"},
		PreTransformers: []Transformer{
			{Name: "english-possessive", Rule: &RegexRule{
				Name:        "english-possessive",
				Pattern:     `\b([A-Za-z_][A-Za-z0-9_]*)'s\s+([A-Za-z_][A-Za-z0-9_]*)\b`,
				Replacement: "$1.$2",
			}},
		},
		PostTransformers: []Transformer{
			{Name: "the-result-is", Rule: &RegexRule{
				Name:        "the-result-is",
				Pattern:     `\b(?:the\s+)?result is\s+`,
				Replacement: "Return ",
			}},
			{Name: "set-to-let-be", Rule: &RegexRule{
				Name:        "set-to-let-be",
				Pattern:     `\bSet\s+([A-Za-z_][A-Za-z0-9_.]*)\s+to\s+`,
				Replacement: "Let $1 be ",
			}},
		},
	}

	msgs := Messages{
		UnexpectedToken:    "unexpected token {token}",
		ExpectedKeyword:    "expected {expected}, found {found}",
		UndefinedVariable:  "undefined variable {name}",
		TypeMismatch:       "expected type {expected}, found {actual}",
		UnterminatedString: "unterminated string literal",
		InvalidIndentation: "invalid indentation at line {line}",
	}

	lex, err := NewLexicon("en", "English", LTR, keywords, punct, canon, msgs)
	if err != nil {
		panic(err) // built-in lexicons must always be valid; a failure here is a programming error
	}
	return lex
}
