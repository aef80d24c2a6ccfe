package lexicon

import "github.com/aster-lang/aster/internal/compiler/tokenkind"

// German returns the built-in German lexicon.
func German() *Lexicon {
	keywords := map[tokenkind.Kind]string{
		tokenkind.KindModule: "Modul", tokenkind.KindUse: "verwende", tokenkind.KindAs: "als",

		tokenkind.KindData: "Daten", tokenkind.KindEnum: "Aufzaehlung",
		tokenkind.KindTypeAlias: "Typ", tokenkind.KindHas: "hat",

		tokenkind.KindRule: "Regel", tokenkind.KindTo: "Zu", tokenkind.KindGiven: "gegeben",
		tokenkind.KindWith: "mit", tokenkind.KindProduce: "erzeugt", tokenkind.KindFunc: "Funktion",

		tokenkind.KindIf: "Wenn", tokenkind.KindOtherwise: "Sonst", tokenkind.KindMatch: "Vergleiche",
		tokenkind.KindWhen: "Falls", tokenkind.KindReturn: "Rueckgabe",

		tokenkind.KindLet: "Setze", tokenkind.KindBe: "sei", tokenkind.KindSet: "Aendere", tokenkind.KindOf: "von",

		tokenkind.KindTrue: "wahr", tokenkind.KindFalse: "falsch",
		tokenkind.KindAnd: "und", tokenkind.KindOr: "oder", tokenkind.KindNot: "nicht",

		tokenkind.KindPlus: "plus", tokenkind.KindMinus: "minus",
		tokenkind.KindTimes: "mal", tokenkind.KindDividedBy: "geteilt durch",

		tokenkind.KindLessThan: "kleiner als", tokenkind.KindGreaterThan: "groesser als",
		tokenkind.KindEqualsTo: "gleich", tokenkind.KindUnder: "unter", tokenkind.KindOver: "ueber",

		tokenkind.KindOk: "Ok", tokenkind.KindErr: "Err", tokenkind.KindSome: "Etwas", tokenkind.KindNone: "Nichts",
		tokenkind.KindList: "Liste", tokenkind.KindMap: "Abbildung",
		tokenkind.KindMaybe: "Vielleicht", tokenkind.KindOption: "Option", tokenkind.KindResult: "Ergebnis",

		tokenkind.KindNull: "null",

		tokenkind.KindInt: "Ganzzahl", tokenkind.KindLong: "Langzahl", tokenkind.KindFloat: "Gleitkomma",
		tokenkind.KindDouble: "Doppelgleitkomma", tokenkind.KindText: "Text", tokenkind.KindBoolType: "Bool",
		tokenkind.KindDateTime: "Zeitstempel",

		tokenkind.KindPure: "rein", tokenkind.KindCPU: "rechenintensiv", tokenkind.KindIO: "einausgabe", tokenkind.KindAsync: "asynchron",

		tokenkind.KindWorkflow: "Arbeitsablauf", tokenkind.KindStep: "Schritt", tokenkind.KindCompensate: "Ausgleichen",

		tokenkind.KindStart: "Starte", tokenkind.KindWait: "Warte", tokenkind.KindFor: "auf",

		tokenkind.KindPerforms: "fuehrt aus", tokenkind.KindCapability: "Faehigkeit", tokenkind.KindSensitive: "sensibel",
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
		Articles:        []string{"der", "die", "das", "ein", "eine"},
		PreTransformers: []Transformer{
			{Name: "german-possessive", Rule: &RegexRule{
				Name:        "german-possessive",
				Pattern:     `\b([A-Z][A-Za-z0-9_]*)s\s+([A-Z][A-Za-z0-9_]*)\b`,
				Replacement: "$1.$2",
			}},
		},
	}

	msgs := Messages{
		UnexpectedToken:    "unerwartetes Token {token}",
		ExpectedKeyword:    "erwartet {expected}, gefunden {found}",
		UndefinedVariable:  "undefinierte Variable {name}",
		TypeMismatch:       "Typ {expected} erwartet, {actual} gefunden",
		UnterminatedString: "nicht abgeschlossenes Zeichenkettenliteral",
		InvalidIndentation: "ungueltige Einrueckung in Zeile {line}",
	}

	lex, err := NewLexicon("de", "Deutsch", LTR, keywords, punct, canon, msgs)
	if err != nil {
		panic(err)
	}
	return lex
}
