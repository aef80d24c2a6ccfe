package lexicon

// Builtins returns every lexicon shipped with the compiler, in a stable
// order suitable for registration or listing.
func Builtins() []*Lexicon {
	return []*Lexicon{English(), German(), ChineseSimplified()}
}
