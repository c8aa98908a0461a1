package uclang

// Fixed completion vocabularies. These are static: the only dynamic
// completion source is the class names in the current symbol table.

// Keywords returns the UnrealScript keyword vocabulary offered to
// completion consumers.
func Keywords() []string {
	return []string{
		"class", "extends", "function", "event", "state", "var", "local",
		"const", "enum", "struct", "defaultproperties", "simulated",
		"native", "exec", "static", "final", "if", "else", "for", "while",
		"do", "until", "switch", "case", "default", "break", "continue",
		"return", "new", "none", "self", "super", "true", "false",
	}
}

// Types returns the primitive and common built-in type vocabulary.
func Types() []string {
	return []string{
		"int", "float", "bool", "byte", "string", "name", "array",
		"vector", "rotator", "object", "actor", "pawn", "controller",
	}
}
