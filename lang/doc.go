// Package lang implements a line-oriented macro language for expanding text
// templates against a set of variable definitions.
//
// # Definitions
//
// Definitions are NAME = VALUE lines. The value decides the symbol kind:
//
//	host = localhost           scalar
//	debug = false              boolean false
//	cities = Paris,Rome,Oslo   list
//	ports = http:80,https:443  dictionary
//
// A value without a comma is a scalar. A comma-separated value is a list
// unless its items contain colons, in which case it is a dictionary; mixing
// both forms is an error.
//
// # Programs
//
// A program is processed one logical line at a time. A physical line ending
// in a backslash continues on the next line. Leading and trailing
// whitespace of every line is discarded.
//
//	!                          emits nothing
//	Hello <host>               emits the line with <host> substituted
//	#if debug                  conditional block
//	#unless                    else branch
//	#endif
//	#foreach city in cities    loop block, city is bound to each element
//	#endfor
//
// Directive keywords are case-insensitive. Other lines starting with '#'
// are ignored. Output lines are joined with CRLF.
//
// # Example
//
//	out, err := lang.Run(ctx,
//		"#foreach c in cities\nVisit <c>\n#endfor",
//		"cities = Paris,Rome",
//	)
//	// out == "Visit Paris\r\nVisit Rome"
//
// Every error returned matches one of the Err* sentinels with [errors.Is]
// and carries the offending name and line index as attributes.
package lang
