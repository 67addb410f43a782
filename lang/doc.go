// Package lang interprets devrc documents: line-oriented scripts divided into
// bracketed sections whose statements bind variables, import other documents,
// activate directory-backed environments and express minimal control flow.
//
// # Document syntax
//
// Each line of a document is classified in order:
//
//	#[name]/ACTIVATE           activate environment name (at line start)
//	... @DEVRC.IMPORT="ref" ... inline import reference; with is STR "v",
//	                           binds variable v to ref
//	# comment                  removed, unless the line starts with #[
//	@DEVRC.IMPORT.var          import the document named by variable var
//	@DEVRC.IMPORT.var="path"   import the document at path
//	@[type]                    type of the next section
//	[name]                     open section name
//	anything else              statement line of the open section
//
// Lines before the first section header are not retained. Imported sections
// are merged into the importing document: lines of a name already present
// are appended after the existing ones.
//
// # Statements
//
//	name = value               bind name (see [Interpreter.Evaluate])
//	name = {}                  bind the empty container
//	name = try (text)          bind the literal text without executing it
//	try (statement)            execute statement
//	if (var) is value rest     execute rest when var equals value
//	for (binding) rest         execute rest once
//	function name(             bind name to the string function
//	return value               stamp value on the active environment
//	export name( ...           record an export on the active environment
//	activate -mode SCRIPT      set the active environment's mode
//	.devrc flags... / do flags...
//	out path                   prepare an output destination
//	prod|dev|debug=name[subenv=["a","b"]]
//
// The observational statements dirlist, currentdir, subenv, linenum,
// current, get and in report the markers they contain.
//
// # Failures
//
// Nothing a document contains aborts a run. Failures are logged at WARN and
// collected by [Interpreter.Diagnostics]; execution continues with the next
// statement.
package lang
