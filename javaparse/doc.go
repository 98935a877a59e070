// Package javaparse is a hand-written lexer and recursive-descent parser for
// the curly-brace surface syntax of modern Java (through version 25:
// records, sealed types, pattern matching, switch expressions, lambdas,
// method references, modules, text blocks, type-use annotations).
//
// It produces a compact, queryable abstract syntax tree for downstream tools
// such as formatters, linters, and refactoring engines. It does not
// type-check, resolve names, or evaluate constant expressions, and it does
// not attempt error recovery: the first syntax error aborts the parse.
package javaparse
