/*
Package tgrep compiles TGrep2-style tree queries into reusable boolean
predicates and evaluates them over every position of an ordered, labeled
parse tree.

# Overview

A query names a node and, optionally, relations that node must stand in
to other nodes:

	NP < DT          an NP with a DT child
	S << /^VB/       an S dominating a node whose label starts with VB
	DT $ NN          a DT with an NN sister
	dog . ran        "dog" whose next terminal is "ran"

Compile turns query text into a CompiledQuery; FindPositions and
FindNodes run one over a tree:

	root, _ := tree.Parse("(S (NP (DT the) (NN dog)) (VP (VBD ran)))")
	positions, _ := tgrep.FindPositions(root, "NP < DT", true)

# Node expressions

  - bare literal: exact label match (dog, NP)
  - * or __: matches any node
  - "...": quoted exact match, \" and \\ escapes
  - /.../: regular expression, searched anywhere in the label
  - i@"..." and i@/.../: case-insensitive forms
  - a|b|c: any of the alternatives
  - N(i,j,...): the node at exactly that tree position
  - @name: a macro reference, resolved when the query runs
  - (expr): a parenthesized sub-expression

# Relations

Dominance: < > <N >N <-N >-N <, >, <' >' <- >- <: >: << >> <<, >>, <<'
>>' <<: >>:. Precedence: . , .. ,,. Sisterhood: $ % $. %. $, %, $.. %..
$,, %,,. A relation is negated with a leading !, and [...] groups a
relation disjunction or conjunction into one negatable unit. Relations
are joined by & (or plain juxtaposition) for AND and | for OR.

When the structure a relation needs is missing, such as asking for the
parent of the root, the relation is false rather than an error.

# Statements and macros

Statements are separated by ';'. A statement of the form "@name expr"
defines a macro; all definitions in a query are collected before any
evaluation, so a macro may be used before the statement that defines it.
The remaining statements are expressions, and the query matches a node
when any of them does. '#' starts a comment running to the end of the
line.

Compile reports a SyntaxError when the query is malformed or not fully
consumed. A reference to a macro with no definition surfaces as an
UndefinedMacroError the first time evaluation reaches it.
*/
package tgrep
