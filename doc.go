// Package packer is an exact 0/1 subset selector with a line-oriented front end.
//
// 🚀 What is packer?
//
//	Given a capacity and candidate items (ID, fractional weight, integer cost),
//	packer picks the subset that fits, costs the most and, among equal-cost
//	subsets, weighs the least:
//		• Exhaustive search with capacity pruning and an admissible cost bound
//		• Two equivalent enumeration strategies (explicit stack / recursion)
//		• Deterministic tie-breaking by enumeration order
//		• Parallel per-line processing with order-preserving output
//
// Under the hood, everything is organized under these packages:
//
//	selector/: Item, Instance, Result, Options and the search engine
//	lineproc/: line grammar (text + JSON lines), formatting, streaming processor, logging
//	lambdafn/: AWS Lambda Function URL handler around lineproc
//	cmd/packer, cmd/packer-lambda: entry points
//
// Quick example:
//
//	81 : (1,53.38,€45) (2,88.62,€98) (3,78.48,€3) (4,72.30,€76)
//
// answers "4": item 2 alone is too heavy and item 4 beats every feasible
// combination of the rest.
//
//	go install github.com/katalvlaran/packer/cmd/packer@latest
package packer
