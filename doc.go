/*
Package rephraser enumerates fixed-length phrases from a weighted n-gram transition model.

Candidates are produced in approximate most-probable-first order: near the root of the
phrase tree successors are explored in descending weight, and once the remaining depth
falls to the batch threshold the rest of the subtree is handed to a pool of workers that
expand it exhaustively.

# Concept

A model maps every context (a fixed window of tokens) to its successors and their
cumulative weights. Phrase starts are marked with domain.Begin and phrase ends with
domain.End; neither is ever emitted. Each finished phrase is sanitized and rendered in
title case, or in eight casing and spacing variants.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/rephraser"
		"github.com/aretw0/rephraser/pkg/adapters/file"
	)

	func main() {
		model, err := file.Load("model.json")
		if err != nil {
			log.Fatal(err)
		}

		gen, err := rephraser.New(model,
			rephraser.WithWords(3),
			rephraser.WithSeedWords([]string{"correct"}),
		)
		if err != nil {
			log.Fatal(err)
		}

		if err := gen.Run(context.Background(), os.Stdout); err != nil {
			log.Fatal(err)
		}
	}

Models can also be shared between hosts through Redis (see pkg/adapters/redis).
*/
package rephraser
