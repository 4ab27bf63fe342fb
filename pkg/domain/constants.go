package domain

// Reserved tokens. They match the markers written by markovify-style model
// exporters so compiled models can be consumed without rewriting.
const (
	// Begin marks the phrase-start positions of a context.
	Begin = "___BEGIN__"

	// End marks the end of a phrase. It is never emitted.
	End = "___END__"
)
