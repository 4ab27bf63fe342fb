/*
Package phrase finalizes generated token sequences.

It sanitizes raw model tokens (one leading and one trailing punctuation mark
stripped, first letter uppercased with the rest of the case preserved) and
renders a finished phrase into its output lines: the title-case spaced form,
or all eight case and spacing variants when variant output is enabled.
*/
package phrase
