package ports

// Emitter receives finalized phrase renderings. Each call carries every line
// produced for a single work item; implementations must write a batch without
// interleaving it with batches from other workers.
type Emitter interface {
	Emit(lines []string) error
}
