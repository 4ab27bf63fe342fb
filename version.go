package rephraser

// Version is the release of the rephraser module.
const Version = "0.4.0"
