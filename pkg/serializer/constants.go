package serializer

// StdoutURI is the special output path indicating output should be written to stdout.
const StdoutURI = "-"

// yamlDocumentSeparator separates documents in a multi-document YAML stream.
const yamlDocumentSeparator = "---\n"
