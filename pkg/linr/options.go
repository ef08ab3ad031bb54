package linr

// DefaultDelim separates fields when no Delim option is given.
const DefaultDelim byte = ' '

// ReadOption configures a single read.
type ReadOption func(*readConfig)

type readConfig struct {
	prompt    string
	hasPrompt bool
	delim     byte
}

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{delim: DefaultDelim}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Prompt writes p to the reader's output before the line is read.
func Prompt(p string) ReadOption {
	return func(c *readConfig) {
		c.prompt = p
		c.hasPrompt = true
	}
}

// Delim sets the field delimiter for the read.
func Delim(d byte) ReadOption {
	return func(c *readConfig) {
		c.delim = d
	}
}
