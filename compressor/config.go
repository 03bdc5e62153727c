// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package compressor

import (
	"os"
)

const defaultFileMode os.FileMode = 0644

// Config holds configuration for a Compressor.
type Config struct {
	StripLineBreaks bool        // Drop line terminators when reading input text
	FileMode        os.FileMode // Permissions of written files (0 = 0644)
	CreateDirs      bool        // Create missing parent directories of output files
}

// Option is a functional option for configuring a Compressor.
type Option func(*Config)

// WithStripLineBreaks makes CompressFile join the lines of its input without their terminators.  The
// decompressed text then has no line breaks either.
func WithStripLineBreaks(strip bool) Option {
	return func(c *Config) {
		c.StripLineBreaks = strip
	}
}

// WithFileMode sets the permissions of the files written.
func WithFileMode(mode os.FileMode) Option {
	return func(c *Config) {
		c.FileMode = mode
	}
}

// WithCreateDirs makes the file operations create missing parent directories of their outputs.
func WithCreateDirs(create bool) Option {
	return func(c *Config) {
		c.CreateDirs = create
	}
}

func resolveFileMode(cfg Config) os.FileMode {
	if cfg.FileMode == 0 {
		return defaultFileMode
	}
	return cfg.FileMode
}
