// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package compressor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var lineBreaks = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

// ReadText reads a UTF-8 text file.  With stripLineBreaks, line terminators are removed.
func ReadText(path string, stripLineBreaks bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}

	text := string(data)
	if stripLineBreaks {
		text = lineBreaks.Replace(text)
	}
	return text, nil
}

// CompressFile compresses the text at inputPath, writing the code table to tablePath and the packed
// bitstream to packedPath.  Either both files are written or neither is.
func (c *Compressor) CompressFile(inputPath, tablePath, packedPath string) (*Compressed, error) {
	text, err := ReadText(inputPath, c.config.StripLineBreaks)
	if err != nil {
		return nil, err
	}

	compressed, err := c.Compress(text)
	if err != nil {
		return nil, err
	}

	err = c.publish([]pendingFile{
		{path: tablePath, data: compressed.Table},
		{path: packedPath, data: compressed.Packed},
	})
	if err != nil {
		return nil, err
	}
	return compressed, nil
}

// DecompressFile decodes the packed bitstream at packedPath with the code table at tablePath and writes the
// text to outputPath.
func (c *Compressor) DecompressFile(packedPath, tablePath, outputPath string) (*Decompressed, error) {
	table, err := os.ReadFile(tablePath)
	if err != nil {
		return nil, err
	}
	packed, err := os.ReadFile(packedPath)
	if err != nil {
		return nil, err
	}

	decompressed, err := c.Decompress(table, packed)
	if err != nil {
		return nil, err
	}

	err = c.publish([]pendingFile{
		{path: outputPath, data: []byte(decompressed.Text)},
	})
	if err != nil {
		return nil, err
	}
	return decompressed, nil
}

type pendingFile struct {
	path    string
	data    []byte
	tmpPath string
}

// publish writes every file to a temporary sibling and renames them into place only once all writes have
// succeeded.  If a rename fails, files already renamed by this call are removed again.
func (c *Compressor) publish(files []pendingFile) (err error) {
	mode := resolveFileMode(c.config)

	defer func() {
		for _, f := range files {
			if f.tmpPath != "" {
				os.Remove(f.tmpPath)
			}
		}
	}()

	for i := range files {
		f := &files[i]
		dir := filepath.Dir(f.path)
		if c.config.CreateDirs {
			if err = os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}

		var tmp *os.File
		tmp, err = os.CreateTemp(dir, "."+filepath.Base(f.path)+".tmp*")
		if err != nil {
			return err
		}
		f.tmpPath = tmp.Name()

		_, err = tmp.Write(f.data)
		if err == nil {
			err = tmp.Chmod(mode)
		}
		if closeErr := tmp.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
	}

	for i := range files {
		f := &files[i]
		if err = os.Rename(f.tmpPath, f.path); err != nil {
			for _, done := range files[:i] {
				os.Remove(done.path)
			}
			return err
		}
		f.tmpPath = ""
		log.Debugf("wrote %s (%d octets)", f.path, len(f.data))
	}
	return nil
}
